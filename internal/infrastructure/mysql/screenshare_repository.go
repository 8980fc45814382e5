package mysql

import (
	"context"
	"database/sql"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

type MySQLScreenShareRepository struct {
	db *sql.DB
}

func NewMySQLScreenShareRepository(db *sql.DB) *MySQLScreenShareRepository {
	return &MySQLScreenShareRepository{db: db}
}

func (r *MySQLScreenShareRepository) CreateSession(ctx context.Context, session *domain.ScreenShareSession) error {
	query := `
        INSERT INTO screen_share_sessions (id, host_id, title, is_active, room_code, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.HostID, session.Title, session.IsActive,
		session.RoomCode, session.CreatedAt)
	return err
}

func (r *MySQLScreenShareRepository) JoinSession(ctx context.Context, sessionID, userID string) error {
	query := `
        INSERT INTO screen_share_participants (id, session_id, user_id, joined_at)
        VALUES (?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query, utils.NewID(), sessionID, userID, time.Now())
	return err
}

func (r *MySQLScreenShareRepository) ActiveSessions(ctx context.Context) ([]*domain.ScreenShareSession, error) {
	query := `
        SELECT id, host_id, title, is_active, room_code, created_at
        FROM screen_share_sessions
        WHERE is_active = TRUE
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.ScreenShareSession
	for rows.Next() {
		var s domain.ScreenShareSession
		var title sql.NullString
		if err := rows.Scan(&s.ID, &s.HostID, &title, &s.IsActive,
			&s.RoomCode, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Title = title.String
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}
