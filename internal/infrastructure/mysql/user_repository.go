package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"socialhub/internal/domain"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `
        SELECT id, email, first_name, last_name, profile_image_url, bio,
               is_online, last_seen, created_at, updated_at
        FROM users WHERE id = ?
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *MySQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT id, email, first_name, last_name, profile_image_url, bio,
               is_online, last_seen, created_at, updated_at
        FROM users WHERE email = ?
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *MySQLUserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (id, email, first_name, last_name, profile_image_url, bio,
                           is_online, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            email = VALUES(email), first_name = VALUES(first_name),
            last_name = VALUES(last_name), profile_image_url = VALUES(profile_image_url),
            bio = VALUES(bio), updated_at = VALUES(updated_at)
    `
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
		user.ProfileImageURL, user.Bio, user.IsOnline, now, now)
	return err
}

// UpdateOnlineStatus also stamps last_seen when a user goes offline.
func (r *MySQLUserRepository) UpdateOnlineStatus(ctx context.Context, id string, online bool) error {
	var lastSeen interface{}
	if !online {
		lastSeen = time.Now()
	}

	query := `UPDATE users SET is_online = ?, last_seen = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, online, lastSeen, time.Now(), id)
	return err
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var profileImageURL, bio sql.NullString
	var lastSeen sql.NullTime

	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&profileImageURL, &bio, &user.IsOnline, &lastSeen,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.ProfileImageURL = profileImageURL.String
	user.Bio = bio.String
	if lastSeen.Valid {
		user.LastSeen = &lastSeen.Time
	}
	return &user, nil
}
