package mysql

import (
	"context"
	"database/sql"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

type MySQLFriendshipRepository struct {
	db *sql.DB
}

func NewMySQLFriendshipRepository(db *sql.DB) *MySQLFriendshipRepository {
	return &MySQLFriendshipRepository{db: db}
}

func (r *MySQLFriendshipRepository) CreateRequest(ctx context.Context, requesterID, receiverID string) (*domain.Friendship, error) {
	friendship := &domain.Friendship{
		ID:          utils.NewID(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.FriendshipPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
        INSERT INTO friendships (id, requester_id, receiver_id, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		friendship.ID, friendship.RequesterID, friendship.ReceiverID,
		string(friendship.Status), friendship.CreatedAt, friendship.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

func (r *MySQLFriendshipRepository) PendingRequests(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	query := `
        SELECT id, requester_id, receiver_id, status, created_at, updated_at
        FROM friendships
        WHERE receiver_id = ? AND status = 'pending'
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		var status string
		if err := rows.Scan(&f.ID, &f.RequesterID, &f.ReceiverID, &status,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.Status = domain.FriendshipStatus(status)
		requests = append(requests, &f)
	}
	return requests, rows.Err()
}

// Respond transitions a pending request only; accepted and declined rows
// never change again.
func (r *MySQLFriendshipRepository) Respond(ctx context.Context, friendshipID string, status domain.FriendshipStatus) error {
	query := `
        UPDATE friendships SET status = ?, updated_at = ?
        WHERE id = ? AND status = 'pending'
    `
	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), friendshipID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Friends returns accepted friendships in both directions.
func (r *MySQLFriendshipRepository) Friends(ctx context.Context, userID string) ([]*domain.User, error) {
	query := `
        SELECT u.id, u.email, u.first_name, u.last_name, u.is_online
        FROM friendships f
        JOIN users u ON u.id = CASE
            WHEN f.requester_id = ? THEN f.receiver_id
            ELSE f.requester_id
        END
        WHERE (f.requester_id = ? OR f.receiver_id = ?) AND f.status = 'accepted'
    `
	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsOnline); err != nil {
			return nil, err
		}
		friends = append(friends, &u)
	}
	return friends, rows.Err()
}
