package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"socialhub/internal/domain"
)

type MySQLCredentialRepository struct {
	db *sql.DB
}

func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

func (r *MySQLCredentialRepository) SaveCredentials(ctx context.Context, userID, passwordHash string) error {
	query := `
        INSERT INTO user_credentials (user_id, password_hash, created_at)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)
    `
	_, err := r.db.ExecContext(ctx, query, userID, passwordHash, time.Now())
	return err
}

func (r *MySQLCredentialRepository) PasswordHash(ctx context.Context, userID string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM user_credentials WHERE user_id = ?`, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return hash, err
}
