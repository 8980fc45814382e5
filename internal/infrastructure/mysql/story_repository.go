package mysql

import (
	"context"
	"database/sql"
	"time"

	"socialhub/internal/domain"
)

type MySQLStoryRepository struct {
	db *sql.DB
}

func NewMySQLStoryRepository(db *sql.DB) *MySQLStoryRepository {
	return &MySQLStoryRepository{db: db}
}

func (r *MySQLStoryRepository) CreateStory(ctx context.Context, story *domain.Story) error {
	query := `
        INSERT INTO stories (id, user_id, content, image_url, expires_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		story.ID, story.UserID, story.Content, story.ImageURL,
		story.ExpiresAt, story.CreatedAt)
	return err
}

func (r *MySQLStoryRepository) ActiveStories(ctx context.Context) ([]*domain.Story, error) {
	query := `
        SELECT id, user_id, content, image_url, expires_at, created_at
        FROM stories
        WHERE expires_at > ?
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, time.Now())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*domain.Story
	for rows.Next() {
		var s domain.Story
		var content, imageURL sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &content, &imageURL,
			&s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Content = content.String
		s.ImageURL = imageURL.String
		stories = append(stories, &s)
	}
	return stories, rows.Err()
}

func (r *MySQLStoryRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE expires_at <= ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
