package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

// MySQL error 1452: a foreign key constraint failed on insert.
const mysqlErrFKViolation = 1452

type MySQLPollRepository struct {
	db *sql.DB
}

func NewMySQLPollRepository(db *sql.DB) *MySQLPollRepository {
	return &MySQLPollRepository{db: db}
}

func (r *MySQLPollRepository) CreatePoll(ctx context.Context, poll *domain.Poll) error {
	options, err := json.Marshal(poll.Options)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO polls (id, created_by_id, question, options, expires_at, is_anonymous, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err = r.db.ExecContext(ctx, query,
		poll.ID, poll.CreatedByID, poll.Question, options,
		poll.ExpiresAt, poll.IsAnonymous, poll.CreatedAt)
	return err
}

func (r *MySQLPollRepository) ListPolls(ctx context.Context, limit int) ([]*domain.Poll, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT id, created_by_id, question, options, expires_at, is_anonymous, created_at
        FROM polls
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		var p domain.Poll
		var options []byte
		var expiresAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.CreatedByID, &p.Question, &options,
			&expiresAt, &p.IsAnonymous, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			p.ExpiresAt = &expiresAt.Time
		}
		polls = append(polls, &p)
	}
	return polls, rows.Err()
}

func (r *MySQLPollRepository) Vote(ctx context.Context, pollID, userID string, optionIndex int) error {
	query := `
        INSERT INTO poll_votes (id, poll_id, user_id, selected_option, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query, utils.NewID(), pollID, userID, optionIndex, time.Now())
	return mapVoteError(err)
}

// mapVoteError turns the poll_id foreign key violation into the missing-poll
// sentinel so callers see a vote on an unknown poll as not-found.
func mapVoteError(err error) error {
	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrFKViolation {
		return domain.ErrNotFound
	}
	return err
}
