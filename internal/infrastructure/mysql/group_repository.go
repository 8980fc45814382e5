package mysql

import (
	"context"
	"database/sql"
	"time"

	"socialhub/internal/domain"
	"socialhub/pkg/utils"
)

type MySQLGroupRepository struct {
	db *sql.DB
}

func NewMySQLGroupRepository(db *sql.DB) *MySQLGroupRepository {
	return &MySQLGroupRepository{db: db}
}

// CreateGroup also enrolls the creator as admin.
func (r *MySQLGroupRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO groups (id, name, description, image_url, created_by_id, is_private, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	if _, err := tx.ExecContext(ctx, query,
		group.ID, group.Name, group.Description, group.ImageURL,
		group.CreatedByID, group.IsPrivate, group.CreatedAt); err != nil {
		return err
	}

	memberQuery := `
        INSERT INTO group_memberships (id, group_id, user_id, role, joined_at)
        VALUES (?, ?, ?, ?, ?)
    `
	if _, err := tx.ExecContext(ctx, memberQuery,
		utils.NewID(), group.ID, group.CreatedByID, string(domain.GroupAdmin), time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MySQLGroupRepository) UserGroups(ctx context.Context, userID string) ([]*domain.Group, error) {
	query := `
        SELECT g.id, g.name, g.description, g.image_url, g.created_by_id, g.is_private, g.created_at
        FROM groups g
        JOIN group_memberships m ON m.group_id = g.id
        WHERE m.user_id = ?
        ORDER BY g.created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		var g domain.Group
		var description, imageURL sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &description, &imageURL,
			&g.CreatedByID, &g.IsPrivate, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Description = description.String
		g.ImageURL = imageURL.String
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *MySQLGroupRepository) AddMember(ctx context.Context, groupID, userID string, role domain.GroupRole) error {
	query := `
        INSERT INTO group_memberships (id, group_id, user_id, role, joined_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query, utils.NewID(), groupID, userID, string(role), time.Now())
	return err
}
