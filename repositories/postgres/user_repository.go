package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

// UserRepository implements repositories.UserRepository over PostgreSQL
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate fetches the user, creating an active record if absent
func (r *UserRepository) GetOrCreate(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, is_active, last_sync_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.IsActive,
		&user.LastSyncAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = models.NewUser(id)
	insert := `
		INSERT INTO users (id, is_active, last_sync_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, insert, user.ID, user.IsActive, user.LastSyncAt, user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("user created", zap.Int64("id", id))
	return user, nil
}

// SetActive activates or deactivates a user
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE users SET is_active = $1, last_sync_at = NOW(), updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
