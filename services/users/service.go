// Package users syncs user records pushed from the main LinkyBoard service.
package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

// Service keeps the local user table in step with the upstream identity
// store. Sync is idempotent; the upstream retries on any failure.
type Service struct {
	users   repositories.UserRepository
	tracker *observability.Tracker
	logger  *zap.Logger
}

// NewService creates a user sync service.
func NewService(users repositories.UserRepository, tracker *observability.Tracker, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		tracker: tracker,
		logger:  logger,
	}
}

// Sync ensures the user exists locally, creating an active record on first
// sight.
func (s *Service) Sync(ctx context.Context, id int64) (user *models.User, err error) {
	span := s.tracker.StartOperation(ctx, "users.sync", map[string]interface{}{
		"user_id": id,
	})
	defer func() { span.End(err) }()

	user, err = s.users.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sync user %d: %w", id, err)
	}
	return user, nil
}
