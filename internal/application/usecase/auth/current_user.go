package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type CurrentUserUseCase struct {
	userRepo user.Repository
	cache    user.Cache
	logger   logger.Logger
}

func NewCurrentUserUseCase(repo user.Repository, cache user.Cache, log logger.Logger) *CurrentUserUseCase {
	return &CurrentUserUseCase{
		userRepo: repo,
		cache:    cache,
		logger:   log,
	}
}

type CurrentUserInput struct {
	UserID uuid.UUID
}

type CurrentUserOutput struct {
	User *user.User
}

// Execute resolves the full stored document for a verified identity,
// read-through the cache. Cache failures degrade to the store.
func (uc *CurrentUserUseCase) Execute(ctx context.Context, input CurrentUserInput) (*CurrentUserOutput, error) {
	cached, err := uc.cache.Get(ctx, input.UserID)
	if err != nil {
		uc.logger.Warn("User cache read failed", zap.String("user_id", input.UserID.String()), zap.Error(err))
	}
	if cached != nil {
		return &CurrentUserOutput{User: cached}, nil
	}

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to load user", err)
	}

	if err := uc.cache.Set(ctx, u); err != nil {
		uc.logger.Warn("User cache write failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	return &CurrentUserOutput{User: u}, nil
}
