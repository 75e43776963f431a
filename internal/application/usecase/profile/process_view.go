package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

// ProcessViewEventUseCase is the worker side of view tracking: it
// consumes view events and bumps the server-owned profileViews
// counter. Profile updates never touch dashboard stats.
type ProcessViewEventUseCase struct {
	userRepo user.Repository
	cache    user.Cache
	logger   logger.Logger
}

func NewProcessViewEventUseCase(repo user.Repository, cache user.Cache, log logger.Logger) *ProcessViewEventUseCase {
	return &ProcessViewEventUseCase{
		userRepo: repo,
		cache:    cache,
		logger:   log,
	}
}

func (uc *ProcessViewEventUseCase) Execute(ctx context.Context, payload event.ViewEventPayload) error {
	if err := uc.userRepo.IncrementStat(ctx, payload.UserID, user.StatProfileViews); err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, payload.UserID); err != nil {
		uc.logger.Warn("User cache invalidation failed", zap.String("user_id", payload.UserID.String()), zap.Error(err))
	}
	return nil
}
