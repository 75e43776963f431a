package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type PublicProfileUseCase struct {
	userRepo  user.Repository
	publisher EventPublisher
	logger    logger.Logger
}

func NewPublicProfileUseCase(repo user.Repository, publisher EventPublisher, log logger.Logger) *PublicProfileUseCase {
	return &PublicProfileUseCase{
		userRepo:  repo,
		publisher: publisher,
		logger:    log,
	}
}

type PublicProfileInput struct {
	UserID uuid.UUID
}

type PublicProfileOutput struct {
	Profile profile.Profile
}

// Execute reads the profile sub-document for an unauthenticated viewer
// and emits a view event. The worker turns those events into the
// profileViews counter; the read path never writes stats itself.
func (uc *PublicProfileUseCase) Execute(ctx context.Context, input PublicProfileInput) (*PublicProfileOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("profile", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to load profile", err)
	}

	go func() {
		err := uc.publisher.PublishViewEvent(context.Background(), event.ViewEventPayload{
			UserID:   u.ID,
			ViewedAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'view' event", err, zap.String("user_id", u.ID.String()))
		}
	}()

	return &PublicProfileOutput{Profile: u.Profile}, nil
}
