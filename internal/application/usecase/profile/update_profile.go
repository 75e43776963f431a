package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

// EventPublisher is the slice of the Kafka producer the profile use
// cases need. Satisfied by event.KafkaProducerClient.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
	PublishViewEvent(ctx context.Context, payload event.ViewEventPayload) error
}

type UpdateProfileUseCase struct {
	userRepo  user.Repository
	cache     user.Cache
	publisher EventPublisher
	logger    logger.Logger
}

func NewUpdateProfileUseCase(repo user.Repository, cache user.Cache, publisher EventPublisher, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo:  repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

type UpdateProfileInput struct {
	UserID uuid.UUID
	Update profile.Update
}

type UpdateProfileOutput struct {
	User *user.User
}

var tracer = otel.Tracer("profile_usecase")

// Execute merges the partial payload into the stored profile and
// persists the whole document in one row write. Every resolved call is
// a loggable event: one activity entry is prepended and lastUpdated
// bumped even when the payload carries no fields. Concurrent calls for
// the same user race last-write-wins; there is no version check.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {

	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load user", err)
	}

	u.Profile.Apply(input.Update)

	now := time.Now().UTC()
	u.LogActivity("profile", "Updated profile details", now)
	u.LastUpdated = now

	if err := uc.userRepo.Update(ctx, u); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to persist profile", err)
	}

	if err := uc.cache.Invalidate(ctx, u.ID); err != nil {
		uc.logger.Warn("User cache invalidation failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	go func() {
		err := uc.publisher.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType:  event.ProfileEventTypeUpdated,
			UserID:     u.ID,
			OccurredAt: now,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'updated' event", err, zap.String("user_id", u.ID.String()))
		}
	}()

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &UpdateProfileOutput{User: u}, nil
}
