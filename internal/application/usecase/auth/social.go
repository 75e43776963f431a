package auth

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/auth"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type SocialAuthUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	publisher EventPublisher
	logger    logger.Logger
}

func NewSocialAuthUseCase(repo user.Repository, jwtSvc *auth.JWTService, publisher EventPublisher, log logger.Logger) *SocialAuthUseCase {
	return &SocialAuthUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		publisher: publisher,
		logger:    log,
	}
}

type SocialAuthInput struct {
	Provider user.AuthProvider
	Email    string
	// ProfileSeed initializes the profile on first use of this
	// identity. Existing identities are never re-seeded.
	ProfileSeed *profile.Profile
}

type SocialAuthOutput struct {
	Token string
}

// Execute authenticates a social identity. There is no credential to
// check: an unknown email provisions a new user, a known one simply
// gets a token. Idempotent on the identity.
func (uc *SocialAuthUseCase) Execute(ctx context.Context, input SocialAuthInput) (*SocialAuthOutput, error) {

	ctx, span := tracer.Start(ctx, "SocialAuth")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to look up email", err)
		}

		now := time.Now().UTC()
		u = user.New(input.Email, input.Provider, now)
		u.CreatedViaSocial = true
		if input.ProfileSeed != nil {
			u.Profile = *input.ProfileSeed
		}

		if err := uc.userRepo.Create(ctx, u); err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to create social user", err)
		}

		go func() {
			err := uc.publisher.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
				EventType:  event.ProfileEventTypeRegistered,
				UserID:     u.ID,
				OccurredAt: now,
			})
			if err != nil {
				uc.logger.Error("Failed to publish Kafka 'registered' event", err, zap.String("user_id", u.ID.String()))
			}
		}()
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &SocialAuthOutput{Token: token}, nil
}
