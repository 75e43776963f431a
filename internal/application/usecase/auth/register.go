package auth

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/auth"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

// EventPublisher is the slice of the Kafka producer the auth use cases
// need. Satisfied by event.KafkaProducerClient.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

type RegisterUseCase struct {
	userRepo  user.Repository
	jwtSvc    *auth.JWTService
	publisher EventPublisher
	logger    logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, publisher EventPublisher, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  repo,
		jwtSvc:    jwtSvc,
		publisher: publisher,
		logger:    log,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterOutput struct {
	Token string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	_, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		err := apperror.NewConflict("user", "email", input.Email)
		span.RecordError(err)
		return nil, err
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, apperror.NewInternal("failed to look up email", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	newUser := user.New(input.Email, user.ProviderLocal, now)
	newUser.PasswordHash = hash
	newUser.Profile.Personal.FirstName = input.FirstName
	newUser.Profile.Personal.LastName = input.LastName

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to create user", err)
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	go func() {
		err := uc.publisher.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType:  event.ProfileEventTypeRegistered,
			UserID:     newUser.ID,
			OccurredAt: now,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'registered' event", err, zap.String("user_id", newUser.ID.String()))
		}
	}()

	span.SetAttributes(attribute.String("user_id", newUser.ID.String()))
	return &RegisterOutput{Token: token}, nil
}
