package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/auth"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password. The two are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up email", err)
	}

	// Social accounts start without a password. The first password
	// login claims the supplied one: it is persisted and becomes
	// authoritative from then on.
	if !u.HasPassword() && u.CreatedViaSocial {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, apperror.NewInternal("failed to hash password", err)
		}
		if err := uc.userRepo.SetPasswordHash(ctx, u.ID, hash); err != nil {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to claim password", err)
		}
		u.PasswordHash = hash
		uc.logger.Info("Social account claimed a password", zap.String("user_id", u.ID.String()))
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{Token: token}, nil
}
