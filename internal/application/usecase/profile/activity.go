package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type ActivityUseCase struct {
	userRepo user.Repository
}

func NewActivityUseCase(repo user.Repository) *ActivityUseCase {
	return &ActivityUseCase{userRepo: repo}
}

type ActivityInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

type ActivityOutput struct {
	Entries []user.ActivityEntry
}

// Execute reads a window of the activity log, newest first. Storage is
// unbounded; only retrieval is capped.
func (uc *ActivityUseCase) Execute(ctx context.Context, input ActivityInput) (*ActivityOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := uc.userRepo.ListActivity(ctx, input.UserID, limit, offset)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to list activity", err)
	}

	return &ActivityOutput{Entries: entries}, nil
}
