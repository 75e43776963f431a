package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eduhire/eduhire-api/adapters/event"
	"github.com/eduhire/eduhire-api/internal/domain/user"
)

// In-memory fakes keep the use case tests free of infrastructure.

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	copied := *u
	f.byID[u.ID] = &copied
	f.byEmail[u.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	copied := *u
	f.byID[u.ID] = &copied
	f.byEmail[u.Email] = &copied
	return nil
}

func (f *fakeUserRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) ListActivity(ctx context.Context, id uuid.UUID, limit, offset int) ([]user.ActivityEntry, error) {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log := u.ActivityLog
	if offset >= len(log) {
		return []user.ActivityEntry{}, nil
	}
	end := offset + limit
	if end > len(log) {
		end = len(log)
	}
	return log[offset:end], nil
}

func (f *fakeUserRepo) IncrementStat(ctx context.Context, id uuid.UUID, stat user.Stat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	switch stat {
	case user.StatProfileViews:
		u.DashboardStats.ProfileViews++
	case user.StatApplications:
		u.DashboardStats.Applications++
	case user.StatInterviews:
		u.DashboardStats.Interviews++
	}
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeCache() *fakeCache {
	return &fakeCache{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeCache) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeCache) Set(ctx context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []event.ProfileEventPayload
}

func (f *fakePublisher) PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}
