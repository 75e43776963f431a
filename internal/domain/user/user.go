package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eduhire/eduhire-api/internal/domain/profile"
)

type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

// DashboardStats are server-owned counters. Profile updates never
// write them; the worker bumps them from view events.
type DashboardStats struct {
	ProfileViews int `json:"profileViews"`
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
}

type ActivityEntry struct {
	Type   string    `json:"type"`
	Action string    `json:"action"`
	Time   time.Time `json:"time"`
}

// User is the identity root. Its profile sub-document has no lifecycle
// of its own and nothing in the system ever deletes a user.
type User struct {
	ID               uuid.UUID       `json:"id"`
	Email            string          `json:"email"`
	PasswordHash     string          `json:"-"`
	AuthProvider     AuthProvider    `json:"authProvider"`
	CreatedViaSocial bool            `json:"createdViaSocial"`
	Profile          profile.Profile `json:"profile"`
	DashboardStats   DashboardStats  `json:"dashboardStats"`
	ActivityLog      []ActivityEntry `json:"activityLog"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// HasPassword reports whether a credential is set. Social accounts
// start without one until the first password login claims it.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// LogActivity prepends one entry, newest first. The log is append-only
// and unbounded in storage; reads are windowed instead.
func (u *User) LogActivity(entryType, action string, now time.Time) {
	entry := ActivityEntry{Type: entryType, Action: action, Time: now}
	u.ActivityLog = append([]ActivityEntry{entry}, u.ActivityLog...)
}

// Stat names a dashboard counter as stored in the document.
type Stat string

const (
	StatProfileViews Stat = "profileViews"
	StatApplications Stat = "applications"
	StatInterviews   Stat = "interviews"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	// Update persists the whole document as one atomic row write.
	Update(ctx context.Context, u *User) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListActivity(ctx context.Context, id uuid.UUID, limit, offset int) ([]ActivityEntry, error)
	IncrementStat(ctx context.Context, id uuid.UUID, stat Stat) error
}

// Cache is a read-through cache of resolved user documents. Get
// returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Set(ctx context.Context, u *User) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// New creates a user at registration or first social-identity use,
// with an initialized empty profile.
func New(email string, provider AuthProvider, now time.Time) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		AuthProvider: provider,
		Profile:      profile.New(),
		ActivityLog:  []ActivityEntry{},
		CreatedAt:    now,
		LastUpdated:  now,
	}
}
