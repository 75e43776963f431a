package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
)

// Auth DTOs

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SocialAuthRequest struct {
	Email   string           `json:"email" binding:"required"`
	Profile *profile.Profile `json:"profile"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// User DTOs

// UserDTO is the full stored document, password hash excluded. The
// clients re-derive their local view from it after every write.
type UserDTO struct {
	ID               uuid.UUID            `json:"id"`
	Email            string               `json:"email"`
	AuthProvider     user.AuthProvider    `json:"authProvider"`
	CreatedViaSocial bool                 `json:"createdViaSocial"`
	Profile          profile.Profile      `json:"profile"`
	DashboardStats   user.DashboardStats  `json:"dashboardStats"`
	ActivityLog      []user.ActivityEntry `json:"activityLog"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastUpdated      time.Time            `json:"lastUpdated"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		AuthProvider:     u.AuthProvider,
		CreatedViaSocial: u.CreatedViaSocial,
		Profile:          u.Profile,
		DashboardStats:   u.DashboardStats,
		ActivityLog:      u.ActivityLog,
		CreatedAt:        u.CreatedAt,
		LastUpdated:      u.LastUpdated,
	}
}

// Profile DTOs

// UpdateProfileRequest is the partial payload of a profile write. Its
// field presence semantics are those of profile.Update: binding it
// straight onto the domain update type keeps "absent" and
// "present-but-empty" distinguishable.
type UpdateProfileRequest struct {
	Personal    *profile.PersonalPatch    `json:"personal"`
	Education   *[]profile.Education      `json:"education"`
	Experience  []profile.Experience      `json:"experience"`
	Internships []profile.InternshipEntry `json:"internships"`
	Skills      *profile.SkillsPatch      `json:"skills"`
	Projects    *[]profile.Project        `json:"projects"`
}

func (req *UpdateProfileRequest) ToDomainUpdate() profile.Update {
	return profile.Update{
		Personal:    req.Personal,
		Education:   req.Education,
		Experience:  req.Experience,
		Internships: req.Internships,
		Skills:      req.Skills,
		Projects:    req.Projects,
	}
}

type ActivityResponse struct {
	Activity []user.ActivityEntry `json:"activity"`
}
