package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

func seedUser(repo *fakeUserRepo) *user.User {
	u := user.New("ada@example.com", user.ProviderLocal, time.Now().UTC().Add(-time.Hour))
	u.Profile.Personal.FirstName = "Ada"
	repo.put(u)
	return u
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile_ShallowPersonalMerge(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	uc := NewUpdateProfileUseCase(repo, newFakeCache(), &fakePublisher{}, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), UpdateProfileInput{
		UserID: seeded.ID,
		Update: profile.Update{Personal: &profile.PersonalPatch{Phone: strPtr("123")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", out.User.Profile.Personal.FirstName)
	assert.Equal(t, "123", out.User.Profile.Personal.Phone)
}

func TestUpdateProfile_InternshipsDropStoredExperience(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	seeded.Profile.Experience = []profile.Experience{
		{Company: "Y", Role: "Engineer", Type: "Full-time"},
	}
	repo.put(seeded)

	uc := NewUpdateProfileUseCase(repo, newFakeCache(), &fakePublisher{}, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), UpdateProfileInput{
		UserID: seeded.ID,
		Update: profile.Update{Internships: []profile.InternshipEntry{{
			Title:     "Intern A",
			Company:   "X",
			StartDate: "2024-01",
			EndDate:   "2024-06",
		}}},
	})
	require.NoError(t, err)

	require.Len(t, out.User.Profile.Experience, 1)
	assert.Equal(t, "X", out.User.Profile.Experience[0].Company)
	assert.Equal(t, profile.TypeInternship, out.User.Profile.Experience[0].Type)
}

func TestUpdateProfile_EveryCallLogsOneEntry(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	uc := NewUpdateProfileUseCase(repo, newFakeCache(), &fakePublisher{}, logger.NewNopLogger())

	before := seeded.LastUpdated

	// An empty payload is still a loggable event.
	out1, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: seeded.ID})
	require.NoError(t, err)
	assert.Len(t, out1.User.ActivityLog, 1)
	assert.Equal(t, "profile", out1.User.ActivityLog[0].Type)
	assert.Equal(t, "Updated profile details", out1.User.ActivityLog[0].Action)
	assert.True(t, out1.User.LastUpdated.After(before))

	out2, err := uc.Execute(context.Background(), UpdateProfileInput{
		UserID: seeded.ID,
		Update: profile.Update{Personal: &profile.PersonalPatch{Phone: strPtr("123")}},
	})
	require.NoError(t, err)
	assert.Len(t, out2.User.ActivityLog, 2)
	// Newest first.
	assert.False(t, out2.User.ActivityLog[0].Time.Before(out2.User.ActivityLog[1].Time))
}

func TestUpdateProfile_RoundTripMatchesStore(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	uc := NewUpdateProfileUseCase(repo, newFakeCache(), &fakePublisher{}, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), UpdateProfileInput{
		UserID: seeded.ID,
		Update: profile.Update{
			Skills: &profile.SkillsPatch{Programming: []string{"Go"}},
		},
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, out.User.Profile, stored.Profile)
	assert.Equal(t, out.User.LastUpdated, stored.LastUpdated)
	assert.Equal(t, out.User.ActivityLog, stored.ActivityLog)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	uc := NewUpdateProfileUseCase(newFakeUserRepo(), newFakeCache(), &fakePublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateProfile_InvalidatesCache(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), seeded))

	uc := NewUpdateProfileUseCase(repo, cache, &fakePublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: seeded.ID})
	require.NoError(t, err)

	cached, err := cache.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestActivity_WindowedNewestFirst(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	updateUC := NewUpdateProfileUseCase(repo, newFakeCache(), &fakePublisher{}, logger.NewNopLogger())
	activityUC := NewActivityUseCase(repo)

	for i := 0; i < 5; i++ {
		_, err := updateUC.Execute(context.Background(), UpdateProfileInput{UserID: seeded.ID})
		require.NoError(t, err)
	}

	page1, err := activityUC.Execute(context.Background(), ActivityInput{UserID: seeded.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Entries, 2)

	page2, err := activityUC.Execute(context.Background(), ActivityInput{UserID: seeded.ID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2.Entries, 2)

	assert.False(t, page1.Entries[0].Time.Before(page2.Entries[0].Time))

	tail, err := activityUC.Execute(context.Background(), ActivityInput{UserID: seeded.ID, Limit: 10, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, tail.Entries, 1)
}

func TestPublicProfile_PublishesViewEvent(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	pub := &fakePublisher{}
	uc := NewPublicProfileUseCase(repo, pub, logger.NewNopLogger())

	out, err := uc.Execute(context.Background(), PublicProfileInput{UserID: seeded.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Profile.Personal.FirstName)

	assert.Eventually(t, func() bool { return pub.viewCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestProcessViewEvent_IncrementsProfileViews(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(repo)
	uc := NewProcessViewEventUseCase(repo, newFakeCache(), logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.Execute(context.Background(), viewPayload(seeded.ID)))
	}

	stored, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.DashboardStats.ProfileViews)
	assert.Equal(t, 0, stored.DashboardStats.Applications)
}
