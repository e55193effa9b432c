package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cramr/cramr-backend/internal/models"
)

func newTestUserService(t *testing.T) (*UserService, *fakeSocial) {
	users := newFakeUsers(
		&models.User{Username: "ann", PushNotificationsEnabled: true},
		&models.User{Username: "anna"},
		&models.User{Username: "annie"},
	)
	social := newFakeSocial()
	return NewUserService(users, social, zaptest.NewLogger(t)), social
}

func TestUserService_SearchHidesBlocked(t *testing.T) {
	ctx := context.Background()
	svc, social := newTestUserService(t)
	require.NoError(t, social.CreateBlock(ctx, 3, 1))

	found, err := svc.SearchUsers(ctx, 1, "ann", 10)
	require.NoError(t, err)
	var names []string
	for _, u := range found {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"ann", "anna"}, names)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	taken := "anna"
	_, err := svc.UpdateProfile(ctx, 1, models.UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	name, bio := "New_Ann", "third year"
	user, err := svc.UpdateProfile(ctx, 1, models.UpdateProfileRequest{Username: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new_ann", user.Username)
	assert.Equal(t, "third year", user.Bio)

	_, err = svc.UpdateProfile(ctx, 99, models.UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Preferences(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	prefs, err := svc.GetPreferences(ctx, 1)
	require.NoError(t, err)
	assert.True(t, prefs.PushNotificationsEnabled)

	off, on := false, true
	prefs, err = svc.UpdatePreferences(ctx, 1, models.UpdatePreferencesRequest{
		PushNotificationsEnabled: &off,
		TwoFactorEnabled:         &on,
	})
	require.NoError(t, err)
	assert.False(t, prefs.PushNotificationsEnabled)
	assert.True(t, prefs.TwoFactorEnabled)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	require.NoError(t, svc.DeleteUser(ctx, 2))
	assert.ErrorIs(t, svc.DeleteUser(ctx, 2), ErrNotFound)
}
