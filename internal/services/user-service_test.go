package services

import (
	"testing"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAdmin(t *testing.T, env *testEnv) domain.User {
	t.Helper()
	admin := testAdmin()
	require.NoError(t, env.userRepo.ReplaceAll([]domain.User{admin}))
	return admin
}

func TestLoginSuccessOpensSession(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	res, err := env.users.Login("admin@edc.cm", "admin12345")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, admin.ID, res.User.ID)

	userID, err := env.auth.ResolveSession("Bearer " + res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, userID)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionLogin, entry.Action)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env)

	_, err := env.users.Login("admin@edc.cm", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Login("nobody@edc.cm", "admin12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Emails match exactly: a different casing is a different credential.
	_, err = env.users.Login("ADMIN@edc.cm", "admin12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	res, err := env.users.Login(admin.Email, admin.Password)
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(admin, res.Token))
	_, err = env.auth.ResolveSession(res.Token)
	assert.Error(t, err)
}

func TestSetTheme(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	updated, err := env.users.SetTheme(admin, "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Preferences.Theme)

	stored, err := env.users.GetByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", stored.Preferences.Theme)
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	input := dto.UserInput{
		FirstName: "Marie",
		LastName:  "Ngo",
		Email:     "Marie.Ngo@edc.cm",
		Password:  "secret",
		Permissions: domain.Permission{
			CanReadList: true,
			CanCreate:   true,
		},
	}
	created, err := env.users.Create(admin, input)
	require.NoError(t, err)
	assert.Equal(t, "marie.ngo@edc.cm", created.Email)
	assert.False(t, created.Permissions.IsAdmin)

	entry := env.lastLog(t)
	assert.Equal(t, domain.ActionConfig, entry.Action)
	assert.Contains(t, entry.Description, "marie.ngo@edc.cm")

	_, err = env.users.Create(admin, input)
	assert.Error(t, err, "duplicate email must be rejected")

	_, err = env.users.Create(admin, dto.UserInput{FirstName: "X", Email: "x@edc.cm"})
	assert.Error(t, err, "password is required")

	_, err = env.users.Create(admin, dto.UserInput{Email: "y@edc.cm", Password: "secret"})
	assert.Error(t, err, "first name is required")
}

func TestUpdateUserPermissions(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	created, err := env.users.Create(admin, dto.UserInput{
		FirstName: "Paul",
		Email:     "agent@edc.cm",
		Password:  "secret",
	})
	require.NoError(t, err)

	updated, err := env.users.Update(admin, created.ID, dto.UserInput{
		Permissions: domain.Permission{CanExport: true},
	})
	require.NoError(t, err)
	assert.True(t, updated.Permissions.CanExport)
	// Blank fields leave the stored values alone.
	assert.Equal(t, "agent@edc.cm", updated.Email)
	assert.Equal(t, "secret", updated.Password)

	_, err = env.users.Update(admin, "missing", dto.UserInput{})
	assert.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env)

	created, err := env.users.Create(admin, dto.UserInput{
		FirstName: "Paul",
		Email:     "agent@edc.cm",
		Password:  "secret",
	})
	require.NoError(t, err)

	assert.Error(t, env.users.Delete(admin, admin.ID), "self-deletion must be rejected")

	require.NoError(t, env.users.Delete(admin, created.ID))
	_, err = env.users.GetByID(created.ID)
	assert.Error(t, err)

	assert.Error(t, env.users.Delete(admin, created.ID))
}
