package services

import (
	"testing"
	"time"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Name:            "Alice",
		Email:           email,
		Phone:           "+70001112233",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterCreatesUnconfirmedUser(t *testing.T) {
	svc := NewAuthService(newTestDB(t))

	user, token, err := svc.Register(validRegisterInput("a@x.com"))
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, token)
	assert.False(t, user.EmailConfirmed)
	assert.Equal(t, models.RoleUser, user.Role)
	require.NotNil(t, user.EmailConfirmToken)
	assert.Equal(t, token, *user.EmailConfirmToken)
	require.NotNil(t, user.EmailConfirmExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(confirmTokenTTL), *user.EmailConfirmExpiresAt, time.Minute)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newTestDB(t))

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"empty phone", func(in *RegisterInput) { in.Phone = "" }},
		{"short password", func(in *RegisterInput) { in.Password = "12345"; in.ConfirmPassword = "12345" }},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "different" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput("v@x.com")
			tc.mutate(&in)
			_, _, err := svc.Register(in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, _, err := svc.Register(validRegisterInput("dup@x.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(validRegisterInput("dup@x.com"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "dup@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUniqueIndexGuardsRace(t *testing.T) {
	// Bypass the service's pre-check by inserting directly, simulating
	// a concurrent registration committing first.
	db := newTestDB(t)

	raced := models.User{Name: "B", Email: "race@x.com", Phone: "1", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&raced).Error)

	second := models.User{Name: "C", Email: "race@x.com", Phone: "2", PasswordHash: "y", Role: models.RoleUser}
	err := db.Create(&second).Error
	require.Error(t, err)
}

func TestLoginFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, token, err := svc.Register(validRegisterInput("a@x.com"))
	require.NoError(t, err)

	// Before confirmation the login is refused with a distinct message.
	_, err = svc.Login("a@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, "email not confirmed", err.Error())

	_, err = svc.ConfirmEmail(user.ID, token)
	require.NoError(t, err)

	got, err := svc.Login("a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, user.ID, got.ID)

	// Wrong password and unknown email produce the identical message.
	_, wrongPw := svc.Login("a@x.com", "wrong")
	require.Error(t, wrongPw)
	assert.Equal(t, "invalid credentials", wrongPw.Error())

	_, unknown := svc.Login("nobody@x.com", "secret1")
	require.Error(t, unknown)
	assert.Equal(t, "invalid credentials", unknown.Error())
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(unknown))
}

func TestConfirmEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, token, err := svc.Register(validRegisterInput("c@x.com"))
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ConfirmEmail(9999, token)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("mismatched token leaves state unchanged", func(t *testing.T) {
		_, err := svc.ConfirmEmail(user.ID, "wrong-token")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.False(t, stored.EmailConfirmed)
		require.NotNil(t, stored.EmailConfirmToken)
	})

	t.Run("success clears token and expiry", func(t *testing.T) {
		got, err := svc.ConfirmEmail(user.ID, token)
		require.NoError(t, err)
		assert.True(t, got.EmailConfirmed)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.EmailConfirmed)
		assert.Nil(t, stored.EmailConfirmToken)
		assert.Nil(t, stored.EmailConfirmExpiresAt)
	})

	t.Run("second confirm is idempotent", func(t *testing.T) {
		got, err := svc.ConfirmEmail(user.ID, "anything")
		require.NoError(t, err)
		assert.True(t, got.EmailConfirmed)
	})
}

func TestConfirmEmailExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, token, err := svc.Register(validRegisterInput("e@x.com"))
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("email_confirm_expires_at", past).Error)

	_, err = svc.ConfirmEmail(user.ID, token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindExpired, apperr.KindOf(err))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.EmailConfirmed)
}

func TestLoginWithGoogle(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.LoginWithGoogle("", "Somebody")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("creates confirmed user", func(t *testing.T) {
		user, err := svc.LoginWithGoogle("g@x.com", "Google User")
		require.NoError(t, err)
		assert.True(t, user.EmailConfirmed)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, "Google User", user.Name)
		assert.Nil(t, user.EmailConfirmToken)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("second login reuses the account", func(t *testing.T) {
		first, err := svc.LoginWithGoogle("g@x.com", "Google User")
		require.NoError(t, err)
		again, err := svc.LoginWithGoogle("g@x.com", "Google User")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("confirms an existing unconfirmed user", func(t *testing.T) {
		local, token, err := svc.Register(validRegisterInput("mixed@x.com"))
		require.NoError(t, err)
		_ = token

		user, err := svc.LoginWithGoogle("mixed@x.com", "Whoever")
		require.NoError(t, err)
		assert.Equal(t, local.ID, user.ID)
		assert.True(t, user.EmailConfirmed)

		var stored models.User
		require.NoError(t, db.First(&stored, local.ID).Error)
		assert.True(t, stored.EmailConfirmed)
		assert.Nil(t, stored.EmailConfirmToken)
		assert.Nil(t, stored.EmailConfirmExpiresAt)
	})
}
