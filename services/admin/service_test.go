package admin

import (
	"testing"

	"bakehouse/config"
	"bakehouse/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func configureAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	prev := config.AppConfig
	config.AppConfig.AdminEmail = email
	config.AppConfig.AdminPasswordHash = string(hash)
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestAuthenticate(t *testing.T) {
	svc := &DefaultAdminService{}
	configureAdmin(t, "owner@bakehouse.test", "rye-and-spelt")

	t.Run("valid credentials yield an admin token", func(t *testing.T) {
		token, err := svc.Authenticate("owner@bakehouse.test", "rye-and-spelt")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, err := utils.ExtractSubjectFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", subject)
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		_, err := svc.Authenticate("  Owner@Bakehouse.TEST ", "rye-and-spelt")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("owner@bakehouse.test", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := svc.Authenticate("intruder@bakehouse.test", "rye-and-spelt")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := svc.Authenticate("", "rye-and-spelt")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
