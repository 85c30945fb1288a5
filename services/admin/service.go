package admin

import (
	"errors"
	"strings"
	"time"

	"bakehouse/config"
	"bakehouse/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a failed admin login. The message is
// deliberately the same for a wrong email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

const sessionDuration = 12 * time.Hour

// AdminService authenticates the bakery operator for the capacity console.
type AdminService interface {
	// Authenticate checks the operator credentials and returns a signed
	// session token.
	Authenticate(email, password string) (string, error)
}

// DefaultAdminService implements AdminService against the configured
// operator account. A single-operator bakery does not need an accounts table.
type DefaultAdminService struct{}

// Authenticate verifies credentials against the configured admin account.
func (s *DefaultAdminService) Authenticate(email, password string) (string, error) {
	logger := utils.GetLogger()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.EqualFold(email, config.AppConfig.AdminEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AdminPasswordHash), []byte(password)); err != nil {
		logger.Warn("admin login rejected", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken("admin", email, sessionDuration)
	if err != nil {
		return "", err
	}
	logger.Info("admin logged in", zap.String("email", email))
	return token, nil
}
