package services

import (
	"context"
	"fmt"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
	portssvc "github.com/worklog-app/timesheet_backend/internal/core/ports/services"
	"github.com/worklog-app/timesheet_backend/internal/utils"
)

// tokenService issues signed JWT access tokens.
type tokenService struct {
	BaseService
	secret string
	expiry time.Duration
	issuer string
	clock  Clock
}

// TokenServiceOption is a functional option for configuring the token service.
type TokenServiceOption func(*tokenService)

// WithTokenClock sets the clock used to compute token expiry.
func WithTokenClock(c Clock) TokenServiceOption {
	return func(s *tokenService) {
		s.clock = c
	}
}

// NewTokenService creates a new token service.
func NewTokenService(secret string, expiry time.Duration, issuer string, options ...TokenServiceOption) portssvc.TokenSvcFacade {
	svc := &tokenService{
		secret: secret,
		expiry: expiry,
		issuer: issuer,
		clock:  SystemClock(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed access token for the user and
// returns it with its expiry time.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, s.clock.Now().Add(s.expiry), nil
}
