package services

import (
	"context"
	"time"

	"github.com/worklog-app/timesheet_backend/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a JWT access token for the given user and
	// returns it with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
