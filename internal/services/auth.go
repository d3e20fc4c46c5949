// Package services contains the application services of the console.
// This file defines the authentication service: the two-step login
// (credentials, then the emailed one-time code), session resume at
// startup, and logout.
package services

import (
	"context"
	"fmt"

	"staffkeeper/internal/api"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
	"staffkeeper/internal/validate"
)

// AuthService defines the authentication operations of the console.
//
// Contract:
//   - Login: submit credentials; on success the backend emails a code.
//   - VerifyOTP: trade the emailed code for tokens and fetch the profile.
//   - Resume: restore a persisted session at startup, if one exists.
//   - Logout: end the session; local teardown happens regardless of
//     whether the backend call succeeds.
//   - Close: release underlying client resources.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	VerifyOTP(ctx context.Context, identifier, code string) (*models.UserProfile, error)
	Resume(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  api.Client
	session *session.Manager
	log     logging.Logger
}

// NewAuthService binds the service to the API client and the session
// manager.
func NewAuthService(client api.Client, sess *session.Manager, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, log: log}
}

// Login performs the first authentication step. The returned message
// tells the user where their one-time code went.
func (a *authService) Login(ctx context.Context, identifier, password string) (string, error) {
	if err := validate.Identifier(identifier); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("password is required")
	}

	msg, err := a.client.Login(ctx, identifier, password)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}

	a.log.Info(ctx, "credentials accepted, one-time code sent", "identifier", identifier)
	return msg, nil
}

// VerifyOTP performs the second step: it stores the minted tokens and
// fetches the profile that completes the session. When the profile
// fetch fails the tokens stay stored but the session does not count as
// authenticated; the caller may simply retry the login flow.
func (a *authService) VerifyOTP(ctx context.Context, identifier, code string) (*models.UserProfile, error) {
	if err := validate.OTPCode(code); err != nil {
		return nil, err
	}

	pair, err := a.client.VerifyOTP(ctx, identifier, code)
	if err != nil {
		return nil, fmt.Errorf("code verification error: %w", err)
	}

	if err := a.session.StoreTokens(ctx, pair); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	user, err := a.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile fetch error: %w", err)
	}
	if err := a.session.SetUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}

	a.log.Info(ctx, "signed in", "user", user.Username, "role", user.Role)
	return user, nil
}

// Resume restores a persisted session. It reports whether the console
// starts signed in.
func (a *authService) Resume(ctx context.Context) (bool, error) {
	if err := a.session.Resume(ctx); err != nil {
		return false, err
	}
	return a.session.IsAuthenticated(), nil
}

// Logout tells the backend first, then clears local state. The remote
// call is best-effort: an unreachable backend cannot keep the user
// signed in.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
	}
	return a.session.Clear(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
