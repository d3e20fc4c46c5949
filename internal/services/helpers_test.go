package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"staffkeeper/internal/cryptox"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
)

// ---- helpers ----

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()

	dir := t.TempDir()
	db, err := session.OpenDB(context.Background(), filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dir, "session.key"))
	require.NoError(t, err)

	return session.NewManager(session.NewStore(db, key), logging.Nop{})
}

// ---- fake client ----

// fakeClient is a hand-rolled test double for api.Client. Ret/Err pairs
// program the responses, Last* fields capture the arguments.
type fakeClient struct {
	Closed bool

	LoginMsg            string
	LoginErr            error
	LoginCalls          int
	LastLoginIdentifier string
	LastLoginPassword   string

	OTPPair           models.TokenPair
	OTPErr            error
	OTPCalls          int
	LastOTPIdentifier string
	LastOTPCode       string

	RefreshPair models.TokenPair
	RefreshErr  error

	LogoutErr   error
	LogoutCalls int

	ProfileRet *models.UserProfile
	ProfileErr error

	ListRet       *models.UserPage
	ListErr       error
	LastListQuery models.ListUsersQuery

	GetRet    *models.UserProfile
	GetErr    error
	LastGetID string

	CreateRet        *models.UserProfile
	CreateErr        error
	CreateCalls      int
	LastCreateParams models.CreateUserParams

	UpdateRet        *models.UserProfile
	UpdateErr        error
	UpdateCalls      int
	LastUpdateID     string
	LastUpdateParams models.UpdateUserParams

	DeleteErr    error
	LastDeleteID string

	RestoreRet    *models.UserProfile
	RestoreErr    error
	LastRestoreID string

	PurgeErr    error
	LastPurgeID string
}

func (f *fakeClient) Close() error {
	f.Closed = true
	return nil
}

func (f *fakeClient) Login(ctx context.Context, identifier, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginIdentifier = identifier
	f.LastLoginPassword = password
	return f.LoginMsg, f.LoginErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, identifier, code string) (models.TokenPair, error) {
	f.OTPCalls++
	f.LastOTPIdentifier = identifier
	f.LastOTPCode = code
	return f.OTPPair, f.OTPErr
}

func (f *fakeClient) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return f.RefreshPair, f.RefreshErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListUsers(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error) {
	f.LastListQuery = query
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	f.LastGetID = id
	return f.GetRet, f.GetErr
}

func (f *fakeClient) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error) {
	f.CreateCalls++
	f.LastCreateParams = params
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error) {
	f.UpdateCalls++
	f.LastUpdateID = id
	f.LastUpdateParams = params
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, id string) error {
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) RestoreUser(ctx context.Context, id string) (*models.UserProfile, error) {
	f.LastRestoreID = id
	return f.RestoreRet, f.RestoreErr
}

func (f *fakeClient) PurgeUser(ctx context.Context, id string) error {
	f.LastPurgeID = id
	return f.PurgeErr
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:        "7",
		FirstName: "Grace",
		LastName:  "Hopper",
		Username:  "ghopper",
		Email:     "grace@example.com",
		Role:      models.RoleAdmin,
	}
}
