package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staffkeeper/internal/cryptox"
	"staffkeeper/internal/guard"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/notify"
	"staffkeeper/internal/services"
	"staffkeeper/internal/session"
)

// ---- helpers ----

// readerFromLines scripts interactive answers. Every answer gets its
// newline, so an intentionally empty final answer still reads cleanly.
func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestMgr(t *testing.T) *session.Manager {
	t.Helper()

	dir := t.TempDir()
	db, err := session.OpenDB(context.Background(), filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dir, "session.key"))
	require.NoError(t, err)

	return session.NewManager(session.NewStore(db, key), logging.Nop{})
}

func seedRole(t *testing.T, mgr *session.Manager, role models.Role) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, mgr.StoreTokens(ctx, models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))
	require.NoError(t, mgr.SetUser(ctx, &models.UserProfile{
		ID:        "1",
		FirstName: "Tess",
		LastName:  "Taylor",
		Username:  "ttaylor",
		Email:     "tess@example.com",
		Role:      role,
	}))
}

func newTestApp(t *testing.T, fa services.AuthService, fu services.UserService, mgr *session.Manager, lines ...string) *App {
	t.Helper()
	app := &App{
		auth:     fa,
		users:    fu,
		session:  mgr,
		notifier: notify.NewCenter(time.Minute),
		log:      logging.Nop{},
		reader:   readerFromLines(lines...),
		view:     guard.ViewLogin,
		query:    models.ListUsersQuery{Page: 1, PerPage: 15},
	}
	t.Cleanup(app.notifier.Close)
	return app
}

// captureOutput redirects the print seams into a buffer for assertions.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	origPrintln, origPrintf := printlnFn, printfFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	printfFn = func(format string, a ...any) (int, error) { return fmt.Fprintf(&buf, format, a...) }
	t.Cleanup(func() {
		printlnFn = origPrintln
		printfFn = origPrintf
	})
	return &buf
}

// stubTextInputs replaces getSimpleText with a queue of canned answers.
func stubTextInputs(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

// ---- fake services ----

// fakeAuthSvc mimics the real service's session side effects so the
// guard sees a signed-in user after a successful code verification.
type fakeAuthSvc struct {
	mgr *session.Manager

	LoginMsg            string
	LoginErr            error
	LastLoginIdentifier string
	LastLoginPassword   string

	OTPUser     *models.UserProfile
	OTPErr      error
	LastOTPCode string

	ResumeOK  bool
	ResumeErr error

	LogoutErr   error
	LogoutCalls int
}

func (f *fakeAuthSvc) Login(ctx context.Context, identifier, password string) (string, error) {
	f.LastLoginIdentifier = identifier
	f.LastLoginPassword = password
	return f.LoginMsg, f.LoginErr
}

func (f *fakeAuthSvc) VerifyOTP(ctx context.Context, identifier, code string) (*models.UserProfile, error) {
	f.LastOTPCode = code
	if f.OTPErr != nil {
		return nil, f.OTPErr
	}
	if err := f.mgr.StoreTokens(ctx, models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		return nil, err
	}
	if err := f.mgr.SetUser(ctx, f.OTPUser); err != nil {
		return nil, err
	}
	return f.OTPUser, nil
}

func (f *fakeAuthSvc) Resume(ctx context.Context) (bool, error) {
	return f.ResumeOK, f.ResumeErr
}

func (f *fakeAuthSvc) Logout(ctx context.Context) error {
	f.LogoutCalls++
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	return f.mgr.Clear(ctx)
}

func (f *fakeAuthSvc) Close(ctx context.Context) error { return nil }

type fakeUserSvc struct {
	ListRet       *models.UserPage
	ListErr       error
	ListCalls     int
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
	LastUpdateID     string
	LastUpdateParams models.UpdateUserParams

	DeleteErr    error
	DeleteCalls  int
	LastDeleteID string

	RestoreRet    *models.UserProfile
	RestoreErr    error
	LastRestoreID string

	PurgeErr    error
	PurgeCalls  int
	LastPurgeID string
}

func (f *fakeUserSvc) List(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error) {
	f.ListCalls++
	f.LastListQuery = query
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	if f.ListRet == nil {
		return &models.UserPage{Meta: models.PageMeta{CurrentPage: query.Page, LastPage: query.Page}}, nil
	}
	return f.ListRet, nil
}

func (f *fakeUserSvc) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	f.LastGetID = id
	return f.GetRet, f.GetErr
}

func (f *fakeUserSvc) Create(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error) {
	f.CreateCalls++
	f.LastCreateParams = params
	return f.CreateRet, f.CreateErr
}

func (f *fakeUserSvc) Update(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error) {
	f.LastUpdateID = id
	f.LastUpdateParams = params
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeUserSvc) Delete(ctx context.Context, id string) error {
	f.DeleteCalls++
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeUserSvc) Restore(ctx context.Context, id string) (*models.UserProfile, error) {
	f.LastRestoreID = id
	return f.RestoreRet, f.RestoreErr
}

func (f *fakeUserSvc) Purge(ctx context.Context, id string) error {
	f.PurgeCalls++
	f.LastPurgeID = id
	return f.PurgeErr
}
