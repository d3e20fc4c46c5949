package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"staffkeeper/internal/api"
	"staffkeeper/internal/config"
	"staffkeeper/internal/cryptox"
	"staffkeeper/internal/filex"
	"staffkeeper/internal/guard"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/notify"
	"staffkeeper/internal/services"
	"staffkeeper/internal/session"
)

// App is the interactive console. It owns the current view, the
// users-view query state, and the pending destination preserved across
// a forced login.
type App struct {
	config   *config.Config
	auth     services.AuthService
	users    services.UserService
	session  *session.Manager
	notifier *notify.Center
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB

	view        string
	pendingDest string

	query models.ListUsersQuery
}

// NewApp opens the local store, runs its migrations, and wires the
// session manager, the API client, and the services together.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	db, err := session.OpenDB(ctx, filepath.Join(dataDir, "staffkeeper.db"))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dataDir, "staffkeeper.key"))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load store key: %w", err)
	}

	mgr := session.NewManager(session.NewStore(db, key), log)

	client, err := api.NewHTTPClient(api.Options{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.HTTPTimeout,
		Session: mgr,
		Logger:  log,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create API client: %w", err)
	}

	app := &App{
		config:   cfg,
		auth:     services.NewAuthService(client, mgr, log),
		users:    services.NewUserService(client, log),
		session:  mgr,
		notifier: notify.NewCenter(0),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
		view:     guard.ViewLogin,
		query:    models.ListUsersQuery{Page: 1, PerPage: 15},
	}

	mgr.OnInvalidate(func(reason string) {
		app.notifier.Push(notify.LevelError, "Your session has expired, please sign in again.")
	})

	return app, nil
}

// Run resumes any persisted session and starts the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	authed, err := a.auth.Resume(ctx)
	if err != nil {
		a.log.Warn(ctx, "session resume failed", "error", err)
	}
	if authed {
		a.view = guard.ViewHome
		printfFn("Welcome back, %s!\n", a.session.Current().User.FullName())
	} else {
		printlnFn("Please sign in (type 'login').")
	}
	printlnFn("Type 'help' for commands.")

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) close(ctx context.Context) {
	a.notifier.Close()
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "client close failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "store close failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt segment: the signed-in account and the
// current view.
func (a *App) status() string {
	s := "guest"
	if cur := a.session.Current(); cur.User != nil {
		s = fmt.Sprintf("%s %s", cur.User.Username, cur.User.Role)
	}
	return fmt.Sprintf("(%s) [%s]", s, a.view)
}

// gotoView runs the navigation guard for the named view and applies
// the verdict. It reports whether the navigation was allowed; on a
// login redirect the requested destination is preserved.
func (a *App) gotoView(name string) bool {
	route, ok := guard.Lookup(name)
	if !ok {
		printlnFn("Unknown view:", name)
		return false
	}

	verdict := guard.Decide(route, a.session.Current())
	switch verdict.Decision {
	case guard.Allow:
		a.view = name
		return true

	case guard.RedirectLogin:
		a.pendingDest = verdict.ReturnTo
		a.view = guard.ViewLogin
		printlnFn("Please sign in first (type 'login').")
		return false

	case guard.RedirectHome:
		a.view = guard.ViewHome
		printlnFn("Already signed in.")
		return false

	case guard.DenyUnauthorized:
		a.view = guard.ViewUnauthorized
		a.renderUnauthorized()
		return false
	}
	return false
}

// Open navigates to a view and renders it.
func (a *App) Open(ctx context.Context, name string) error {
	if !a.gotoView(name) {
		return nil
	}

	switch name {
	case guard.ViewLogin:
		return a.Login(ctx)
	case guard.ViewHome:
		a.renderHome()
	case guard.ViewUsers:
		return a.renderUsers(ctx)
	case guard.ViewProfile:
		return a.Profile(ctx)
	case guard.ViewUnauthorized:
		a.renderUnauthorized()
	}
	return nil
}

// Profile prints the signed-in account. The guard keeps it behind
// authentication.
func (a *App) Profile(ctx context.Context) error {
	if !a.gotoView(guard.ViewProfile) {
		return nil
	}
	printUser(a.session.Current().User)
	return nil
}

// Notices lists the active notifications with their dismissal ids.
func (a *App) Notices(ctx context.Context) error {
	active := a.notifier.Active()
	if len(active) == 0 {
		printlnFn("No notifications.")
		return nil
	}
	for _, n := range active {
		printfFn("[%s] %s  (dismiss %s)\n", n.Level, n.Message, n.ID)
	}
	return nil
}

// Dismiss clears one notification before its timer fires.
func (a *App) Dismiss(ctx context.Context, id string) error {
	if !a.notifier.Dismiss(id) {
		printlnFn("No such notification:", id)
	}
	return nil
}

func (a *App) renderHome() {
	user := a.session.Current().User
	printfFn("Signed in as %s (%s, %s)\n", user.FullName(), user.Username, user.Role)
	if exp, ok := a.session.AccessTokenExpiry(); ok {
		printfFn("Access token valid until %s\n", exp.Format("15:04:05"))
	}
	if active := a.notifier.Active(); len(active) > 0 {
		printfFn("%d notification(s), type 'notices' to view.\n", len(active))
	}
}

func (a *App) renderUnauthorized() {
	printlnFn("You do not have permission to view this page.")
	printlnFn("Type 'open home' to go back.")
}

// report turns a service error into user-facing output. Session expiry
// forces the login view and preserves the interrupted one; field-level
// validation messages, when present, are listed under the summary.
func (a *App) report(ctx context.Context, err error) {
	if errors.Is(err, api.ErrSessionExpired) {
		a.pendingDest = a.view
		a.view = guard.ViewLogin
		printlnFn("Your session has expired, please sign in again.")
		a.log.Debug(ctx, "command failed", "error", err)
		return
	}

	printlnFn("Error:", err.Error())
	for field, msgs := range api.FieldErrors(err) {
		for _, msg := range msgs {
			printfFn("  %s: %s\n", field, msg)
		}
	}
	a.log.Debug(ctx, "command failed", "error", err)
}

// printUser renders one user record in full.
func printUser(u *models.UserProfile) {
	printfFn("ID:        %s\n", u.ID)
	printfFn("Name:      %s\n", u.FullName())
	printfFn("Username:  %s\n", u.Username)
	printfFn("Email:     %s\n", u.Email)
	printfFn("Role:      %s\n", u.Role)
	if u.Phone != "" {
		printfFn("Phone:     %s\n", u.Phone)
	}
	if u.Address != "" {
		printfFn("Address:   %s\n", u.Address)
	}
	if len(u.Departments) > 0 {
		printfFn("Depts:     %v\n", u.Departments)
	}
	if u.PhotoURL != "" {
		printfFn("Photo:     %s\n", u.PhotoURL)
	}
	if u.DocumentURL != "" {
		printfFn("Document:  %s\n", u.DocumentURL)
	}
	if u.Suspended {
		printlnFn("Status:    SUSPENDED")
	}
	if u.Deleted() {
		printlnFn("Status:    DELETED (restorable)")
	}
}
