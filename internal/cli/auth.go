package cli

import (
	"context"
	"os"

	"staffkeeper/internal/guard"
	"staffkeeper/internal/notify"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login walks the two-step sign-in: credentials first, then the
// one-time code the backend emails. On success the console lands on
// the view the user was originally headed to, or home.
//
// Errors are reported to the user, not returned up the REPL; a failed
// step leaves the console on the login view so the user can retry.
func (a *App) Login(ctx context.Context) error {
	if !a.gotoView(guard.ViewLogin) {
		return nil
	}

	identifier, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.auth.Login(ctx, identifier, password)
	if err != nil {
		a.report(ctx, err)
		return nil
	}
	if msg != "" {
		printlnFn(msg)
	}

	code, err := getSimpleText(a.reader, "Enter the verification code", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.VerifyOTP(ctx, identifier, code)
	if err != nil {
		a.report(ctx, err)
		return nil
	}

	a.notifier.Push(notify.LevelSuccess, "Signed in as "+user.Username+".")
	if user.Suspended {
		a.notifier.Push(notify.LevelWarning, "This account is suspended; some actions may be rejected.")
		printlnFn("Warning: this account is suspended.")
	}

	dest := a.pendingDest
	a.pendingDest = ""
	if dest == "" || dest == guard.ViewLogin {
		dest = guard.ViewHome
	}
	return a.Open(ctx, dest)
}

// Logout signs out and returns to the login view. Local state is
// cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.report(ctx, err)
		return nil
	}
	a.pendingDest = ""
	a.view = guard.ViewLogin
	printlnFn("Signed out.")
	return nil
}
