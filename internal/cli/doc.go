// Package cli provides the interactive staffkeeper admin console.
//
// It wires configuration, the durable session store, the API client,
// and an interactive REPL organized around views. Typical flow: resume
// a persisted session, land on the home or login view, and execute
// user commands.
//
// Key features:
//   - Two-step sign-in (credentials, then an emailed one-time code)
//   - Role-gated navigation between views (login, home, users, profile)
//   - User directory: search, filter, paginate, create, edit, delete,
//     restore, purge, with optional photo and document uploads
//   - Transient notifications with auto-dismissal
//
// The REPL is started via App.Run(ctx), which blocks until the user
// exits. See App, runREPL, and the guard package for details.
package cli
