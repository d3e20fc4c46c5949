package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printfFn are test seams for user-facing output.
// In tests, replace them with stubs.
var (
	printlnFn = fmt.Println
	printfFn  = fmt.Printf
)

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, view string) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	FilterRole(ctx context.Context, arg string) error
	FilterSuspended(ctx context.Context, arg string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	Profile(ctx context.Context) error
	Notices(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
}

// runREPL starts a simple read-eval-print loop for the staffkeeper
// console.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts
// commands:
//
//	Signed out:
//	  - help           — show available commands
//	  - login          — sign in (credentials, then emailed code)
//	  - open <view>    — navigate; protected views bounce to login
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - open <view>    — navigate (home, users, profile)
//	  - list | search | role | suspended | next | prev
//	  - show | add | edit | delete | restore | purge  (users view)
//	  - profile        — show the signed-in account
//	  - notices        — show notifications; dismiss <id> clears one
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printfFn("sk %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Navigation: open <home|users|profile>, profile, notices, dismiss <id>, logout, exit")
				printlnFn("Users view: (l)ist, search <term>, role <admin|employee|trainee|all>, suspended <yes|no|all>,")
				printlnFn("            next, prev, show <id>, add, edit <id>, delete <id>, restore <id>, purge <id>")
			} else {
				printlnFn("Available commands: login, open <view>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <view>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "role":
			if len(args) == 0 {
				printlnFn("Usage: role <admin|employee|trainee|all>")
				continue
			}
			_ = a.FilterRole(ctx, args[0])

		case "suspended":
			if len(args) == 0 {
				printlnFn("Usage: suspended <yes|no|all>")
				continue
			}
			_ = a.FilterSuspended(ctx, args[0])

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete", "del":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "restore":
			if len(args) == 0 {
				printlnFn("Usage: restore <id>")
				continue
			}
			_ = a.Restore(ctx, args[0])

		case "purge":
			if len(args) == 0 {
				printlnFn("Usage: purge <id>")
				continue
			}
			_ = a.Purge(ctx, args[0])

		case "profile", "whoami":
			_ = a.Profile(ctx)

		case "notices":
			_ = a.Notices(ctx)

		case "dismiss":
			if len(args) == 0 {
				printlnFn("Usage: dismiss <id>")
				continue
			}
			_ = a.Dismiss(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
