// Package api contains the client-side contract for the staff backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication (Login, VerifyOTP, RefreshToken, Logout, Profile) and
//     staff records (ListUsers, GetUser, CreateUser, UpdateUser, DeleteUser,
//     RestoreUser, PurgeUser).
//  2. A concrete REST implementation (see HTTPClient) that attaches the
//     bearer token via a wrapping http.RoundTripper, transparently refreshes
//     a rejected token, replays the original request once, and maps HTTP
//     statuses to sentinel errors.
//  3. A single-flight refresh coordinator (see Refresher): concurrent 401s
//     share one refresh round-trip, and a failed refresh tears the session
//     down exactly once.
//  4. A multipart form builder (see Form) that omits absent optional fields
//     instead of sending empty parts.
//
// # Error Handling
//
// Every failure unwraps to a sentinel callers can match with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrSessionExpired, ErrForbidden,
// ErrNotFound, ErrValidation, ErrRateLimited, ErrServer. Validation
// failures additionally carry a per-field message map, reachable through
// FieldErrors.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation, with one deliberate exception:
// an in-flight token refresh runs to completion even when the caller that
// triggered it gives up, so every other waiter still gets a definite
// outcome.
package api
