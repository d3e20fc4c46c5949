package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
)

// refreshKey is the singleflight key; there is only ever one kind of
// refresh, so all callers share it.
const refreshKey = "token-refresh"

// refreshFunc performs the actual refresh call against the backend. It
// must not route through the authenticated transport, or a rejected
// token would recurse into another refresh.
type refreshFunc func(ctx context.Context, refreshToken string) (models.TokenPair, error)

// Refresher serializes token refreshes. However many requests hit a 401
// at once, exactly one refresh round-trip runs; the rest wait for its
// outcome and either replay with the fresh token or fail together. A
// failed refresh is fatal: the session is torn down exactly once and
// every waiter receives ErrSessionExpired.
type Refresher struct {
	session *session.Manager
	exec    refreshFunc
	log     logging.Logger
	group   singleflight.Group
}

// NewRefresher wires a Refresher to the session manager and the
// function that performs the refresh round-trip.
func NewRefresher(sess *session.Manager, exec refreshFunc, log logging.Logger) *Refresher {
	return &Refresher{session: sess, exec: exec, log: log}
}

// Refresh returns an access token that is newer than staleToken, the
// token the caller just saw rejected. Callers that arrive while a
// refresh is in flight join it; callers that arrive after it finished
// reuse its result via the session instead of starting another round.
//
// The caller's context only bounds its own wait. An abandoned wait does
// not cancel the refresh: it runs to completion so every other waiter
// is still drained with a definite outcome.
func (r *Refresher) Refresh(ctx context.Context, staleToken string) (string, error) {
	if current := r.session.AccessToken(); current != "" && current != staleToken {
		return current, nil
	}

	ch := r.group.DoChan(refreshKey, func() (any, error) {
		return r.doRefresh()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// doRefresh runs one refresh round. It uses a background context so an
// impatient caller cannot abort the round for everyone else; the HTTP
// timeout of the underlying client bounds it instead.
func (r *Refresher) doRefresh() (string, error) {
	ctx := context.Background()

	refreshToken := r.session.RefreshToken()
	if refreshToken == "" {
		r.log.Warn(ctx, "no refresh token available, session is over")
		r.session.Invalidate(ctx, "session expired")
		return "", ErrSessionExpired
	}

	r.log.Debug(ctx, "refreshing access token")

	pair, err := r.exec(ctx, refreshToken)
	if err != nil {
		r.log.Warn(ctx, "token refresh failed", "error", err)
		r.session.Invalidate(ctx, "session expired")
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	if err := r.session.StoreTokens(ctx, pair); err != nil {
		r.log.Error(ctx, "failed to persist refreshed tokens", "error", err)
		r.session.Invalidate(ctx, "session expired")
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	r.log.Debug(ctx, "access token refreshed")
	return pair.AccessToken, nil
}
