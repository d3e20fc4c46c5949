package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"staffkeeper/internal/logging"
	"staffkeeper/internal/session"
)

// Header names used on every outbound request.
const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-Id"
)

// transport decorates the base RoundTripper with session handling: it
// attaches the current bearer token, tags each logical request with an
// id for correlation, and on a 401 refreshes the token and replays the
// request once. A 401 on a request that carried no token (the login
// call itself) passes through untouched.
type transport struct {
	base      http.RoundTripper
	session   *session.Manager
	refresher *Refresher
	log       logging.Logger
}

func newTransport(base http.RoundTripper, sess *session.Manager, refresher *Refresher, log logging.Logger) *transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{base: base, session: sess, refresher: refresher, log: log}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.session.AccessToken()
	requestID := uuid.NewString()

	attempt := req.Clone(req.Context())
	decorate(attempt, token, requestID)

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || token == "" {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// The body is already consumed and cannot be replayed.
		return resp, nil
	}

	// The token we attached was rejected. Refresh once and replay; a
	// second 401 comes back to the caller as-is, there is no loop here.
	t.log.Debug(req.Context(), "access token rejected, refreshing", "request_id", requestID)

	fresh, err := t.refresher.Refresh(req.Context(), token)
	if err != nil {
		drain(resp)
		return nil, err
	}
	drain(resp)

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		retry.Body = body
	}
	decorate(retry, fresh, requestID)

	return t.base.RoundTrip(retry)
}

func decorate(req *http.Request, token, requestID string) {
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	req.Header.Set(headerRequestID, requestID)
}

// drain discards and closes a response body so the underlying
// connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
