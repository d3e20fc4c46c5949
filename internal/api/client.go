package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
)

// Client is the transport-agnostic contract for talking to the staff
// backend. Mutating operations return the record as the backend now
// sees it, so the caller never has to guess at server-side defaults.
type Client interface {
	Close() error

	Login(ctx context.Context, identifier, password string) (string, error)
	VerifyOTP(ctx context.Context, identifier, code string) (models.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.UserProfile, error)

	ListUsers(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error)
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)
	CreateUser(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, id string) error
	RestoreUser(ctx context.Context, id string) (*models.UserProfile, error)
	PurgeUser(ctx context.Context, id string) error
}

// Options configures an HTTPClient.
type Options struct {
	// BaseURL is the root of the backend REST API.
	BaseURL string
	// Timeout bounds each request, refresh round-trips included.
	Timeout time.Duration
	// Session supplies tokens and receives refreshed ones.
	Session *session.Manager
	// Logger may be nil; a no-op logger is used then.
	Logger logging.Logger
	// Base is the underlying RoundTripper, nil means http.DefaultTransport.
	// Tests inject httptest server transports here.
	Base http.RoundTripper
}

// HTTPClient implements Client over REST/JSON with multipart uploads.
// All calls go through the session-aware transport except the refresh
// round-trip itself, which uses a bare client to stay out of its own way.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	bare      *http.Client
	session   *session.Manager
	refresher *Refresher
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient wires the client, its refresher, and the authenticated
// transport together.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if opts.Session == nil {
		return nil, errors.New("session manager is required")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop{}
	}

	c := &HTTPClient{
		baseURL: base,
		session: opts.Session,
		log:     log,
		bare:    &http.Client{Timeout: opts.Timeout, Transport: opts.Base},
	}
	c.refresher = NewRefresher(opts.Session, c.refreshExec, log)
	c.http = &http.Client{
		Timeout:   opts.Timeout,
		Transport: newTransport(opts.Base, opts.Session, c.refresher, log),
	}
	return c, nil
}

// Close releases idle connections held by the underlying transports.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	c.bare.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type otpRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login submits credentials. A successful response only acknowledges
// that a one-time code was emailed; the returned message tells the user
// where to look.
func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (string, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// VerifyOTP trades the emailed one-time code for a token pair.
func (c *HTTPClient) VerifyOTP(ctx context.Context, identifier, code string) (models.TokenPair, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/auth/otp", nil, otpRequest{
		Identifier: identifier,
		Code:       code,
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := env.decode(&pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token pair: %w", err)
	}
	return pair, nil
}

// RefreshToken trades a refresh token for a new pair. It deliberately
// bypasses the authenticated transport.
func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return models.TokenPair{}, err
	}

	env, err := c.do(ctx, c.bare, http.MethodPost, "/auth/refresh", nil, body, "application/json")
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := env.decode(&pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token pair: %w", err)
	}
	return pair, nil
}

// refreshExec adapts RefreshToken to the refresher seam.
func (c *HTTPClient) refreshExec(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return c.RefreshToken(ctx, refreshToken)
}

// Logout tells the backend to drop the session. Local teardown is the
// caller's job and must happen regardless of this call's outcome.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// Profile fetches the signed-in user's record.
func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := env.decode(&user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}

// ListUsers fetches one page of the user directory.
func (c *HTTPClient) ListUsers(ctx context.Context, query models.ListUsersQuery) (*models.UserPage, error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(query.PerPage))
	}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.Role != "" {
		q.Set("role", string(query.Role))
	}
	if query.Suspended != nil {
		q.Set("suspended", strconv.FormatBool(*query.Suspended))
	}

	env, err := c.doJSON(ctx, http.MethodGet, "/users", q, nil)
	if err != nil {
		return nil, err
	}

	page := &models.UserPage{}
	if err := env.decode(&page.Users); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	if env.Meta != nil {
		page.Meta = *env.Meta
	}
	return page, nil
}

// GetUser fetches a single record by id.
func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := env.decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// CreateUser submits the create form as multipart/form-data.
func (c *HTTPClient) CreateUser(ctx context.Context, params models.CreateUserParams) (*models.UserProfile, error) {
	form := NewForm()
	form.SetString("first_name", params.FirstName)
	form.SetString("last_name", params.LastName)
	form.SetString("username", params.Username)
	form.SetString("email", params.Email)
	form.SetString("password", params.Password)
	form.SetString("role", string(params.Role))
	form.SetOptString("phone", params.Phone)
	form.SetOptString("address", params.Address)
	form.SetStrings("departments", params.Departments)
	form.SetJSON("emergency_contact", params.EmergencyContact)
	form.SetFile("photo", params.Photo)
	form.SetFile("document", params.Document)

	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, c.http, http.MethodPost, "/users", nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := env.decode(&user); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}
	return &user, nil
}

// UpdateUser submits a partial update: only provided fields become
// parts, so the backend can tell "leave alone" from "set to empty".
func (c *HTTPClient) UpdateUser(ctx context.Context, id string, params models.UpdateUserParams) (*models.UserProfile, error) {
	form := NewForm()
	form.SetOptString("first_name", params.FirstName)
	form.SetOptString("last_name", params.LastName)
	form.SetOptString("username", params.Username)
	form.SetOptString("email", params.Email)
	form.SetOptString("password", params.Password)
	if params.Role != nil {
		form.SetString("role", string(*params.Role))
	}
	form.SetOptString("phone", params.Phone)
	form.SetOptString("address", params.Address)
	form.SetStrings("departments", params.Departments)
	form.SetJSON("emergency_contact", params.EmergencyContact)
	form.SetFile("photo", params.Photo)
	form.SetFile("document", params.Document)
	form.SetOptBool("suspended", params.Suspended)

	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, c.http, http.MethodPatch, "/users/"+url.PathEscape(id), nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := env.decode(&user); err != nil {
		return nil, fmt.Errorf("decode updated user: %w", err)
	}
	return &user, nil
}

// DeleteUser soft-deletes a record; RestoreUser brings it back.
func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	return err
}

// RestoreUser reverses a soft delete.
func (c *HTTPClient) RestoreUser(ctx context.Context, id string) (*models.UserProfile, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/users/"+url.PathEscape(id)+"/restore", nil, nil)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := env.decode(&user); err != nil {
		return nil, fmt.Errorf("decode restored user: %w", err)
	}
	return &user, nil
}

// PurgeUser permanently removes a soft-deleted record.
func (c *HTTPClient) PurgeUser(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id)+"/purge", nil, nil)
	return err
}

// doJSON marshals payload (when non-nil) and performs the request over
// the authenticated client.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, payload any) (*envelope, error) {
	var body []byte
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = raw
	}

	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, c.http, method, path, query, body, contentType)
}

// do performs one request and maps the outcome onto the error taxonomy:
// transport failures become ErrUnavailable, refresh failures surface as
// ErrSessionExpired, and non-2xx statuses become *Error values.
func (c *HTTPClient) do(ctx context.Context, httpc *http.Client, method, path string, query url.Values, body []byte, contentType string) (*envelope, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, ErrSessionExpired
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	env, decErr := decodeEnvelope(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if decErr != nil {
			return nil, fmt.Errorf("decode response: %w", decErr)
		}
		return env, nil
	}
	return nil, newStatusError(resp.StatusCode, env)
}
