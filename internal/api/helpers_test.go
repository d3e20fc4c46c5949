package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"staffkeeper/internal/cryptox"
	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
)

func newTestSession(t *testing.T) *session.Manager {
	t.Helper()

	dir := t.TempDir()
	db, err := session.OpenDB(context.Background(), filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key, err := cryptox.LoadOrCreateKey(filepath.Join(dir, "session.key"))
	require.NoError(t, err)

	return session.NewManager(session.NewStore(db, key), logging.Nop{})
}

// seedSession puts the manager into a fully authenticated state.
func seedSession(t *testing.T, mgr *session.Manager, access, refresh string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, mgr.StoreTokens(ctx, models.TokenPair{AccessToken: access, RefreshToken: refresh}))
	require.NoError(t, mgr.SetUser(ctx, &models.UserProfile{
		ID:        "1",
		FirstName: "Ada",
		LastName:  "Admin",
		Username:  "aadmin",
		Email:     "ada@example.com",
		Role:      models.RoleAdmin,
	}))
	require.True(t, mgr.IsAuthenticated())
}

func newTestClient(t *testing.T, mgr *session.Manager, baseURL string) *HTTPClient {
	t.Helper()

	client, err := NewHTTPClient(Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Session: mgr,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// writeEnvelope emits the backend's uniform response shape.
func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
