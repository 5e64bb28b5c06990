package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/resources"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

var (
	_ auth.Service      = (*Client)(nil)
	_ resources.Service = (*Client)(nil)
)

// authRecorder remembers the last Authorization header seen by the server
type authRecorder struct {
	mu     sync.Mutex
	header string
}

func (a *authRecorder) set(h string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.header = h
}

func (a *authRecorder) get() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.header
}

// mockAPIServer answers the login, logout and project endpoints
func mockAPIServer(t *testing.T, lastAuth *authRecorder) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var in models.LoginInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("failed to decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if in.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid credentials"}`))
			return
		}

		json.NewEncoder(w).Encode(models.AuthResponse{
			User:  models.User{ID: "user-123", Email: in.Email, Name: "Test User"},
			Token: "test-token-abc",
		})
	})
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		lastAuth.set(r.Header.Get("Authorization"))

		var in models.CreateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Project{ID: "p1", Title: in.Title, Status: in.Status})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		lastAuth.set(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	return httptest.NewServer(mux)
}

func TestClient_Login(t *testing.T) {
	lastAuth := &authRecorder{}
	server := mockAPIServer(t, lastAuth)
	defer server.Close()

	c := New(server.URL+"/", nil)

	resp, err := c.Login(context.Background(), models.LoginInput{Email: "test@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "test-token-abc", resp.Token)
	assert.Equal(t, "Test User", resp.User.Name)

	_, err = c.Login(context.Background(), models.LoginInput{Email: "test@example.com", Password: "wrong"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "invalid credentials")
}

func TestClient_SendsStoredToken(t *testing.T) {
	lastAuth := &authRecorder{}
	server := mockAPIServer(t, lastAuth)
	defer server.Close()

	store := storage.NewMemoryStore()
	c := New(server.URL, store)

	project, err := c.CreateProject(context.Background(), models.CreateProjectInput{Title: "Relaunch", Status: models.ProjectStatusPlanning})
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)
	assert.Empty(t, lastAuth.get(), "no token stored yet")

	require.NoError(t, store.SetItem(storage.AuthTokenKey, "test-token-abc"))
	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, "Bearer test-token-abc", lastAuth.get())
}

func TestClient_NotFound(t *testing.T) {
	lastAuth := &authRecorder{}
	server := mockAPIServer(t, lastAuth)
	defer server.Close()

	c := New(server.URL, nil)

	_, err := c.CreateWorkspace(context.Background(), models.NewCreateWorkspaceInput())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "create workspace", statusErr.Action)
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := New(url, nil).ForgotPassword(context.Background(), models.ForgotPasswordInput{Email: "a@b.co"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}
