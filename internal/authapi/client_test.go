package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *storage.AuthRepo) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo := storage.NewAuthRepo(storage.NewMemoryStore())
	c, err := New(config.AuthConfig{APIURL: srv.URL + "/", Timeout: time.Second, MaxRetries: 2}, repo)
	require.NoError(t, err)
	c.backoff = func(int) time.Duration { return 0 }
	return c, repo
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(config.AuthConfig{}, storage.NewAuthRepo(storage.NewMemoryStore()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemoteAuthDisabled))
}

func TestBaseURLTrimmed(t *testing.T) {
	c, err := New(config.AuthConfig{APIURL: "https://api.example.com/"}, storage.NewAuthRepo(storage.NewMemoryStore()))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", c.BaseURL())
	assert.Equal(t, "https://api.example.com/auth/google", c.GoogleAuthURL())
}

func TestLoginStoresTokenAndSession(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ann@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{
			"user":  map[string]string{"email": "ann@example.com", "name": "Ann"},
			"token": "tok-1",
		})
	})

	res, err := c.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "Ann", res.User.Name)

	token, _ := repo.Token()
	assert.Equal(t, "tok-1", token)
	current, _ := repo.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "ann@example.com", current.Email)
}

func TestRegisterWithoutTokenLeavesSession(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		var body RegisterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Lee", body.LastName)
		writeJSON(w, http.StatusCreated, map[string]any{
			"user": map[string]string{"email": body.Email},
		})
	})

	res, err := c.Register(context.Background(), RegisterRequest{Email: "ann@example.com", Password: "secret", LastName: "Lee"})
	require.NoError(t, err)
	assert.Empty(t, res.Token)

	current, _ := repo.CurrentUser()
	assert.Nil(t, current)
}

func TestMeSendsBearerToken(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"email": "ann@example.com", "firstName": "Ann"})
	})
	require.NoError(t, repo.SaveToken("tok-2"))

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.FirstName)

	current, _ := repo.CurrentUser()
	assert.Equal(t, "Ann", current.FirstName)
}

func TestUpdateProfile(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/auth/profile", r.URL.Path)
		var patch map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, map[string]string{"name": "Annie"}, patch)
		writeJSON(w, http.StatusOK, map[string]string{"email": "ann@example.com", "name": "Annie"})
	})

	name := "Annie"
	user, err := c.UpdateProfile(context.Background(), model.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", user.Name)

	current, _ := repo.CurrentUser()
	assert.Equal(t, "Annie", current.Name)
}

func TestClientErrorMessage(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	})

	_, err := c.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.True(t, errors.Is(err, errors.ErrRemoteRequestFailed))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<html>nope</html>"))
	})

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Forbidden", err.Error())
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": "ann@example.com"})
	})

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"message": "slow down"})
	})

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "slow down", err.Error())
	assert.Equal(t, int32(3), calls.Load())
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(config.AuthConfig{APIURL: url, Timeout: time.Second}, storage.NewAuthRepo(storage.NewMemoryStore()))
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNetworkUnavailable))
	assert.True(t, errors.IsRecoverableError(err))
}

func TestMalformedSuccessBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
}

func TestSetSessionFromOAuth(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer oauth-tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"email": "ann@gmail.com", "name": "Ann"})
	})

	user, err := c.SetSessionFromOAuth(context.Background(), "  oauth-tok\n")
	require.NoError(t, err)
	assert.Equal(t, "ann@gmail.com", user.Email)

	token, _ := repo.Token()
	assert.Equal(t, "oauth-tok", token)
	current, _ := repo.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "Ann", current.Name)
}

func TestSetSessionFromOAuthRejected(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
	})

	_, err := c.SetSessionFromOAuth(context.Background(), "stale")
	require.Error(t, err)
	token, _ := repo.Token()
	assert.Empty(t, token)
	current, _ := repo.CurrentUser()
	assert.Nil(t, current)

	_, err = c.SetSessionFromOAuth(context.Background(), " ")
	assert.True(t, errors.IsUserError(err))
}

func TestLogoutClearsTokenAndSession(t *testing.T) {
	c, repo := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not call the server")
	})
	require.NoError(t, repo.SaveToken("tok-3"))
	require.NoError(t, repo.SetSession(&model.SessionUser{Email: "ann@example.com"}))

	require.NoError(t, c.Logout())
	token, _ = repo.Token()
	assert.Empty(t, token)
	current, _ := repo.CurrentUser()
	assert.Nil(t, current)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestInspectToken(t *testing.T) {
	exp := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", info.Subject)
	assert.True(t, info.HasExpiry)
	assert.True(t, exp.Equal(info.ExpiresAt))
	assert.False(t, info.Expired(exp.Add(-time.Minute)))
	assert.True(t, info.Expired(exp))

	got, ok, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	info, err := InspectToken(signedToken(t, jwt.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)
	assert.False(t, info.HasExpiry)
	assert.False(t, info.Expired(time.Now()))
}

func TestInspectTokenMalformed(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	assert.Error(t, err)

	_, _, err = TokenExpiry("")
	assert.Error(t, err)
}
