// Package authapi is a client for the optional remote auth server. It is
// used only when an API URL is configured; otherwise auth stays local.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// Session is where the client persists the bearer token and the signed-in
// user. storage.AuthRepo satisfies it.
type Session interface {
	SaveToken(token string) error
	Token() (string, error)
	ClearToken() error
	SetSession(s *model.SessionUser) error
	Logout() error
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AuthResult is the envelope returned by register and login.
type AuthResult struct {
	User  model.SessionUser `json:"user"`
	Token string            `json:"token,omitempty"`
}

// APIError is a non-2xx response from the auth server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return errors.ErrRemoteRequestFailed
}

// Client talks to the auth server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	maxRetries int
	backoff    func(attempt int) time.Duration
}

// New creates a client from cfg. It fails with ErrRemoteAuthDisabled when
// no API URL is configured.
func New(cfg config.AuthConfig, session Session) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if base == "" {
		return nil, errors.UserErrorFor(errors.ErrRemoteAuthDisabled, "", "")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    defaultBackoff,
	}, nil
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 500 * time.Millisecond
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GoogleAuthURL is where a browser is sent to sign in with Google. The
// server redirects back with a token.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/auth/google"
}

// Register creates an account. When the server returns a token the user
// is signed in locally.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	if err := c.storeResult(&result); err != nil {
		return nil, err
	}
	logging.Info("remote register", logging.KeyEmail, req.Email)
	return &result, nil
}

// Login signs in against the server. When the server returns a token the
// user is signed in locally.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	if err := c.storeResult(&result); err != nil {
		return nil, err
	}
	logging.Info("remote login", logging.KeyEmail, email)
	return &result, nil
}

// SetSessionFromOAuth signs in with the token handed out by the OAuth
// redirect and fills the session from /auth/me. A token the server
// rejects is not kept.
func (c *Client) SetSessionFromOAuth(ctx context.Context, token string) (*model.SessionUser, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.NewUserErrorWithField("token", "", "token is empty",
			"Copy the token from the page shown after signing in.")
	}
	if err := c.session.SaveToken(token); err != nil {
		return nil, err
	}
	user, err := c.Me(ctx)
	if err != nil {
		if clearErr := c.session.ClearToken(); clearErr != nil {
			logging.Warn("dropping rejected token failed", logging.KeyError, clearErr)
		}
		return nil, err
	}
	logging.Info("remote oauth login", logging.KeyEmail, user.Email)
	return user, nil
}

// Me fetches the signed-in user and refreshes the local session.
func (c *Client) Me(ctx context.Context) (*model.SessionUser, error) {
	var user model.SessionUser
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	if err := c.session.SetSession(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile sends a partial profile update and stores the returned
// user as the session.
func (c *Client) UpdateProfile(ctx context.Context, patch model.UserPatch) (*model.SessionUser, error) {
	var user model.SessionUser
	if err := c.do(ctx, http.MethodPatch, "/auth/profile", patch, &user); err != nil {
		return nil, err
	}
	if err := c.session.SetSession(&user); err != nil {
		return nil, err
	}
	logging.LogOperation("user.update.remote", logging.KeyEmail, user.Email)
	return &user, nil
}

// Logout drops the token and the local session. The server keeps no
// session state, so nothing is sent.
func (c *Client) Logout() error {
	if err := c.session.ClearToken(); err != nil {
		return err
	}
	return c.session.Logout()
}

func (c *Client) storeResult(result *AuthResult) error {
	if result.Token == "" {
		return nil
	}
	if err := c.session.SaveToken(result.Token); err != nil {
		return err
	}
	return c.session.SetSession(&result.User)
}

// do sends one JSON request, retrying transport failures, 429 and 5xx
// responses up to maxRetries times. Other 4xx responses fail at once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrap(err, "encode request")
		}
	}

	token, err := c.session.Token()
	if err != nil {
		return err
	}

	url := c.baseURL + path
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return contextError(ctx.Err())
			case <-time.After(c.backoff(attempt)):
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return errors.Wrap(err, "build request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "Tasksync/1.0")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		logging.DebugLog("auth request", logging.KeyURL, url, "method", method, "attempt", attempt+1)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return contextError(ctx.Err())
			}
			lastErr = errors.NewRecoverableError("auth server unreachable",
				fmt.Errorf("%w: %v", errors.ErrNetworkUnavailable, err), attempt+1)
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = errors.NewRecoverableError("auth response interrupted",
				fmt.Errorf("%w: %v", errors.ErrNetworkUnavailable, readErr), attempt+1)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil || len(bytes.TrimSpace(data)) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return errors.NewSystemErrorWithOp("auth response", "malformed response from auth server", err)
			}
			return nil
		}

		apiErr := decodeError(resp, data)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = apiErr
			continue
		}
		return apiErr
	}
	return lastErr
}

// decodeError reads {"message": "..."} from an error response, falling
// back to the status text.
func decodeError(resp *http.Response, data []byte) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.NewRecoverableError("auth request timed out", errors.ErrTimeout, 0)
	}
	return err
}
