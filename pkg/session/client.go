// Package session implements the portal's client-side session holder: it
// keeps the current bearer token and cached user profile in memory and in a
// durable store, attaches the token to outgoing requests, and drops the
// session on any authorization failure.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/you/healthportal/domain"
)

// Status of an initialized session. Initialization always resolves to one
// of the two; it never hangs on a dead server because every request runs
// under the client timeout.
type Status int

const (
	Anonymous Status = iota
	Authenticated
)

// DefaultTimeout bounds every request the client makes.
const DefaultTimeout = 10 * time.Second

// Client holds the current session and talks to the portal API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      Store

	// OnUnauthorized runs after the session is cleared due to a 401,
	// standing in for the front end's redirect to the login page.
	OnUnauthorized func()

	mu    sync.RWMutex
	token string
	user  *domain.PublicUser
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler sets the callback run after a 401 clears the session.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.OnUnauthorized = fn }
}

// New creates a session client for the API at baseURL, persisting session
// state in store.
func New(baseURL string, store Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		store:      store,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	User    *domain.PublicUser `json:"user"`
	Error   string             `json:"error"`
	Message string             `json:"message"`
}

// Init restores the session from the durable store. If a token is present
// it is validated with an identity fetch; on any failure the token is
// dropped and the session is anonymous. The returned status is always
// definitive.
func (c *Client) Init(ctx context.Context) Status {
	state, err := c.store.Load()
	if err != nil {
		return Anonymous
	}

	c.mu.Lock()
	c.token = state.Token
	c.mu.Unlock()

	user, err := c.fetchProfile(ctx)
	if err != nil {
		c.clearSession()
		return Anonymous
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	_ = c.store.Save(&State{Token: state.Token, User: user})
	return Authenticated
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	var resp authResponse
	if err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return nil, err
	}
	c.adopt(resp.Token, resp.User)
	return resp.User, nil
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	var resp authResponse
	if err := c.postJSON(ctx, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return nil, err
	}
	c.adopt(resp.Token, resp.User)
	return resp.User, nil
}

// Logout discards the session. Tokens are stateless server-side, so this is
// purely a client operation.
func (c *Client) Logout() {
	c.clearSession()
}

// Token returns the current bearer token, empty when anonymous.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns the cached public user view, nil when anonymous.
func (c *Client) User() *domain.PublicUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Do sends the request with the bearer token attached. A 401 response
// clears the session and fires OnUnauthorized before returning the
// response to the caller.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}
	return resp, nil
}

func (c *Client) adopt(token string, user *domain.PublicUser) {
	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	_ = c.store.Save(&State{Token: token, User: user})
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.token = ""
	c.user = nil
	c.mu.Unlock()
	_ = c.store.Clear()
}

func (c *Client) fetchProfile(ctx context.Context) (*domain.PublicUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/profile", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed with status %d", resp.StatusCode)
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, fmt.Errorf("profile response missing user")
	}
	return body.User, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out *authResponse) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return fmt.Errorf("request failed: %s", msg)
	}
	return nil
}
