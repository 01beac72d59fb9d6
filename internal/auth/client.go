package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client talks to a GoTrue-style authentication service over HTTP: password
// grant sign-in, email sign-up, and token-revoking sign-out. It remembers the
// most recent session so the rest of the process can observe it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu      sync.Mutex
	current *Session
}

// NewClient creates an HTTP Authenticator against baseURL (the service root,
// e.g. "https://example.supabase.co/auth/v1").
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	sess, err := c.tokenRequest(ctx, "/token?grant_type=password", email, password)
	if err != nil {
		return nil, err
	}
	c.setSession(sess)
	return sess, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	sess, err := c.tokenRequest(ctx, "/signup", email, password)
	if err != nil {
		return nil, err
	}
	c.setSession(sess)
	return sess, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	sess := c.current
	c.current = nil
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Client) setSession(sess *Session) {
	c.mu.Lock()
	c.current = sess
	c.mu.Unlock()
}

func (c *Client) tokenRequest(ctx context.Context, path, email, password string) (*Session, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if token.User.ID == "" {
		return nil, fmt.Errorf("auth response missing user id")
	}

	return &Session{
		UserID:      token.User.ID,
		Email:       token.User.Email,
		AccessToken: token.AccessToken,
	}, nil
}
