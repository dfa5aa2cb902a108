// Package client is a Go consumer of the API. It carries the session cookies
// in a jar and drives the login flow state machine the frontends implement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/canopy-api/internal/domain"
)

// APIError is a non-ok response decoded from the wire envelope.
type APIError struct {
	Code string
	// Domain is set for email_domain_invalid responses.
	Domain string
}

func (e *APIError) Error() string { return e.Code }

type envelope struct {
	OK     bool               `json:"ok"`
	Error  string             `json:"error"`
	Domain string             `json:"domain"`
	Dev    bool               `json:"dev"`
	User   *domain.PublicUser `json:"user"`
}

// Client talks to the API base URL with a private cookie jar, so the token
// pair set by verify-otp is presented on subsequent calls automatically.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if !env.OK {
		code := env.Error
		if code == "" {
			code = "server_error"
		}
		return nil, &APIError{Code: code, Domain: env.Domain}
	}
	return &env, nil
}

// SendOTP requests a code for the identity. dev reports the delivery bypass.
func (c *Client) SendOTP(ctx context.Context, collegeName, name, email string) (dev bool, err error) {
	env, err := c.do(ctx, http.MethodPost, "/v1/auth/send-otp", domain.SendOTPRequest{
		CollegeName: collegeName,
		Name:        name,
		Email:       email,
	})
	if err != nil {
		return false, err
	}
	return env.Dev, nil
}

// VerifyOTP submits the code. On success the cookie jar holds the session.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPost, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: email,
		OTP:   code,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Session returns the current user, exercising silent rotation server-side.
func (c *Client) Session(ctx context.Context) (*domain.PublicUser, error) {
	env, err := c.do(ctx, http.MethodGet, "/v1/session", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout drops the session cookies.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil)
	return err
}
