// Package identity wraps the external identity provider (a Supabase
// GoTrue-compatible API). The provider owns credentials and token issuance;
// this package only verifies tokens and forwards signup/login calls.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cort_fleet/internal/apperr"
)

// Session is the provider-issued token bundle returned on signup and login.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

// Service is the surface consumed by the auth gate and the auth controller.
type Service interface {
	// VerifyToken resolves an access token to the provider's subject id.
	VerifyToken(ctx context.Context, token string) (string, error)
	// SignUp registers credentials with the provider and returns the new
	// subject id plus a session when the provider issues one immediately.
	SignUp(ctx context.Context, email, password string) (string, *Session, error)
	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (string, *Session, error)
}

// Client talks to the provider over its REST API. It is constructed once in
// main and shared; it holds no per-request state.
type Client struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte
	http      *http.Client
}

// NewClient builds a provider client. When jwtSecret is non-empty, access
// tokens are verified locally (HS256) instead of via the remote user
// endpoint, saving a network round-trip per request.
func NewClient(baseURL, anonKey, jwtSecret string) *Client {
	var secret []byte
	if jwtSecret != "" {
		secret = []byte(jwtSecret)
	}
	return &Client{
		baseURL:   baseURL,
		anonKey:   anonKey,
		jwtSecret: secret,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	if c.jwtSecret != nil {
		return c.verifyLocal(token)
	}
	return c.verifyRemote(ctx, token)
}

func (c *Client) verifyLocal(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", apperr.Unauthenticated("Invalid token")
	}
	return claims.Subject, nil
}

func (c *Client) verifyRemote(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Unauthenticated("Invalid token")
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.ID == "" {
		return "", apperr.Unauthenticated("Invalid token")
	}
	return body.ID, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (string, *Session, error) {
	var body struct {
		ID   string `json:"id"`
		User *struct {
			ID string `json:"id"`
		} `json:"user"`
		Session
	}
	if err := c.post(ctx, "/auth/v1/signup", email, password, &body); err != nil {
		return "", nil, err
	}

	subjectID := body.ID
	if body.User != nil && body.User.ID != "" {
		subjectID = body.User.ID
	}
	if subjectID == "" {
		return "", nil, apperr.BadRequest("Failed to create user")
	}

	var session *Session
	if body.AccessToken != "" {
		s := body.Session
		session = &s
	}
	return subjectID, session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (string, *Session, error) {
	var body struct {
		User *struct {
			ID string `json:"id"`
		} `json:"user"`
		Session
	}
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", email, password, &body); err != nil {
		var apiErr *apperr.Error
		if errors.As(err, &apiErr) {
			return "", nil, apperr.Unauthenticated("Invalid email or password")
		}
		return "", nil, err
	}
	if body.User == nil || body.User.ID == "" || body.AccessToken == "" {
		return "", nil, apperr.Unauthenticated("Invalid email or password")
	}
	s := body.Session
	return body.User.ID, &s, nil
}

func (c *Client) post(ctx context.Context, path, email, password string, out interface{}) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apperr.New(resp.StatusCode, providerMessage(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// providerMessage pulls a human-readable message out of a GoTrue error
// payload, which uses different keys depending on the endpoint.
func providerMessage(r io.Reader) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(r).Decode(&body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}
	return "identity provider request failed"
}
