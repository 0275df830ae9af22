package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oceanlens/oceanlens/internal/analysis"
	"github.com/oceanlens/oceanlens/internal/session"
)

// Default deadlines per endpoint class. Analysis scrapes and scores a
// profile server-side, so it gets a much longer budget.
const (
	DefaultTimeout = 10 * time.Second
	AnalyzeTimeout = 60 * time.Second
)

// Client exposes one method per service endpoint, all built on the Executor.
type Client struct {
	exec           *Executor
	timeout        time.Duration
	analyzeTimeout time.Duration
}

// NewClient wraps exec with the given per-call deadlines. Zero durations
// fall back to the defaults.
func NewClient(exec *Executor, timeout, analyzeTimeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if analyzeTimeout <= 0 {
		analyzeTimeout = AnalyzeTimeout
	}
	return &Client{exec: exec, timeout: timeout, analyzeTimeout: analyzeTimeout}
}

// LoginResult is the decoded credential exchange.
type LoginResult struct {
	User  session.User
	Token string
}

// loginBody is the wire shape of a successful login. The service returns the
// profile fields upper-cased.
type loginBody struct {
	User struct {
		ID       string `json:"ID"`
		FullName string `json:"FULLNAME"`
		Email    string `json:"EMAIL"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

// Login exchanges email+password for a user profile and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	out := c.exec.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/api/users/login",
		Body:    map[string]string{"email": email, "password": password},
		Timeout: c.timeout,
	})
	if err := out.Err(); err != nil {
		return LoginResult{}, err
	}

	var body loginBody
	if err := json.Unmarshal(out.Payload, &body); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	if body.AccessToken == "" || body.User.ID == "" {
		return LoginResult{}, fmt.Errorf("login response missing credentials")
	}

	return LoginResult{
		User: session.User{
			ID:       body.User.ID,
			FullName: body.User.FullName,
			Email:    body.User.Email,
		},
		Token: body.AccessToken,
	}, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	out := c.exec.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/add_user",
		Body: map[string]string{
			"full_name": fullName,
			"email":     email,
			"password":  password,
		},
		Timeout: c.timeout,
	})
	err := out.Err()
	var ce *CallError
	if errors.As(err, &ce) && strings.Contains(ce.Message, "Email already exists") {
		ce.Message = "user already exists"
	}
	return err
}

// UpdateAccountRequest carries a profile update. NewPassword is sent only
// when the user chose to change it.
type UpdateAccountRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
}

// UpdateAccount updates profile fields and optionally the password.
func (c *Client) UpdateAccount(ctx context.Context, token string, req UpdateAccountRequest) error {
	out := c.exec.Do(ctx, Request{
		Method:  http.MethodPut,
		Path:    "/api/update_users",
		Body:    req,
		Token:   token,
		Timeout: c.timeout,
	})
	return out.Err()
}

// Logout invalidates the session server-side. The caller clears the local
// session on success (or on a 401, which means it was already dead).
func (c *Client) Logout(ctx context.Context, token string) error {
	out := c.exec.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    "/api/logout",
		Token:   token,
		Timeout: c.timeout,
	})
	return out.Err()
}

// History fetches all stored analyses for the given account email.
func (c *Client) History(ctx context.Context, token, email string) ([]analysis.Record, error) {
	out := c.exec.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    "/api/get_analysis_by_email",
		Query:   url.Values{"email": {email}},
		Token:   token,
		Timeout: c.timeout,
	})
	if err := out.Err(); err != nil {
		return nil, err
	}

	var body struct {
		Analyses []analysis.Record `json:"analyses"`
	}
	if err := json.Unmarshal(out.Payload, &body); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return body.Analyses, nil
}

// Analyze runs a new analysis of profileURL, sampling count posts. The
// result is attributed to the given account email server-side.
func (c *Client) Analyze(ctx context.Context, token, profileURL string, count int, email string) (analysis.AnalyzeResponse, error) {
	out := c.exec.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/api/analyze_profile",
		Query: url.Values{
			"url":   {profileURL},
			"count": {strconv.Itoa(count)},
			"email": {email},
		},
		Token:   token,
		Timeout: c.analyzeTimeout,
	})
	if err := out.Err(); err != nil {
		return analysis.AnalyzeResponse{}, err
	}

	var body analysis.AnalyzeResponse
	if err := json.Unmarshal(out.Payload, &body); err != nil {
		return analysis.AnalyzeResponse{}, fmt.Errorf("decode analysis response: %w", err)
	}
	return body, nil
}
