// Package signup is a client for the managed signup database. The users table
// lives in an external hosted Postgres reached over its REST gateway; this
// process never owns the data, it only forwards inserts.
package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/cfshr/aur/pkg/errors"
	"github.com/cfshr/aur/pkg/httpclient"
)

// pgUniqueViolation is the Postgres error code surfaced by the REST gateway
// when the email column's unique constraint rejects an insert.
const pgUniqueViolation = "23505"

// Signup is a row in the managed users table.
type Signup struct {
	UserType        string   `json:"user_type" validate:"required,oneof=enthusiast artisan collector"`
	FirstName       string   `json:"first_name" validate:"required,max=100"`
	LastName        string   `json:"last_name" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	DesignInterests []string `json:"design_interests"`
	AgreedToTerms   bool     `json:"agreed_to_terms" validate:"required"`
}

// Record is a created signup as returned by the database.
type Record struct {
	ID string `json:"id"`
	Signup
	CreatedAt time.Time `json:"created_at"`
}

// gatewayError is the error body returned by the REST gateway.
type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client talks to the managed database's REST gateway.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewClient creates a signup client for the given gateway URL and anon key.
func NewClient(hc *httpclient.CircuitBreakerClient, baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http:    hc,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Create inserts a signup row and returns the stored record. A duplicate
// email maps to an already-exists error.
func (c *Client) Create(ctx context.Context, s Signup) (*Record, error) {
	body, err := json.Marshal([]Signup{s})
	if err != nil {
		return nil, fmt.Errorf("marshal signup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create signup request: %w", err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("signup insert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		var records []Record
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode signup response: %w", err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("signup response contained no record")
		}
		return &records[0], nil
	}

	return nil, c.responseError(ctx, resp, s.Email)
}

// Ping verifies the gateway and the users table are reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/v1/users?select=id&limit=1", nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("signup ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("signup gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// responseError translates a non-2xx gateway response into an app error.
func (c *Client) responseError(ctx context.Context, resp *http.Response, email string) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("signup gateway status %d (read body: %w)", resp.StatusCode, err)
	}

	var gwErr gatewayError
	if json.Unmarshal(raw, &gwErr) == nil && gwErr.Code == pgUniqueViolation {
		return apperrors.AlreadyExists("signup", "email", email)
	}
	if resp.StatusCode == http.StatusConflict {
		return apperrors.AlreadyExists("signup", "email", email)
	}

	c.logger.ErrorContext(ctx, "signup insert rejected",
		slog.Int("status", resp.StatusCode),
		slog.String("code", gwErr.Code),
		slog.String("message", gwErr.Message),
	)

	if resp.StatusCode >= 500 {
		return apperrors.Unavailable("signup database unavailable")
	}
	return apperrors.InvalidInput("signup rejected: " + gwErr.Message)
}
