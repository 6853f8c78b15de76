// Package newsletter subscribes email addresses to the mailing-list provider.
// Delivery of the mails themselves is entirely the provider's business.
package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/cfshr/aur/pkg/errors"
	"github.com/cfshr/aur/pkg/httpclient"
)

// Client talks to the mailing-list provider's subscriber API.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	apiKey  string
	groupID string
	logger  *slog.Logger
}

// NewClient creates a newsletter client for the given provider URL, API key,
// and subscriber group.
func NewClient(hc *httpclient.CircuitBreakerClient, baseURL, apiKey, groupID string, logger *slog.Logger) *Client {
	return &Client{
		http:    hc,
		baseURL: baseURL,
		apiKey:  apiKey,
		groupID: groupID,
		logger:  logger,
	}
}

type subscribeRequest struct {
	Email  string            `json:"email"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Subscribe adds the email to the configured group. The source tag records
// which part of the site captured the address (e.g. "jeweler_waitlist_popup").
func (c *Client) Subscribe(ctx context.Context, email, source string) error {
	payload := subscribeRequest{Email: email}
	if source != "" {
		payload.Fields = map[string]string{"source": source}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal subscribe request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/groups/%s/subscribers", c.baseURL, c.groupID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-MailerLite-ApiKey", c.apiKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("newsletter subscribe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.ErrorContext(ctx, "newsletter subscribe rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("group_id", c.groupID),
		)
		if resp.StatusCode >= 500 {
			return apperrors.Unavailable("mailing list provider unavailable")
		}
		return apperrors.InvalidInput(fmt.Sprintf("mailing list provider rejected the request (status %d)", resp.StatusCode))
	}

	c.logger.InfoContext(ctx, "subscribed to mailing list",
		slog.String("group_id", c.groupID),
		slog.String("source", source),
	)

	return nil
}
