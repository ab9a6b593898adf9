// Package api is the typed REST client for the marketplace backend. All
// business data crosses this boundary; the client attaches the session's
// bearer token to every request and rate-limits outbound calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"lawconnect/session"
	"lawconnect/utils"
)

// GenericErrMessage is shown when the backend provides no usable message.
const GenericErrMessage = "Something went wrong. Please try again."

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 backend response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New builds a client against the given API base URL. The session feeds the
// bearer interceptor; requests sent while signed out simply carry no token.
func New(baseURL string, sess *session.Session, timeout time.Duration, maxPerMin int) *Client {
	if maxPerMin <= 0 {
		maxPerMin = 120
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newAuthTransport(sess),
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMin)), maxPerMin/4+1),
		logger:  utils.GetLogger(),
	}
}

// errBody is the backend's error envelope. Some endpoints use "message",
// older ones "error"; the first non-empty wins.
type errBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// do issues one request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Err
		}
		if msg == "" {
			msg = GenericErrMessage
		}
		c.logger.Warn("backend error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// avatarURL derives the public URL for a stored avatar id.
func (c *Client) avatarURL(avatarID string) string {
	if avatarID == "" {
		return ""
	}
	return c.baseURL + "/uploads/avatars/" + avatarID
}
