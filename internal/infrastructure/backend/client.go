// Package backend is the REST client for the wallet service. It attaches the
// session's bearer token to every request and centralizes the reaction to a
// 401: the session is cleared (idempotently), a one-shot expiry notice is
// recorded, and the original error still reaches the caller.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiwallet/wallet-console/internal/api/metrics"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings for reaching the wallet backend.
type Config struct {
	BaseURL string
	// PinSetupPath is configurable because observed backend versions
	// disagree between /auth/setup-pin and /user/setup-pin.
	PinSetupPath string
	Timeout      time.Duration
}

// Client implements ports.WalletBackend over HTTP/JSON.
type Client struct {
	http         *http.Client
	baseURL      string
	pinSetupPath string
	sessions     ports.SessionStore
	audit        ports.AuditRepository
	log          zerolog.Logger
}

func NewClient(cfg Config, sessions ports.SessionStore, audit ports.AuditRepository, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		baseURL:      cfg.BaseURL,
		pinSetupPath: cfg.PinSetupPath,
		sessions:     sessions,
		audit:        audit,
		log:          log,
	}
}

// errorBody is the backend's error envelope. Message is preferred over Error
// when both are present.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doRaw performs one request: bearer injection, metrics, and the 401
// interceptor. It returns the status and raw body; callers that care about
// specific statuses (login's 403) read them directly.
func (c *Client) doRaw(ctx context.Context, endpoint, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach the bearer credential when a session is present; otherwise
	// the request goes out unauthenticated.
	sess := domain.SessionFromContext(ctx)
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Authoritative signal that the token is no longer valid,
		// regardless of what the guard last computed locally.
		c.invalidateSession(ctx, sess)
	}

	return resp.StatusCode, raw, nil
}

// do runs a request and decodes a 2xx answer into out (when non-nil).
// Non-2xx answers become a BackendError carrying the backend's message.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any) error {
	status, raw, err := c.doRaw(ctx, endpoint, method, path, body)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		return &domain.BackendError{Status: status, Message: errorMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", endpoint, err)
		}
	}
	return nil
}

// invalidateSession clears the session after a backend 401. Only the first
// of any concurrent 401s observes the clear; the rest are no-ops, so the
// user sees a single "session expired" notice.
func (c *Client) invalidateSession(ctx context.Context, sess *domain.Session) {
	if sess == nil {
		return
	}

	cleared, err := c.sessions.Clear(ctx, sess.ID)
	if err != nil {
		c.log.Warn().Err(err).Msg("session clear after 401 failed")
		return
	}
	if !cleared {
		return
	}

	if _, err := c.sessions.MarkExpiredNotice(ctx, sess.ID); err != nil {
		c.log.Warn().Err(err).Msg("expiry notice mark failed")
	}

	metrics.SessionsTerminatedTotal.WithLabelValues("backend_401").Inc()
	if err := c.audit.Record(ctx, &domain.AuthEvent{
		SessionID: shortSessionID(sess.ID),
		Kind:      domain.AuthEventTermination,
		Reason:    "backend_401",
		At:        time.Now().UTC(),
	}); err != nil {
		c.log.Warn().Err(err).Msg("audit record failed")
	}

	c.log.Info().Str("session", shortSessionID(sess.ID)).Msg("backend rejected token, session cleared")
}

// errorMessage extracts a human-readable message from an error body:
// message field first, then error field, then a generic fallback.
func errorMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return "request failed"
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
