package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/logging"
)

const (
	// DefaultTimeout bounds a single exchange when none is configured.
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 8 << 20
	maxErrorBody     = 512
)

// HTTP talks JSON to the auction server rooted at Base.
type HTTP struct {
	Base    string
	Client  *http.Client
	Timeout time.Duration
	Logger  *slog.Logger
}

var _ domain.Transport = (*HTTP)(nil)

// Option configures an HTTP transport.
type Option func(*HTTP)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option { return func(h *HTTP) { h.Client = c } }

// WithTimeout sets the per-request timeout; zero disables it.
func WithTimeout(d time.Duration) Option { return func(h *HTTP) { h.Timeout = d } }

// WithLogger sets the logger for request lines.
func WithLogger(l *slog.Logger) Option { return func(h *HTTP) { h.Logger = l } }

// NewHTTP returns a transport for base, e.g. "http://127.0.0.1:8000".
func NewHTTP(base string, opts ...Option) *HTTP {
	h := &HTTP{
		Base:    strings.TrimRight(base, "/"),
		Client:  http.DefaultClient,
		Timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send performs one exchange and returns the response body of a 2xx answer.
func (c *HTTP) Send(ctx context.Context, r types.Request) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	id := uuid.NewString()
	log := c.logger().With("method", r.Method, "path", r.Path, "request_id", id)
	fail := func(err error) error {
		log.Warn("request failed", "err", err)
		return &Error{Method: r.Method, Path: r.Path, RequestID: id, Err: err}
	}

	var body io.Reader
	if r.HasBody() {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.Base+r.Path, body)
	if err != nil {
		return nil, fail(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := time.Now()
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(fmt.Errorf("read response: %w", err))
	}
	log.Debug("request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode/100 != 2 {
		return nil, statusError(r, id, resp.StatusCode, out)
	}
	return out, nil
}

func (c *HTTP) client() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

func (c *HTTP) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

// statusError decodes the server's {"detail": ...} body. Detail is either the
// structured {status, code, message} object or, for framework errors, a plain
// string.
func statusError(r types.Request, id string, status int, body []byte) *StatusError {
	e := &StatusError{Method: r.Method, Path: r.Path, StatusCode: status, RequestID: id}

	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		var d types.ErrorDetail
		if err := json.Unmarshal(env.Detail, &d); err == nil && (d.Message != "" || d.Code != 0) {
			e.Detail = &d
			return e
		}
		var s string
		if err := json.Unmarshal(env.Detail, &s); err == nil {
			e.Detail = &types.ErrorDetail{Code: status, Message: s}
			return e
		}
	}
	e.Body = truncate(string(body), maxErrorBody)
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
