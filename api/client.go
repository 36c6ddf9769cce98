package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
	"golang.org/x/time/rate"
)

// Failure kinds. Check with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrTransport    = errors.New("transport failure")
	ErrDecode       = errors.New("malformed response")
	ErrRejected     = errors.New("rejected by server")
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d from %s %s: %s", e.StatusCode, e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("HTTP %d %s from %s %s", e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.Path)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// RejectedError is a 2xx response whose body reports success:false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + e.Message
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// ServerMessage returns the message the backend attached to a failure, if any.
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return ""
}

// Describe turns a failure into text for the operator.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized! Check your token."
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, ErrTransport):
		return "could not reach the server"
	case errors.Is(err, ErrDecode):
		return "malformed response from server"
	}
	if msg := ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

// HTTPClient is the subset of *http.Client the API client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        HTTPClient
	Logger            *log.Logger
}

// NewDefaultHTTPClient returns an http.Client with dial and handshake limits.
// Per-request deadlines come from the caller's context.
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        20,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}

// Client talks to the Crown REST API on behalf of one session.
type Client struct {
	baseURL    string
	session    domain.Session
	httpClient HTTPClient
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *log.Logger
}

func NewClient(baseURL string, session domain.Session, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = NewDefaultHTTPClient()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if opts.Logger == nil {
		opts.Logger = util.Logger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
		timeout:    opts.Timeout,
		logger:     opts.Logger.WithPrefix("api"),
	}
}

func (c *Client) Session() domain.Session {
	return c.session
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("request cancelled", "method", method, "path", path)
		} else {
			c.logger.Warn("request failed", "method", method, "path", path, "err", err)
		}
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		c.logger.Warn("reading response failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Method:     method,
			Path:       path,
		}
	}

	if result == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		c.logger.Warn("malformed response", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %s %s: %w", ErrDecode, method, path, err)
	}
	return nil
}

// errorMessage pulls "message" from a JSON error body, falling back to a short
// plain-text body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
