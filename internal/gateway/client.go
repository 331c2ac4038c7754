package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/rs/zerolog"
)

const (
	DefaultAuthScheme = "Token"
	requestIDHeader   = "X-Request-ID"
	maxErrorBody      = 4 << 10
)

type Config struct {
	BaseURL    string
	AuthScheme string
	// Timeout of zero means no client-side timeout.
	Timeout time.Duration
}

// Client talks to the learning platform's REST backend. It holds no per-user
// state: every call takes the session token explicitly.
type Client struct {
	log        zerolog.Logger
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config, log zerolog.Logger) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway: base URL required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if strings.TrimSpace(cfg.AuthScheme) == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return &Client{
		log:        log.With().Str("component", "gateway").Logger(),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// request describes one backend call. Out, when set, receives the decoded
// 2xx body.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, r request) error {
	var payload io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		payload = bytes.NewReader(raw)
	}

	u := c.cfg.BaseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, payload)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", r.op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", c.cfg.AuthScheme+" "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", r.op).Str("request_id", reqID).Msg("request failed")
		return &NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: r.op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("path", r.path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &HTTPStatusError{Op: r.op, Status: resp.StatusCode, Body: truncate(body, maxErrorBody)}
		var er dto.ErrorResponse
		if json.Unmarshal(body, &er) == nil {
			se.Detail = er.Detail
		}
		c.log.Warn().Str("op", r.op).Str("request_id", reqID).Int("status", resp.StatusCode).Str("detail", se.Detail).Msg("backend rejected request")
		return se
	}

	if r.out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &MalformedResponseError{Op: r.op, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(body, r.out); err != nil {
		return &MalformedResponseError{Op: r.op, Err: err}
	}
	return nil
}

func malformed(op, format string, args ...any) error {
	return &MalformedResponseError{Op: op, Err: fmt.Errorf(format, args...)}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
