// Package httpexec binds the operation-call envelope to an HTTP host
// endpoint.
package httpexec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/opwire/opcall"
)

const defaultTimeout = 10 * time.Second

// Executor posts operation envelopes to one host endpoint as
// POST <base>/operations/<name>.
type Executor struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

// New builds an executor for a host address. Bare host:port addresses are
// accepted; the scheme defaults to http.
func New(addr string) *Executor {
	return &Executor{
		base:   baseURL(addr),
		client: &http.Client{Timeout: defaultTimeout},
		log:    log.With().Str("component", "httpexec").Logger(),
	}
}

// Execute serializes the envelope, posts it, and decodes the host's
// response envelope. A transport failure, an undecodable response, or a
// host-reported failure all surface as errors; the caller's layer
// propagates them unmodified.
func (e *Executor) Execute(ctx context.Context, req *opcall.Request) (*opcall.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("httpexec: encode request: %w", err)
	}

	target := e.base + "/operations/" + url.PathEscape(req.Metadata.OperationName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httpexec: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpexec: read response: %w", err)
	}

	var resp opcall.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpexec: decode response: %w", err)
	}
	resp.Status = httpResp.StatusCode

	e.log.Debug().
		Str("operation", req.Metadata.OperationName).
		Str("url", target).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("operation executed")

	if !resp.OK {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = http.StatusText(httpResp.StatusCode)
		}
		return nil, fmt.Errorf("httpexec: host rejected operation: %s", msg)
	}
	return &resp, nil
}

// baseURL normalizes a host address into a scheme-qualified base URL.
func baseURL(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + strings.TrimRight(addr, "/")
}
