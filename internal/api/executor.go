package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResponseSize = 5 * 1024 * 1024 // 5MB

// Request describes one HTTP call to the service.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any           // JSON-encoded when non-nil
	Token   string        // attached as Authorization: Bearer when non-empty
	Timeout time.Duration // must be positive
}

// Executor issues single HTTP calls with bounded latency. The call and a
// timer run concurrently; whichever settles first determines the outcome.
// Exactly one Outcome is produced per invocation.
type Executor struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewExecutor returns an Executor targeting baseURL. The underlying client
// carries no timeout of its own; deadlines come from each Request.
func NewExecutor(baseURL string, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		log:     log,
	}
}

type callResult struct {
	status int
	body   []byte
	err    error
}

// Do executes one request and classifies the result. When the timer wins the
// race the in-flight call is abandoned (and cancelled once Do returns); its
// late result is discarded.
func (e *Executor) Do(ctx context.Context, req Request) Outcome {
	id := uuid.NewString()[:8]

	httpReq, err := e.build(ctx, req)
	if err != nil {
		return Outcome{Kind: KindNetworkError, Cause: err}
	}

	e.log.Debug("request start",
		zap.String("req", id),
		zap.String("method", req.Method),
		zap.String("url", httpReq.URL.Redacted()),
		zap.Duration("timeout", req.Timeout))

	// The race owns its own cancellation: the deferred cancel aborts the
	// loser after the first settler has decided the outcome.
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	httpReq = httpReq.WithContext(callCtx)

	ch := make(chan callResult, 1)
	go func() {
		resp, err := e.client.Do(httpReq)
		if err != nil {
			ch <- callResult{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			ch <- callResult{err: err}
			return
		}
		ch <- callResult{status: resp.StatusCode, body: body}
	}()

	timer := time.NewTimer(req.Timeout)
	defer timer.Stop()

	var out Outcome
	select {
	case <-timer.C:
		out = Outcome{Kind: KindTimeout}
	case res := <-ch:
		if res.err != nil {
			out = Outcome{Kind: KindNetworkError, Cause: res.err}
		} else {
			out = classify(res.status, res.body)
		}
	}

	e.log.Debug("request done",
		zap.String("req", id),
		zap.String("outcome", out.Kind.String()),
		zap.Int("status", out.Status))
	return out
}

func (e *Executor) build(ctx context.Context, req Request) (*http.Request, error) {
	u := e.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

// envelope is the service's loose success/error shape. The success field is
// sometimes absent; error text lives under either "error" or "message".
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (env envelope) text() string {
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

func classify(status int, body []byte) Outcome {
	if status >= 200 && status < 300 {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return Outcome{Kind: KindNetworkError, Cause: fmt.Errorf("decode response: %w", err)}
		}
		if env.Success != nil && !*env.Success {
			msg := env.text()
			if msg == "" {
				msg = "request failed"
			}
			return Outcome{Kind: KindBusinessError, Message: msg}
		}
		return Outcome{Kind: KindSuccess, Payload: body}
	}

	// Non-2xx: extract a message when the body has one, else fall back to a
	// generic status-based message.
	var env envelope
	_ = json.Unmarshal(body, &env)
	msg := env.text()
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))
	}
	return Outcome{Kind: KindHTTPError, Status: status, Message: msg}
}
