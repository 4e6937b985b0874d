// Package client issues the HTTP requests described by scenarios against the service under test
// and captures what comes back.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/framework"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = time.Second * 10

const maxLoggedBody = 2000

// Options configures an Executor.
type Options struct {
	// BaseURL is the service root that endpoint paths are appended to, such as
	// "https://petstore.swagger.io/v2".
	BaseURL string

	// Timeout bounds each request. A scenario's TimeoutMS takes precedence.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests. Zero or less means no pacing.
	RequestsPerSecond float64

	// HTTPClient defaults to a client using http.DefaultTransport.
	HTTPClient *http.Client
}

// Executor translates scenarios into HTTP calls. Each call is made exactly once; failures are
// returned as *InfrastructureError and never retried.
type Executor struct {
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	http    *http.Client
}

func NewExecutor(opts Options) *Executor {
	e := &Executor{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(rate.Inf, 1),
		http:    opts.HTTPClient,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if opts.RequestsPerSecond > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	if e.http == nil {
		e.http = &http.Client{}
	}
	return e
}

func (e *Executor) BaseURL() string {
	return e.baseURL
}

// Request resolves the request a scenario will make, including its timeout.
func (e *Executor) Request(s contract.Scenario) (Request, error) {
	r, err := BuildRequest(e.baseURL, s.Endpoint, s.Input)
	if err != nil {
		return Request{}, err
	}
	r.Timeout = e.timeout
	if s.TimeoutMS.IsDefined() {
		r.Timeout = time.Duration(s.TimeoutMS.IntValue()) * time.Millisecond
	}
	return r, nil
}

// Run executes a scenario: its precondition, if any, and then its own request.
func (e *Executor) Run(ctx context.Context, s contract.Scenario, logger framework.Logger) (contract.Outcome, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if s.Precondition != nil {
		pre, err := BuildRequest(e.baseURL, s.Precondition.Endpoint, s.Precondition.Input)
		if err != nil {
			return contract.Outcome{}, err
		}
		pre.Timeout = e.timeout
		logger.Printf("Seeding precondition")
		o, err := e.Execute(ctx, pre, logger)
		if err != nil {
			return contract.Outcome{}, err
		}
		if o.Status < 200 || o.Status >= 300 {
			return contract.Outcome{}, &InfrastructureError{
				Kind:    ErrPrecondition,
				Request: pre.String(),
				Err:     fmt.Errorf("status %d: %s", o.Status, o.Body.JSONString()),
			}
		}
	}

	r, err := e.Request(s)
	if err != nil {
		return contract.Outcome{}, err
	}
	return e.Execute(ctx, r, logger)
}

// Execute makes one HTTP call. Cancelling ctx abandons the call; that is reported as the context's
// error rather than as an InfrastructureError, since the service is not at fault.
func (e *Executor) Execute(ctx context.Context, r Request, logger framework.Logger) (contract.Outcome, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return contract.Outcome{}, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(reqCtx, r.Method, r.URL, body)
	if err != nil {
		return contract.Outcome{}, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.Body != nil {
		logger.Printf("Sending %s with body: %s", r, truncate(r.Body))
	} else {
		logger.Printf("Sending %s", r)
	}
	logger.Printf("Reproduce with: %s", r.CurlCommand())

	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		return contract.Outcome{}, e.classify(ctx, reqCtx, r, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return contract.Outcome{}, e.classify(ctx, reqCtx, r, err)
	}
	logger.Printf("Received status %d after %s: %s", resp.StatusCode,
		time.Since(start).Round(time.Millisecond), truncate(data))

	o := contract.Outcome{Status: resp.StatusCode, Body: ldvalue.Null()}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &o.Body); err != nil {
			return contract.Outcome{}, &InfrastructureError{
				Kind:    ErrMalformedResponse,
				Request: r.String(),
				Err:     fmt.Errorf("status %d, body is not JSON: %s", resp.StatusCode, truncate(data)),
			}
		}
	}
	return o, nil
}

func (e *Executor) classify(ctx, reqCtx context.Context, r Request, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &InfrastructureError{
			Kind:    ErrTimeout,
			Request: r.String(),
			Err:     fmt.Errorf("no response within %s", r.timeoutOr(e.timeout)),
		}
	}
	return &InfrastructureError{Kind: ErrNetwork, Request: r.String(), Err: err}
}

func (r Request) timeoutOr(d time.Duration) time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return d
}

func truncate(data []byte) string {
	if len(data) > maxLoggedBody {
		return string(data[:maxLoggedBody]) + "..."
	}
	return string(data)
}
