package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/wedsite/wedsite/pkg/clog"
)

type Options struct {
	BaseURL string

	// Timeout bounds calls that don't set their own.
	Timeout time.Duration

	// RetryCount is how many extra attempts reads get on transport errors
	// and 502/503/504 replies. Writes are never retried.
	RetryCount int
	RetryWait  time.Duration
}

// Client is the single place outbound calls to the backend API are made.
type Client struct {
	baseURL string
	timeout time.Duration
	reads   *resty.Client
	writes  *resty.Client
}

// Call describes one outbound request. Path is appended to the base URL.
type Call struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Timeout     time.Duration
}

// Response is what came back, whatever the status.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

func NewClient(opts Options) *Client {
	if opts.RetryWait == 0 {
		opts.RetryWait = 200 * time.Millisecond
	}

	reads := newRestyClient().
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(retryableRead)

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		reads:   reads,
		writes:  newRestyClient(),
	}
}

func newRestyClient() *resty.Client {
	return resty.New().SetLogger(restyLogger{})
}

func retryableRead(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Do sends call to the backend. A non-nil error means no usable response
// was received; any HTTP status, including errors, comes back as a Response.
func (c *Client) Do(ctx context.Context, rc RequestContext, call Call) (*Response, error) {
	timeout := call.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	restyClient := c.writes
	if call.Method == http.MethodGet || call.Method == http.MethodHead {
		restyClient = c.reads
	}

	req := restyClient.R().SetContext(ctx)
	if rc.BearerToken != "" {
		req.SetAuthToken(rc.BearerToken)
	}

	if rc.RequestID != "" {
		req.SetHeader("X-Request-ID", rc.RequestID)
	}

	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}

	if len(call.Body) > 0 {
		contentType := call.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		req.SetHeader("Content-Type", contentType).SetBody(call.Body)
	}

	start := time.Now()
	resp, err := req.Execute(call.Method, c.baseURL+call.Path)
	if err != nil {
		clog.UsingCtx("backend").WithFields(log.Fields{
			"method":     call.Method,
			"path":       call.Path,
			"request_id": rc.RequestID,
		}).Errorf("backend call failed: %s", err)
		return nil, errors.Join(ErrBackend, fmt.Errorf("%s %s: %w", call.Method, call.Path, err))
	}

	clog.UsingCtx("backend").WithFields(log.Fields{
		"method":     call.Method,
		"path":       call.Path,
		"status":     resp.StatusCode(),
		"elapsed":    time.Since(start).Round(time.Millisecond),
		"request_id": rc.RequestID,
	}).Debug("backend call")

	return &Response{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	clog.UsingCtx("backend").Errorf(strings.TrimSpace(format), v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	clog.UsingCtx("backend").Warnf(strings.TrimSpace(format), v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	clog.UsingCtx("backend").Debugf(strings.TrimSpace(format), v...)
}
