// Package api is the single request pipeline to the cinema REST API. It attaches
// the in-memory bearer token, unwraps the response envelope and turns every
// failure into an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxBodyBytes    = 10 << 20
)

// Renewer obtains a fresh access token, typically by calling the refresh endpoint.
type Renewer interface {
	Renew(ctx context.Context) error
}

type RenewerFunc func(ctx context.Context) error

func (f RenewerFunc) Renew(ctx context.Context) error {
	return f(ctx)
}

type Client struct {
	baseURL    string
	http       *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
	renewer    Renewer
	renewGroup singleflight.Group
	requestID  func() string
	jar        http.CookieJar
	timeout    time.Duration
	log        zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenSource supplies the bearer token. A source returning an error means
// "no token" and the request goes out unauthenticated.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithCookieJar installs the jar holding the server-managed refresh cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit throttles outbound requests. rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRenewer enables renew-and-retry-once on a 401.
func WithRenewer(r Renewer) Option {
	return func(c *Client) {
		c.renewer = r
	}
}

func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.requestID = fn
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] url.Parse")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("[api.New] base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		requestID: uuid.NewString,
		log:       log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.jar != nil {
		c.http.Jar = c.jar
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send issues one API call. body is JSON-encoded when non-nil; the envelope's data
// is decoded into out when out is non-nil.
func (c *Client) Send(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	req := newRequest(opts)
	payload, contentType, err := req.encodeBody(body)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}

	err = c.do(ctx, method, path, req, payload, contentType, out)
	if err == nil || req.noRenew || c.renewer == nil || !IsUnauthorized(err) {
		return err
	}

	if renewErr := c.renew(ctx); renewErr != nil {
		c.log.Warn().Err(renewErr).Str("path", path).Msg("token renewal failed, not retrying")
		return err
	}
	return c.do(ctx, method, path, req, payload, contentType, out)
}

func (c *Client) renew(ctx context.Context) error {
	_, err, _ := c.renewGroup.Do("renew", func() (any, error) {
		return nil, c.renewer.Renew(context.WithoutCancel(ctx))
	})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, req *request, payload []byte, contentType string, out any) error {
	requestID := c.requestID()
	fail := func(err error) error {
		return &Error{Kind: KindNetwork, Method: method, Path: path, RequestID: requestID, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(errors.Wrap(err, "rate limiter"))
		}
	}

	target := c.baseURL + path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if !req.noAuth && c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok != nil && tok.AccessToken != "" {
			tok.SetAuthHeader(httpReq)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fail(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(errors.Wrap(err, "reading body"))
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_id", requestID).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeFailure(method, path, requestID, resp.StatusCode, data)
	}
	return decodeSuccess(method, path, requestID, resp.StatusCode, data, out)
}

func decodeSuccess(method, path, requestID string, status int, data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var env cinemamodel.Envelope[json.RawMessage]
	if err := json.Unmarshal(data, &env); err != nil {
		return &Error{Kind: KindAPI, Method: method, Path: path, Status: status, RequestID: requestID,
			Message: "malformed response envelope", Err: err}
	}
	if !env.Success {
		return &Error{Kind: KindAPI, Method: method, Path: path, Status: status, RequestID: requestID, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Kind: KindAPI, Method: method, Path: path, Status: status, RequestID: requestID,
			Message: "unexpected response payload", Err: err}
	}
	return nil
}

func decodeFailure(method, path, requestID string, status int, data []byte) error {
	e := &Error{Kind: KindAPI, Method: method, Path: path, Status: status, RequestID: requestID}

	var body cinemamodel.ErrorBody
	if err := json.Unmarshal(data, &body); err == nil {
		e.Code = body.Code
		e.Message = body.Message
		e.Details = body.Details
		if body.Path != "" {
			e.Path = body.Path
		}
		if fields, ok := body.FieldErrors(); ok && status == http.StatusBadRequest {
			e.Kind = KindValidation
			e.Fields = fields
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// Get, Post, Put and Delete are typed shorthands for Send.

func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var out T
	err := c.Send(ctx, http.MethodGet, path, nil, &out, opts...)
	return out, err
}

func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Send(ctx, http.MethodPost, path, body, &out, opts...)
	return out, err
}

func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Send(ctx, http.MethodPut, path, body, &out, opts...)
	return out, err
}

func Delete(ctx context.Context, c *Client, path string, opts ...RequestOption) error {
	return c.Send(ctx, http.MethodDelete, path, nil, nil, opts...)
}
