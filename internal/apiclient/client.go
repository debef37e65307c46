// Package apiclient calls the account backend over HTTP.
package apiclient

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

	"github.com/louisbranch/earlypay/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/earlypay/internal/apiclient"

// Backend paths relative to the configured base URL.
const (
	PathLogin  = "/auth/login"
	PathSignup = "/auth/signup"
	PathUser   = "/auth/user"
)

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 1 << 20

// Client is a backend API client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New builds a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeouts.APIRequest},
		tracer:     otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, "", req, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Signup creates a user and company.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var resp SignupResponse
	if err := c.do(ctx, http.MethodPost, PathSignup, "", req, &resp); err != nil {
		return SignupResponse{}, err
	}
	return resp, nil
}

// User fetches the authenticated user's profile and returns the raw "user"
// object.
func (c *Client) User(ctx context.Context, token string) (json.RawMessage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &Error{StatusCode: http.StatusUnauthorized, Message: "bearer token is required"}
	}
	var envelope userEnvelope
	if err := c.do(ctx, http.MethodGet, PathUser, token, nil, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.User) == 0 || string(envelope.User) == "null" {
		return nil, &Error{StatusCode: http.StatusBadGateway, Message: "backend did not return a user"}
	}
	return envelope.User, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, Message(err))
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encode %s request: %w", path, marshalErr)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: networkErrorMessage, cause: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: networkErrorMessage, cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failureFromBody(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: "unexpected response from server", cause: err}
	}
	return nil
}
