// Package backend calls the drone-simulator REST endpoints the admin depends
// on: admin login, the downloads listing, record deletion and email
// verification.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dronesimulator/admin/internal/platform/telemetry/metrics"
	"github.com/dronesimulator/admin/internal/platform/timeouts"
)

// Endpoint names used in errors, spans and metrics.
const (
	EndpointLogin     = "adminlogin"
	EndpointDownloads = "getalldownloads"
	EndpointDelete    = "delete_download_record"
	EndpointVerify    = "verify_email"
)

// Default endpoint URLs of the production backend.
const (
	DefaultLoginURL     = "https://gk72ytx1i3.execute-api.ap-south-1.amazonaws.com/adminlogin"
	DefaultDownloadsURL = "https://rems3zz1k6.execute-api.ap-south-1.amazonaws.com/Getalldownloads"
	DefaultDeleteURL    = "https://34-47-194-149.nip.io/api/delete-download-record/"
)

const maxResponseBytes = 32 << 20

// ErrEndpointNotConfigured is returned when the endpoint URL is empty.
var ErrEndpointNotConfigured = errors.New("backend endpoint is not configured")

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

// LoginResponse is the adminlogin payload. User stays raw so callers can
// keep every field exactly as received.
type LoginResponse struct {
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

// DownloadsResponse is the Getalldownloads payload.
type DownloadsResponse struct {
	Message   string          `json:"message"`
	Downloads json.RawMessage `json:"downloads"`
}

// VerifyResponse is the verify-email payload.
type VerifyResponse struct {
	Message string `json:"message"`
}

// Config holds endpoint URLs and the HTTP client.
type Config struct {
	LoginURL     string
	DownloadsURL string
	DeleteURL    string
	VerifyURL    string
	HTTPClient   *http.Client
}

// Client calls the backend. Calls are never retried.
type Client struct {
	cfg    Config
	http   *http.Client
	tracer trace.Tracer
}

// NewClient builds a client from cfg.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.BackendRequest}
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		tracer: otel.Tracer("github.com/dronesimulator/admin/internal/services/admin/integration/backend"),
	}
}

// AdminLogin posts credentials to the login endpoint.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.call(ctx, EndpointLogin, http.MethodPost, c.cfg.LoginURL, "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// GetAllDownloads fetches every download record visible to adminEmail.
func (c *Client) GetAllDownloads(ctx context.Context, adminEmail string) (DownloadsResponse, error) {
	var out DownloadsResponse
	err := c.call(ctx, EndpointDownloads, http.MethodPost, c.cfg.DownloadsURL, "", map[string]string{
		"email": adminEmail,
	}, &out)
	return out, err
}

// DeleteDownloadRecord deletes the records of email, authenticating with the
// admin session token.
func (c *Client) DeleteDownloadRecord(ctx context.Context, token, email string) error {
	return c.call(ctx, EndpointDelete, http.MethodDelete, c.cfg.DeleteURL, "Token "+token, map[string]string{
		"email": email,
	}, nil)
}

// VerifyEmail posts a verification link's email and token. On a non-2xx
// response the decoded message is still returned next to the StatusError.
func (c *Client) VerifyEmail(ctx context.Context, email, token string) (VerifyResponse, error) {
	var out VerifyResponse
	err := c.call(ctx, EndpointVerify, http.MethodPost, c.cfg.VerifyURL, "", map[string]string{
		"email": email,
		"token": token,
	}, &out)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		_ = json.Unmarshal([]byte(statusErr.Body), &out)
	}
	return out, err
}

func (c *Client) call(ctx context.Context, endpoint, method, url, authorization string, payload any, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "backend."+endpoint, trace.WithSpanKind(trace.SpanKindClient))
	started := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		metrics.ObserveBackendCall(endpoint, err == nil, time.Since(started))
	}()

	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("%s: %w", endpoint, ErrEndpointNotConfigured)
	}
	span.SetAttributes(
		attribute.String("backend.endpoint", endpoint),
		attribute.String("http.request.method", method),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
