// Package api is the client for the remote contact service
// (GET/POST /api/Contacts, DELETE /api/Contacts/{id}).
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/config"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/net/http2"
)

const (
	contactsPath = "/api/Contacts"
	// maxErrorBody bounds how much of a failed response is kept for diagnostics.
	maxErrorBody = 512
	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// ContactService is the remote contact store.
type ContactService interface {
	// List returns every contact.
	List(ctx context.Context) ([]domain.Contact, error)
	// Create stores a new contact and returns it as the server saw it.
	Create(ctx context.Context, payload domain.ContactPayload) (domain.Contact, error)
	// Delete removes the contact with the given id.
	Delete(ctx context.Context, id int) error
}

// Options configure a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	InsecureTLS bool
	// HTTPClient replaces the default HTTP/2-capable client when set.
	HTTPClient *http.Client
}

// Client talks JSON to the contact service.
type Client struct {
	http    *http.Client
	baseURL string
}

var _ ContactService = (*Client)(nil)

// NewClient creates a client for opts.BaseURL.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Timeout, opts.InsecureTLS)
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

// NewClientFromConfig creates a client from the api_* settings.
func NewClientFromConfig() *Client {
	return NewClient(Options{
		BaseURL:     config.Get("api_base_url", "https://localhost:5001"),
		Timeout:     config.GetDuration("api_timeout", 10*time.Second),
		InsecureTLS: config.GetBool("api_insecure_tls", false),
	})
}

func newHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			NextProtos: []string{"h2", "http/1.1"},
			// The development server uses a self-signed certificate.
			InsecureSkipVerify: insecure, //nolint:gosec
		},
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		colors.StructuredWarn("api", "configure_transport", "http1_fallback", err, "", nil)
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every contact. A null or empty body yields an empty slice.
func (c *Client) List(ctx context.Context) ([]domain.Contact, error) {
	body, err := c.do(ctx, "list contacts", http.MethodGet, contactsPath, nil)
	if err != nil {
		return nil, err
	}
	contacts := []domain.Contact{}
	if len(bytes.TrimSpace(body)) == 0 {
		return contacts, nil
	}
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, &errors.NetworkError{Op: "list contacts", Method: http.MethodGet, URL: c.baseURL + contactsPath, Err: fmt.Errorf("decode response: %w", err)}
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, nil
}

// Create posts payload. Servers that answer with an empty body are
// tolerated; the returned contact then carries only the payload fields.
func (c *Client) Create(ctx context.Context, payload domain.ContactPayload) (domain.Contact, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("encode contact: %w", err)
	}
	body, err := c.do(ctx, "create contact", http.MethodPost, contactsPath, data)
	if err != nil {
		return domain.Contact{}, err
	}

	created := domain.Contact{
		Name:     payload.Name,
		Phone:    payload.Phone,
		Email:    payload.Email,
		IsActive: payload.IsActive,
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			colors.StructuredWarn("api", "create", "undecodable_body", err, "", nil)
		}
	}
	return created, nil
}

// Delete removes the contact with id.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, "delete contact", http.MethodDelete, contactsPath+"/"+strconv.Itoa(id), nil)
	return err
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path
	requestID := uuid.NewString()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &errors.NetworkError{Op: op, Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	colors.StructuredDebug("api", "request", "sent", nil, requestID, map[string]interface{}{
		"method": method,
		"url":    url,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &errors.NetworkError{Op: op, Method: method, URL: url, Err: err}
		colors.StructuredError("api", "request", "transport_failed", err, requestID, map[string]interface{}{
			"method":      method,
			"url":         url,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, netErr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &errors.NetworkError{
			Op:         op,
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
		}
		colors.StructuredError("api", "request", "failed", netErr, requestID, fields)
		return nil, netErr
	}
	if readErr != nil {
		netErr := &errors.NetworkError{Op: op, Method: method, URL: url, Err: fmt.Errorf("read response: %w", readErr)}
		colors.StructuredError("api", "request", "read_failed", readErr, requestID, fields)
		return nil, netErr
	}

	colors.StructuredDebug("api", "request", "completed", nil, requestID, fields)
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
