// Package apiclient calls the public checkout API of the booking backend.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
)

const maxBodyBytes = 1 << 20

// Client implements checkout.StatusFetcher and checkout.RetryRequester over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// FetchCheckoutStatus: GET /api/public/checkout/{id}/status
func (c *Client) FetchCheckoutStatus(ctx context.Context, orderID string) (models.CheckoutStatus, error) {
	var out models.CheckoutStatus
	err := c.do(ctx, http.MethodGet, checkoutPath(orderID, "status"), &out)
	return out, err
}

// RetryCheckout: POST /api/public/checkout/{id}/retry
func (c *Client) RetryCheckout(ctx context.Context, orderID string) (models.RetryResult, error) {
	var out models.RetryResult
	err := c.do(ctx, http.MethodPost, checkoutPath(orderID, "retry"), &out)
	return out, err
}

func checkoutPath(orderID, action string) string {
	return "/api/public/checkout/" + url.PathEscape(orderID) + "/" + action
}

func (c *Client) do(ctx context.Context, method, path string, dst any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(method, path, resp.StatusCode, body)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// errorBody accepts both {"message": ...} and {"error": ...} payloads.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// decodeAPIError only types the error when the backend sent a message meant
// for the user; anything else stays a plain error and the page shows its own
// fallback text.
func decodeAPIError(method, path string, status int, body []byte) error {
	apiErr := &domain.APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = strings.TrimSpace(eb.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(eb.Error)
		}
	}
	if apiErr.Message == "" {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, status)
	}
	return apiErr
}

type ctxKey struct{}

// WithRequestID makes outgoing calls carry the given X-Request-ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}
