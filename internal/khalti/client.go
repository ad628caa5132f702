// Package khalti is a thin client for the Khalti e-payment HTTP API. It
// covers the two calls the backend needs: creating a hosted payment link
// and looking up the state of a payment by its opaque id (pidx).
package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"
)

type Client struct {
	baseURL    string
	secretKey  string
	returnURL  string
	websiteURL string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey, returnURL, websiteURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		returnURL:  returnURL,
		websiteURL: websiteURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PaymentLink is the useful part of an initiate response.
type PaymentLink struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
}

// StatusResult carries both the normalized status and the gateway's raw
// status string; the raw string is what the reconciler compares against
// the stored one to detect a change.
type StatusResult struct {
	Status        string
	GatewayStatus string
	TransactionID string
}

// CreateLink initiates a payment of the given amount (in the major currency
// unit; the gateway wants paisa) and returns the hosted payment URL. Any
// transport error or non-200 response is returned as an error; callers
// treat that as a soft failure and roll the booking back.
func (c *Client) CreateLink(ctx context.Context, amount float64, bookingID int, orderID string) (*PaymentLink, error) {
	payload := map[string]any{
		"return_url":          c.returnURL,
		"website_url":         c.websiteURL,
		"amount":              int64(math.Round(amount * 100)),
		"purchase_order_id":   orderID,
		"purchase_order_name": fmt.Sprintf("booking-%d", bookingID),
		"remarks":             strconv.Itoa(bookingID),
	}

	resp, err := c.post(ctx, "/api/v2/epayment/initiate/", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("khalti: initiate returned status %d", resp.StatusCode)
	}

	var link PaymentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("khalti: decoding initiate response: %w", err)
	}
	if link.Pidx == "" || link.PaymentURL == "" {
		return nil, fmt.Errorf("khalti: initiate response missing pidx or payment_url")
	}
	return &link, nil
}

// CheckStatus looks up a payment by pidx. The gateway reports unknown pidx
// values as a 404 with a "detail" field rather than a "status" field, so
// the body is decoded regardless of the response code; only transport and
// decode failures are errors, and callers skip the payment until the next
// tick when they see one.
func (c *Client) CheckStatus(ctx context.Context, pidx string) (*StatusResult, error) {
	resp, err := c.post(ctx, "/api/v2/epayment/lookup/", map[string]any{"pidx": pidx})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Status        string `json:"status"`
		Detail        string `json:"detail"`
		TransactionID string `json:"transaction_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("khalti: decoding lookup response: %w", err)
	}

	raw := body.Status
	if raw == "" {
		raw = body.Detail
	}
	return &StatusResult{
		Status:        NormalizeStatus(raw),
		GatewayStatus: raw,
		TransactionID: body.TransactionID,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) (*http.Response, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "key "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
