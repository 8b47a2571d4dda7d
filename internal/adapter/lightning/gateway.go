package lightning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway is an HTTP client for a single Lightning invoice gateway. Errors are
// returned unwrapped so the invoice service can decide whether to fail over to
// the next gateway in rank order.
type Gateway struct {
	baseURL string
	http    *http.Client
}

// NewGateway creates a gateway client for the given base URL.
func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// URL returns the gateway's base URL, used in logs and failover reporting.
func (g *Gateway) URL() string {
	return g.baseURL
}

type createInvoiceRequest struct {
	AmountSats int64 `json:"amount_sats"`
}

type createInvoiceResponse struct {
	Invoice string `json:"invoice"`
	ID      string `json:"id"`
}

type invoiceStatusResponse struct {
	Paid bool `json:"paid"`
}

// CreateInvoice asks the gateway for a BOLT11 invoice of the given amount.
// It returns the invoice text and the gateway's handle for status polling.
func (g *Gateway) CreateInvoice(ctx context.Context, amountSats int64) (string, string, error) {
	raw, err := json.Marshal(createInvoiceRequest{AmountSats: amountSats})
	if err != nil {
		return "", "", fmt.Errorf("marshal invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/invoices", bytes.NewReader(raw))
	if err != nil {
		return "", "", fmt.Errorf("build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("gateway %s: %w", g.baseURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("gateway %s returned status %d", g.baseURL, resp.StatusCode)
	}

	var created createInvoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", "", fmt.Errorf("decode invoice response: %w", err)
	}
	if created.Invoice == "" || created.ID == "" {
		return "", "", fmt.Errorf("gateway %s returned incomplete invoice", g.baseURL)
	}
	return created.Invoice, created.ID, nil
}

// CheckPaid reports whether the invoice behind the handle has settled.
func (g *Gateway) CheckPaid(ctx context.Context, handle string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/invoices/"+handle, nil)
	if err != nil {
		return false, fmt.Errorf("build status request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("gateway %s: %w", g.baseURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("gateway %s returned status %d", g.baseURL, resp.StatusCode)
	}

	var status invoiceStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, fmt.Errorf("decode status response: %w", err)
	}
	return status.Paid, nil
}
