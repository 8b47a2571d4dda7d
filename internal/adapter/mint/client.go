package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/pkg/apperror"

	"github.com/rs/zerolog"
)

// Client talks HTTP to the e-cash mint. Transport failures and mint refusals
// are kept distinct: an unreachable mint is retryable, a refused token is not.
type Client struct {
	baseURL string
	mintID  string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a mint client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing mint url: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		mintID:  parsed.Host,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// ID identifies the mint tokens are issued against.
func (c *Client) ID() string {
	return c.mintID
}

type issueRequest struct {
	AmountSats int64 `json:"amount_sats"`
}

type verifyRequest struct {
	Token domain.Token `json:"token"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

type swapRequest struct {
	Tokens        []domain.Token `json:"tokens"`
	TargetAmounts []int64        `json:"target_amounts"`
}

type swapResponse struct {
	Tokens []domain.Token `json:"tokens"`
}

// Issue mints a new token after a Lightning payment settled.
func (c *Client) Issue(ctx context.Context, amountSats int64) (domain.Token, error) {
	var token domain.Token
	if err := c.post(ctx, "/v1/issue", issueRequest{AmountSats: amountSats}, &token); err != nil {
		return domain.Token{}, err
	}
	return token, nil
}

// Verify asks the mint whether a token is valid and unredeemed.
func (c *Client) Verify(ctx context.Context, token domain.Token) (bool, error) {
	var resp verifyResponse
	if err := c.post(ctx, "/v1/verify", verifyRequest{Token: token}, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Swap redeems the given tokens and issues fresh ones of the target amounts.
func (c *Client) Swap(ctx context.Context, tokens []domain.Token, targetAmounts []int64) ([]domain.Token, error) {
	var resp swapResponse
	if err := c.post(ctx, "/v1/swap", swapRequest{Tokens: tokens, TargetAmounts: targetAmounts}, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal mint request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return apperror.InternalError(fmt.Errorf("build mint request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.ErrMintUnreachable(fmt.Errorf("mint %s: %w", path, err))
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.ErrMintUnreachable(fmt.Errorf("decode mint response: %w", err))
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// The mint understood the request and said no: a spent or forged
		// token, not an outage.
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("mint rejected request")
		return apperror.ErrInvalidToken()
	default:
		return apperror.ErrMintUnreachable(fmt.Errorf("mint %s returned status %d", path, resp.StatusCode))
	}
}
