package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dataset-billing/config"
	"dataset-billing/internal/core/ports"
)

// ErrUnavailable marks network faults, gateway 5xx responses, and token
// acquisition failures. These are retryable; the transaction stays pending.
var ErrUnavailable = errors.New("payment gateway unavailable")

// Interswitch base URLs per environment.
const (
	testPassportURL = "https://passport.k8.isw.la"
	testPaymentURL  = "https://newwebpay.qa.interswitchng.com"
	testAPIURL      = "https://qa.interswitchng.com"

	livePassportURL = "https://passport.interswitchng.com"
	livePaymentURL  = "https://newwebpay.interswitchng.com"
	liveAPIURL      = "https://webpay.interswitchng.com"
)

// tokenSafetyMargin is subtracted from expires_in so a token is refreshed
// before the provider actually rejects it.
const tokenSafetyMargin = 5 * time.Minute

// Client implements ports.GatewayClient against the Interswitch Web
// Checkout API. The OAuth2 access token is cached process-wide; refresh
// is serialized by the mutex while fresh reads stay lock-free on the
// read lock.
type Client struct {
	cfg          config.GatewayConfig
	currencyCode string
	httpClient   *http.Client
	log          zerolog.Logger

	passportURL string
	paymentURL  string
	apiURL      string

	mu          sync.RWMutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a gateway client. Base URLs follow cfg.Mode.
func NewClient(cfg config.GatewayConfig, currencyCode string, log zerolog.Logger) *Client {
	c := &Client{
		cfg:          cfg,
		currencyCode: currencyCode,
		httpClient:   &http.Client{Timeout: cfg.VerifyTimeout},
		log:          log.With().Str("component", "gateway").Logger(),
	}
	if strings.ToUpper(cfg.Mode) == "LIVE" {
		c.passportURL = livePassportURL
		c.paymentURL = livePaymentURL
		c.apiURL = liveAPIURL
	} else {
		c.passportURL = testPassportURL
		c.paymentURL = testPaymentURL
		c.apiURL = testAPIURL
	}
	return c
}

func amountMinor(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// checkoutHash signs the hosted-checkout parameters:
// SHA-512(pay_item_id | txn_ref | amount_minor | redirect_url | secret).
func (c *Client) checkoutHash(reference string, minor int64, redirectURL string) string {
	return sha512Hex(c.cfg.PayItemID + reference + strconv.FormatInt(minor, 10) + redirectURL + c.cfg.SecretKey)
}

// verifyHash signs the verification request:
// SHA-512(secret | amount_minor | txn_ref).
func (c *Client) verifyHash(reference string, minor int64) string {
	return sha512Hex(c.cfg.SecretKey + strconv.FormatInt(minor, 10) + reference)
}

// PaymentURL builds the hosted checkout URL. No network I/O.
func (c *Client) PaymentURL(params ports.CheckoutParams) (string, error) {
	if params.Reference == "" {
		return "", errors.New("payment url: empty reference")
	}
	minor := amountMinor(params.Amount)
	redirect := params.RedirectURL
	if redirect == "" {
		redirect = c.cfg.ReturnURL
	}

	q := url.Values{}
	q.Set("merchant_code", c.cfg.MerchantCode)
	q.Set("pay_item_id", c.cfg.PayItemID)
	q.Set("txn_ref", params.Reference)
	q.Set("amount", strconv.FormatInt(minor, 10))
	q.Set("currency", c.currencyCode)
	q.Set("cust_email", params.CustEmail)
	q.Set("site_redirect_url", redirect)
	q.Set("hash", c.checkoutHash(params.Reference, minor, redirect))

	return c.paymentURL + "/collections/w/pay?" + q.Encode(), nil
}

// InlineConfig builds the embedded-widget configuration. No network I/O.
func (c *Client) InlineConfig(params ports.CheckoutParams) (*ports.InlineConfig, error) {
	if params.Reference == "" {
		return nil, errors.New("inline config: empty reference")
	}
	minor := amountMinor(params.Amount)
	redirect := params.RedirectURL
	if redirect == "" {
		redirect = c.cfg.ReturnURL
	}

	return &ports.InlineConfig{
		MerchantCode: c.cfg.MerchantCode,
		PayItemID:    c.cfg.PayItemID,
		TxnRef:       params.Reference,
		AmountMinor:  minor,
		CurrencyCode: c.currencyCode,
		SiteRedirect: redirect,
		Hash:         c.checkoutHash(params.Reference, minor, redirect),
		Mode:         strings.ToUpper(c.cfg.Mode),
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// accessTokenFor returns a cached token when still fresh, otherwise
// refreshes under the write lock. The double-check after acquiring the
// lock avoids duplicate refreshes when several requests race.
func (c *Client) accessTokenFor(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		token := c.accessToken
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.passportURL+"/passport/oauth/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.SecretKey))
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", ErrUnavailable, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", ErrUnavailable)
	}

	ttl := time.Duration(tr.ExpiresIn) * time.Second
	if ttl > tokenSafetyMargin {
		ttl -= tokenSafetyMargin
	}
	c.accessToken = tr.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)

	c.log.Info().Int64("expires_in", tr.ExpiresIn).Msg("gateway access token refreshed")
	return c.accessToken, nil
}

// verifyResponse is the subset of the gateway's transaction lookup we act on.
type verifyResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	Amount              int64  `json:"Amount"`
}

// Verify asks the gateway for the authoritative status of a transaction.
// Response codes: "00" successful, "09" and "Z1" pending, anything else
// failed. A successful response whose amount does not match the expected
// amount is downgraded to failed.
func (c *Client) Verify(ctx context.Context, reference string, expectedAmount decimal.Decimal) (*ports.VerifyResult, error) {
	token, err := c.accessTokenFor(ctx)
	if err != nil {
		return nil, err
	}

	minor := amountMinor(expectedAmount)

	q := url.Values{}
	q.Set("merchantcode", c.cfg.MerchantCode)
	q.Set("transactionreference", reference)
	q.Set("amount", strconv.FormatInt(minor, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/collections/api/v1/gettransaction.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Hash", c.verifyHash(reference, minor))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: verify request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: verify endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading verify response: %v", ErrUnavailable, err)
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("%w: decoding verify response: %v", ErrUnavailable, err)
	}

	var status ports.GatewayStatus
	switch vr.ResponseCode {
	case "00":
		status = ports.GatewaySuccessful
	case "09", "Z1":
		status = ports.GatewayPending
	default:
		status = ports.GatewayFailed
	}

	if status == ports.GatewaySuccessful && vr.Amount != minor {
		c.log.Warn().
			Str("reference", reference).
			Int64("expected_minor", minor).
			Int64("returned_minor", vr.Amount).
			Msg("gateway amount mismatch, downgrading to failed")
		status = ports.GatewayFailed
	}

	return &ports.VerifyResult{
		Status:       status,
		ResponseCode: vr.ResponseCode,
		Payload:      body,
	}, nil
}
