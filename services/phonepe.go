package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"kef/config"
)

// Gateway base URLs. Sandbox is the default; production is opted into
// with PHONEPE_ENV=production.
const (
	phonePeProdBase    = "https://api.phonepe.com/apis/pg"
	phonePeProdAuth    = "https://api.phonepe.com/apis/identity-manager"
	phonePeSandboxBase = "https://api-preprod.phonepe.com/apis/pg-sandbox"
	phonePeSandboxAuth = "https://api-preprod.phonepe.com/apis/pg-sandbox"
)

// tokenSafetyMargin is subtracted from the recorded expiry; a token this
// close to expiring is treated as expired and re-requested.
const tokenSafetyMargin = 2 * time.Minute

// ErrAuth marks a failure to obtain or use the gateway bearer token.
// Callers surface it as a generic "failed to authenticate" message and
// abandon the attempt; there is no retry loop.
var ErrAuth = errors.New("phonepe auth failed")

// ErrNotConfigured is returned when gateway credentials are absent.
var ErrNotConfigured = errors.New("PhonePe is not configured. Set PHONEPE_CLIENT_ID, PHONEPE_CLIENT_SECRET and PHONEPE_MERCHANT_ID")

// Outcome is the three-way result of a status check.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomePending Outcome = "pending"
)

// InitiateResult - what the caller needs to send the user to the gateway.
type InitiateResult struct {
	RedirectURL     string
	MerchantOrderID string
}

// StatusResult - resolved order status. State keeps the raw gateway code
// for diagnostics; Outcome is the mapped three-way result.
type StatusResult struct {
	Outcome       Outcome
	State         string
	TransactionID string
}

// PhonePe - client for the PhonePe Standard Checkout API
type PhonePe struct {
	baseURL       string
	authURL       string
	clientID      string
	clientSecret  string
	clientVersion string
	merchantID    string
	callbackBase  string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	client *http.Client
	now    func() time.Time
}

// NewPhonePe builds the gateway client from config. The HTTP client and
// clock are fields so tests can substitute them.
func NewPhonePe(cfg *config.Config) *PhonePe {
	base, auth := phonePeSandboxBase, phonePeSandboxAuth
	if cfg.PhonePeEnv == "production" {
		base, auth = phonePeProdBase, phonePeProdAuth
	}
	if cfg.PhonePeBaseURL != "" {
		base = cfg.PhonePeBaseURL
	}
	if cfg.PhonePeAuthURL != "" {
		auth = cfg.PhonePeAuthURL
	}
	return &PhonePe{
		baseURL:       base,
		authURL:       auth,
		clientID:      cfg.PhonePeClientID,
		clientSecret:  cfg.PhonePeClientSecret,
		clientVersion: cfg.PhonePeClientVersion,
		merchantID:    cfg.PhonePeMerchantID,
		callbackBase:  cfg.BaseURL,
		client:        &http.Client{Timeout: 30 * time.Second},
		now:           time.Now,
	}
}

// Configured reports whether all required gateway credentials are present.
func (p *PhonePe) Configured() bool {
	return p.clientID != "" && p.clientSecret != "" && p.merchantID != ""
}

// getToken returns a valid bearer token, requesting a new one only when
// the cached token is past its expiry minus the safety margin.
func (p *PhonePe) getToken() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.tokenExpiry.Add(-tokenSafetyMargin)) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_version", p.clientVersion)
	form.Set("client_secret", p.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest("POST", p.authURL+"/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s", ErrAuth, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"` // unix seconds
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrAuth, err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token", ErrAuth)
	}

	p.token = result.AccessToken
	if result.ExpiresAt > 0 {
		p.tokenExpiry = time.Unix(result.ExpiresAt, 0)
	} else {
		p.tokenExpiry = p.now().Add(1 * time.Hour)
	}
	return p.token, nil
}

// request performs an authorized call against the gateway API.
func (p *PhonePe) request(method, endpoint string, body interface{}) (*http.Response, error) {
	token, err := p.getToken()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, p.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+token)

	return p.client.Do(req)
}

// NewMerchantOrderID generates a merchant order id of the form
// T<unix millis><6-digit random>. Uniqueness is best-effort; the payments
// table carries a unique index as the backstop.
func (p *PhonePe) NewMerchantOrderID() string {
	return fmt.Sprintf("T%d%06d", p.now().UnixMilli(), rand.Intn(1000000))
}

// ToPaise converts a rupee amount to the gateway's minor unit.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// InitiatePayment creates a gateway order and returns the checkout URL
// the user must be sent to. redirectURL is where the browser should land
// after the payment resolves; the gateway is pointed at our callback
// route, which resolves the status and then forwards there.
func (p *PhonePe) InitiatePayment(amount float64, name, email, phone, redirectURL string) (*InitiateResult, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %v", amount)
	}

	orderID := p.NewMerchantOrderID()
	callbackURL := fmt.Sprintf("%s/api/phonepe/callback/%s", p.callbackBase, orderID)
	if redirectURL != "" {
		callbackURL += "?redirect=" + url.QueryEscape(redirectURL)
	}

	payload := map[string]interface{}{
		"merchantOrderId": orderID,
		"amount":          ToPaise(amount),
		"expireAfter":     1200,
		"metaInfo": map[string]string{
			"udf1": name,
			"udf2": email,
			"udf3": phone,
		},
		"paymentFlow": map[string]interface{}{
			"type":    "PG_CHECKOUT",
			"message": "KEF payment",
			"merchantUrls": map[string]string{
				"redirectUrl": callbackURL,
			},
		},
	}

	resp, err := p.request("POST", "/checkout/v2/pay", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result struct {
		OrderID     string `json:"orderId"`
		State       string `json:"state"`
		RedirectURL string `json:"redirectUrl"`
		Code        string `json:"code"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("payment creation failed: unexpected response: %s", string(body))
	}

	if resp.StatusCode != 200 || result.RedirectURL == "" {
		errMsg := result.Message
		if errMsg == "" {
			errMsg = string(body)
		}
		return nil, fmt.Errorf("payment creation failed: %s", errMsg)
	}

	return &InitiateResult{
		RedirectURL:     result.RedirectURL,
		MerchantOrderID: orderID,
	}, nil
}

// GetOrderStatus resolves the current state of an order. An error return
// means the check itself failed (network, auth, malformed response) and
// says nothing about the payment; an explicit failed outcome only ever
// comes back as OutcomeFailed in the result.
func (p *PhonePe) GetOrderStatus(orderID string) (*StatusResult, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := p.request("GET", fmt.Sprintf("/checkout/v2/order/%s/status", orderID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status check failed: %s", string(body))
	}

	var result struct {
		OrderID        string `json:"orderId"`
		State          string `json:"state"`
		PaymentDetails []struct {
			TransactionID string `json:"transactionId"`
			State         string `json:"state"`
		} `json:"paymentDetails"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("status check failed: unexpected response: %s", string(body))
	}

	txnID := ""
	if len(result.PaymentDetails) > 0 {
		txnID = result.PaymentDetails[0].TransactionID
	}

	return &StatusResult{
		Outcome:       mapState(result.State),
		State:         result.State,
		TransactionID: txnID,
	}, nil
}

// mapState maps the gateway's open-ended state vocabulary onto the
// three-way outcome. Unknown states are pending, not failures, so a new
// gateway code never discards a registration in flight.
func mapState(state string) Outcome {
	switch state {
	case "COMPLETED", "PAYMENT_SUCCESS":
		return OutcomeSuccess
	case "FAILED", "PAYMENT_ERROR", "PAYMENT_DECLINED", "TIMED_OUT":
		return OutcomeFailed
	default:
		return OutcomePending
	}
}
