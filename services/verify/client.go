package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrVendor is returned when the verification vendor is unreachable or
// answers with a non-2xx status. Callers surface it as a retryable
// upstream failure, never as success.
var ErrVendor = errors.New("verification vendor failure")

// Client talks to the OTP verification vendor. The vendor owns the code
// lifecycle end to end; this client only asks it to send a code and later
// to check one.
type Client struct {
	http       *resty.Client
	serviceSID string
}

// NewClient builds a vendor client. Injected where needed so tests can
// point it at a fake server.
func NewClient(baseURL, apiKey, serviceSID string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Authorization", "Bearer "+apiKey)

	return &Client{http: httpClient, serviceSID: serviceSID}
}

type verificationResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// SendCode asks the vendor to deliver an OTP to phone over SMS. Returns
// the vendor's verification SID.
func (c *Client) SendCode(ctx context.Context, phone string) (string, error) {
	var out verificationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":      phone,
			"Channel": "sms",
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/Services/%s/Verifications", c.serviceSID))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVendor, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrVendor, resp.StatusCode())
	}

	return out.SID, nil
}

// CheckCode asks the vendor whether code matches the pending verification
// for phone. A wrong code is not an error; it comes back approved=false.
func (c *Client) CheckCode(ctx context.Context, phone, code string) (bool, error) {
	var out verificationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   phone,
			"Code": code,
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/Services/%s/VerificationCheck", c.serviceSID))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVendor, err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("%w: status %d", ErrVendor, resp.StatusCode())
	}

	return out.Status == "approved", nil
}
