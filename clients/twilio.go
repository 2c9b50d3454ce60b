/*
# Module: clients/twilio.go
Twilio REST API client for outbound SMS delivery.

## Linked Modules
- [types/api_types](../types/api_types.go) - Twilio response structures

## Tags
api-client, twilio, sms

## Exports
TwilioClient, NewTwilioClient, SendSMS

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/twilio.go" ;
    code:description "Twilio REST API client for outbound SMS delivery" ;
    code:linksTo [
        code:name "types/api_types" ;
        code:path "../types/api_types.go" ;
        code:relationship "Twilio response structures"
    ] ;
    code:exports :TwilioClient, :NewTwilioClient, :SendSMS ;
    code:tags "api-client", "twilio", "sms" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"location-consent/types"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioClient sends SMS messages through the Twilio Messages API
type TwilioClient struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

// NewTwilioClient creates a new Twilio API client
func NewTwilioClient(accountSID, authToken, fromNumber string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    twilioAPIBase,
	}
}

// SendSMS delivers a message to the given phone number. A non-2xx
// response or a timeout is reported as a delivery failure.
func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) error {
	if c.accountSID == "" || c.authToken == "" {
		return fmt.Errorf("Twilio client not initialized. Check credentials.")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Twilio API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Twilio API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var message types.TwilioMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return fmt.Errorf("failed to parse Twilio response: %w", err)
	}

	log.Printf("📱 SMS sent to %s, SID: %s", to, message.Sid)
	return nil
}
