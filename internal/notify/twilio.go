package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSink sends SMS through the Twilio messages API. All dispatch in
// this service is fire-and-forget; callers log and swallow failures.
type TwilioSink struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

// NewTwilioSink creates an SMS sink from account credentials
func NewTwilioSink(accountSID, authToken, from string) *TwilioSink {
	return &TwilioSink{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultAPIBase,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTwilioSinkWithBaseURL is NewTwilioSink against a custom endpoint
func NewTwilioSinkWithBaseURL(accountSID, authToken, from, baseURL string) *TwilioSink {
	s := NewTwilioSink(accountSID, authToken, from)
	s.baseURL = baseURL
	return s
}

// SendSMS delivers one message to the given number
func (s *TwilioSink) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach sms service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms service error (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}
