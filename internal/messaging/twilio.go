package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioConfig controls how the Twilio client behaves.
type TwilioConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	// From is the WhatsApp-enabled sender number, e.g. "+14155238886".
	From       string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type TwilioClient struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTwilio(cfg TwilioConfig) (*TwilioClient, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("messaging: twilio credentials are required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("messaging: sender number is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TwilioClient{
		baseURL:    baseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (c *TwilioClient) SendWhatsApp(ctx context.Context, to string, body string) error {
	if strings.TrimSpace(to) == "" {
		return errors.New("messaging: destination number is required")
	}

	form := url.Values{}
	form.Set("From", "whatsapp:"+c.from)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf(
		"%s/2010-04-01/Accounts/%s/Messages.json",
		c.baseURL, c.accountSID,
	)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messaging: send whatsapp: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode >= 300 {
		return fmt.Errorf(
			"messaging: twilio returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(raw)),
		)
	}

	var out struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(raw, &out); err == nil && out.SID != "" {
		c.logger.Debug("whatsapp message queued", "sid", out.SID, "to", to)
	}

	return nil
}

var _ Sender = (*TwilioClient)(nil)
