package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultEmailJSBaseURL is the EmailJS REST API root
	DefaultEmailJSBaseURL = "https://api.emailjs.com"
	emailJSSendPath       = "/api/v1.0/email/send"
	maxErrorBody          = 4 << 10
)

// EmailJSConfig holds the configuration for the EmailJS sender.
type EmailJSConfig struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Origin     string
	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client
}

// EmailJSSender implements Sender using the EmailJS REST API. The
// notification is rendered by the template hosted on EmailJS from
// Message.Params.
type EmailJSSender struct {
	cfg EmailJSConfig
}

// emailJSRequest is the body of POST /api/v1.0/email/send
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendError is a non-2xx response from a delivery provider.
type SendError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NewEmailJSSender creates an EmailJSSender.
func NewEmailJSSender(cfg EmailJSConfig) (*EmailJSSender, error) {
	if cfg.ServiceID == "" {
		return nil, fmt.Errorf("emailjs: service id is required")
	}
	if cfg.PublicKey == "" {
		return nil, fmt.Errorf("emailjs: public key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEmailJSBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &EmailJSSender{cfg: cfg}, nil
}

// Name implements Sender.
func (s *EmailJSSender) Name() string { return "emailjs" }

// Send posts the message parameters to EmailJS.
func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	params := make(map[string]string, len(msg.Params)+1)
	for k, v := range msg.Params {
		params[k] = v
	}
	if msg.To != "" {
		params["to_email"] = msg.To
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.PublicKey,
		AccessToken:    s.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Origin != "" {
		req.Header.Set("Origin", s.cfg.Origin)
	}

	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SendError{
			Provider:   s.Name(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return nil
}
