package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ServiceInterface interface {
	SendSMS(ctx context.Context, number, message, senderName string) (*SendResult, error)
}

type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
	Network   string `json:"network"`
}

// Service posts messages to the Semaphore gateway. Only the call contract
// lives here; delivery is the gateway's problem.
type Service struct {
	apiKey        string
	defaultSender string
	baseURL       string
	httpClient    *http.Client
}

func NewService(apiKey, defaultSender, baseURL string) ServiceInterface {
	return &Service{
		apiKey:        apiKey,
		defaultSender: defaultSender,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiMessage struct {
	MessageID  json.Number `json:"message_id"`
	Status     string      `json:"status"`
	Recipient  string      `json:"recipient"`
	Network    string      `json:"network"`
	SenderName string      `json:"sender_name"`
}

func (s *Service) SendSMS(ctx context.Context, number, message, senderName string) (*SendResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("semaphore api key is not configured")
	}
	if number == "" {
		return nil, fmt.Errorf("recipient number is required")
	}
	if senderName == "" {
		senderName = s.defaultSender
	}

	form := url.Values{}
	form.Set("apikey", s.apiKey)
	form.Set("number", number)
	form.Set("message", message)
	form.Set("sendername", senderName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semaphore request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("semaphore returned status %d", resp.StatusCode)
	}

	var messages []apiMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("semaphore response decode failed: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("semaphore returned no message entries")
	}

	m := messages[0]
	return &SendResult{
		MessageID: m.MessageID.String(),
		Status:    m.Status,
		Recipient: m.Recipient,
		Network:   m.Network,
	}, nil
}
