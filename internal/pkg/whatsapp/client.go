package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/config"
)

// Client talks to an external WhatsApp gateway over its JSON HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
}

func NewClient(cfg config.WhatsAppConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type sendMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SendMessage posts a text message to the gateway. An unconfigured gateway
// turns sends into logged no-ops, matching the email sender's behavior.
func (c *Client) SendMessage(ctx context.Context, recipient, message string) error {
	if c.baseURL == "" {
		slog.Warn("WhatsApp gateway not configured, skipping send", "recipient", recipient)
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		Sender:    c.sender,
		Recipient: recipient,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var decoded sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Status != "" {
		slog.Debug("WhatsApp gateway response", "status", decoded.Status)
	}

	return nil
}
