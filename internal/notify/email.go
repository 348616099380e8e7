package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// EmailChannel notifies the content owner through the Brevo transactional
// email API.
type EmailChannel struct {
	apiKey      string
	apiURL      string
	senderName  string
	senderEmail string
	client      *http.Client
}

func NewEmailChannel(apiKey, senderName, senderEmail string) *EmailChannel {
	return &EmailChannel{
		apiKey:      apiKey,
		apiURL:      brevoEndpoint,
		senderName:  senderName,
		senderEmail: senderEmail,
		client:      &http.Client{},
	}
}

func (c *EmailChannel) Name() string { return models.ChannelEmail }

func (c *EmailChannel) Send(ctx context.Context, alert Alert) error {
	body, err := json.Marshal(brevoEmail{
		Sender:      brevoAddress{Name: c.senderName, Email: c.senderEmail},
		To:          []brevoAddress{{Email: alert.UserEmail}},
		Subject:     "Your content was flagged by moderation",
		HTMLContent: fmt.Sprintf("<p>%s</p>", alert.Message()),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Brevo API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Brevo API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
