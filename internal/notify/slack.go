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

type slackPayload struct {
	Text string `json:"text"`
}

// OpsChannel posts flagged-content alerts to a Slack incoming webhook so
// the operations team sees them.
type OpsChannel struct {
	webhookURL string
	client     *http.Client
}

func NewOpsChannel(webhookURL string) *OpsChannel {
	return &OpsChannel{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

func (c *OpsChannel) Name() string { return models.ChannelOpsAlert }

func (c *OpsChannel) Send(ctx context.Context, alert Alert) error {
	text := fmt.Sprintf(":rotating_light: %s (owner: %s, request: %s)", alert.Message(), alert.UserEmail, alert.RequestID)
	body, err := json.Marshal(slackPayload{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Slack webhook error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
