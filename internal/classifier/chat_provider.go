package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
)

const moderationSystemPrompt = `You are a content moderation classifier. Given user-submitted content, respond with JSON only (no markdown, no code fences): {"classification": one of ["toxic","spam","harassment","safe"], "confidence": a float between 0.0 and 1.0, "reasoning": "one short sentence explaining the decision"}.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatVerdict struct {
	Classification string   `json:"classification"`
	Confidence     *float64 `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
}

// ChatProvider classifies content through an OpenAI-compatible
// chat-completions endpoint. OpenAI, GLM and DeepSeek all speak this shape,
// so the candidate list is built from multiple ChatProviders pointing at
// different URLs.
type ChatProvider struct {
	name   string
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewChatProvider(name, apiURL, apiKey, model string, timeout time.Duration) *ChatProvider {
	return &ChatProvider{
		name:   name,
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *ChatProvider) Name() string { return p.name }

func (p *ChatProvider) Configured() bool { return p.apiKey != "" }

func (p *ChatProvider) Classify(ctx context.Context, contentType, payload string) (*Outcome, error) {
	userPrompt := fmt.Sprintf("Content type: %s\nContent:\n%s", contentType, payload)
	if contentType == models.ContentTypeImage {
		userPrompt = fmt.Sprintf("Content type: image\nImage URL: %s\nClassify based on the URL and any context it carries.", payload)
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: moderationSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.0,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s API: %w", p.name, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("%s API error (status %d): %s", p.name, httpResp.StatusCode, string(bodyBytes))
	}

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(rawBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from provider")
	}

	content := cleanJSONContent(resp.Choices[0].Message.Content)

	var verdict chatVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}
	if !validLabel(verdict.Classification) {
		return nil, fmt.Errorf("invalid classification label %q", verdict.Classification)
	}
	if verdict.Confidence != nil && (*verdict.Confidence < 0.0 || *verdict.Confidence > 1.0) {
		verdict.Confidence = nil
	}

	out := &Outcome{
		Label:      verdict.Classification,
		Confidence: verdict.Confidence,
		Raw:        json.RawMessage(rawBody),
	}
	if verdict.Reasoning != "" {
		out.Reasoning = &verdict.Reasoning
	}
	return out, nil
}

// cleanJSONContent strips markdown code fences some models wrap around JSON.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return strings.TrimSpace(content)
}
