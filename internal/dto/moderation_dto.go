package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type ModerateTextRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

type ModerateImageRequest struct {
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

type ModerationResponse struct {
	RequestID        uuid.UUID       `json:"request_id"`
	Classification   string          `json:"classification"`
	Confidence       *float64        `json:"confidence,omitempty"`
	Reasoning        *string         `json:"reasoning,omitempty"`
	Status           string          `json:"status"`
	ProviderResponse json.RawMessage `json:"llm_response,omitempty"`
}

type ErrorResponse struct {
	ErrorKind string                 `json:"error_kind"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
