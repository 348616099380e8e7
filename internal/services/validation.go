package services

import (
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
)

const (
	maxEmailLength    = 254
	maxContentLength  = 10000
	maxImageURLLength = 2048
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	imageURLPattern = regexp.MustCompile(`^https?://[^\s/$.?#].\S*$`)

	// Script injection patterns rejected outright rather than sanitized.
	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)on(load|error|click)\s*=`),
	}

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff"}
)

func validateEmail(email string) error {
	if len(email) > maxEmailLength {
		return apperr.Validation("email exceeds maximum length").WithDetail("field", "email")
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("invalid email address").WithDetail("field", "email")
	}
	return nil
}

func validateTextContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.Validation("content cannot be empty").WithDetail("field", "content")
	}
	if len(content) > maxContentLength {
		return apperr.ContentTooLarge("content exceeds maximum length", maxContentLength, len(content))
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(content) {
			return apperr.Validation("content contains potentially dangerous patterns").WithDetail("field", "content")
		}
	}
	return nil
}

func validateImageURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return apperr.Validation("image URL cannot be empty").WithDetail("field", "image_url")
	}
	if len(url) > maxImageURLLength {
		return apperr.ContentTooLarge("image URL exceeds maximum length", maxImageURLLength, len(url))
	}
	if !imageURLPattern.MatchString(url) {
		return apperr.Validation("invalid image URL format").WithDetail("field", "image_url")
	}
	lower := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return apperr.Validation("URL does not have a valid image extension").WithDetail("field", "image_url")
}
