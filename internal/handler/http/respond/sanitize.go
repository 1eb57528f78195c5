package respond

import (
	"regexp"
)

var (
	// apiKey=... style query parameters, whatever the key format.
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api[_-]?key=)[^&\s"]+`)
	// NewsAPI keys are 32 lowercase hex characters.
	newsAPIKeyPattern = regexp.MustCompile(`\b[0-9a-f]{32}\b`)
	// X-Api-Key: header dumps.
	apiKeyHeaderPattern = regexp.MustCompile(`(?i)(x-api-key:\s*)\S+`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyHeaderPattern.ReplaceAllString(msg, "${1}****")
	msg = newsAPIKeyPattern.ReplaceAllString(msg, "****")
	return msg
}
