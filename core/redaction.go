package core

import (
	"net/http"
	"strings"
)

const RedactedValue = "[REDACTED]"

var sensitiveKeyTokens = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"apikey",
	"api_key",
	"credential",
	"cookie",
}

// RedactSensitiveMap copies fields, replacing values whose key looks like a
// credential. Nested maps and lists are walked.
func RedactSensitiveMap(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	target := make(map[string]any, len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			target[key] = RedactedValue
			continue
		}
		target[key] = redactValue(value)
	}
	return target
}

// RedactHeaders flattens headers for logging with credentials masked.
func RedactHeaders(headers http.Header) map[string]any {
	out := make(map[string]any, len(headers))
	for key, values := range headers {
		if isSensitiveKey(key) {
			out[key] = RedactedValue
			continue
		}
		out[key] = strings.Join(values, ",")
	}
	return out
}

func redactValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return RedactSensitiveMap(typed)
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = item
		}
		return RedactSensitiveMap(out)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = redactValue(typed[i])
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || key == "request_id" || key == "transaction_id" {
		return false
	}
	for _, token := range sensitiveKeyTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}
