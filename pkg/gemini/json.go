package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExtractJSON strips markdown fences and surrounding chatter from a model reply.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))

	if json.Valid([]byte(raw)) {
		return raw
	}

	// Salvage the outermost object or array from prose around it
	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return raw
	}
	closer := "}"
	if raw[start] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(raw, closer); end > start {
		return raw[start : end+1]
	}
	return raw
}

// DecodeJSON extracts and unmarshals a model reply into v.
func DecodeJSON(raw string, v any) error {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return errors.New("empty model reply")
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("parse model reply: %w", err)
	}
	return nil
}
