package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON reports model output containing no JSON object at all.
var ErrNoJSON = errors.New("no JSON object found in model output")

// Extract locates the JSON object embedded in raw model text. Models wrap
// JSON in prose or markdown fences despite instructions, so this is
// best-effort recovery rather than strict parsing: the span from the first
// '{' to the last '}' inclusive is taken and must parse as JSON. Multiple
// independent JSON blocks, or unbalanced braces inside string values, will
// mis-slice; that limitation is accepted.
func Extract(raw string) ([]byte, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrNoJSON
	}

	candidate := []byte(raw[start : end+1])
	var probe any
	if err := json.Unmarshal(candidate, &probe); err != nil {
		return nil, fmt.Errorf("model output between braces is not valid JSON: %w", err)
	}
	return candidate, nil
}
