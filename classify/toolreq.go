package classify

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolRequest is a decoded structured command: an action name plus an open
// bag of arguments. Parameters is intentionally unconstrained beyond being
// an object.
type ToolRequest struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`

	// Confidence reflects payload completeness, 0.0 to 1.0.
	Confidence float64 `json:"-"`
}

// toolRequestSchema is the wire contract for tool requests: exactly two
// top-level keys, nothing else.
var toolRequestSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"tool_name": {
			Type:      "string",
			MinLength: intPtr(1),
		},
		"parameters": {
			Type: "object",
		},
	},
	Required:             []string{"tool_name", "parameters"},
	AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
}

var (
	resolvedOnce      sync.Once
	resolvedSchema    *jsonschema.Resolved
	resolvedSchemaErr error
)

func intPtr(v int) *int { return &v }

func resolveToolRequestSchema() (*jsonschema.Resolved, error) {
	resolvedOnce.Do(func() {
		resolvedSchema, resolvedSchemaErr = toolRequestSchema.Resolve(nil)
	})
	return resolvedSchema, resolvedSchemaErr
}

// ValidateToolRequest parses and validates a single candidate payload.
// The error describes the first failed check.
func ValidateToolRequest(payload string) (ToolRequest, error) {
	var req ToolRequest

	var decoded any
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &decoded); err != nil {
		return req, fmt.Errorf("Invalid JSON: %w", err)
	}

	resolved, err := resolveToolRequestSchema()
	if err != nil {
		return req, fmt.Errorf("Schema validation failed: %w", err)
	}
	if err := resolved.Validate(decoded); err != nil {
		return req, fmt.Errorf("Schema validation failed: %w", err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return req, fmt.Errorf("Schema validation failed: payload is not an object")
	}

	name, ok := obj["tool_name"].(string)
	if !ok || name == "" {
		return req, fmt.Errorf("tool_name must be a non-empty string")
	}
	params, ok := obj["parameters"].(map[string]any)
	if !ok {
		return req, fmt.Errorf("parameters must be an object")
	}

	req.ToolName = name
	req.Parameters = params

	confidence := 1.0
	if len(params) == 0 {
		confidence -= 0.2
	}
	if confidence < 0 {
		confidence = 0
	}
	req.Confidence = confidence

	return req, nil
}

// jsonCandidates scans text for balanced brace substrings, tolerating
// string literals and escapes. When an opener never closes, scanning
// restarts just past it so a truncated fragment cannot swallow a complete
// object nested inside it.
func jsonCandidates(text string) []string {
	var candidates []string
	for i := 0; i < len(text); {
		if text[i] != '{' {
			i++
			continue
		}
		end, ok := scanBalancedObject(text, i)
		if !ok {
			i++
			continue
		}
		candidates = append(candidates, text[i:end])
		i = end
	}
	return candidates
}

// scanBalancedObject scans a brace-balanced region starting at the opener
// at position start, returning the exclusive end offset.
func scanBalancedObject(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// ExtractToolRequests finds every valid tool request embedded in a
// response. Malformed candidates are skipped silently so one bad
// JSON-looking fragment cannot mask a good one elsewhere.
func ExtractToolRequests(response string) []ToolRequest {
	var requests []ToolRequest
	for _, candidate := range jsonCandidates(response) {
		req, err := ValidateToolRequest(candidate)
		if err != nil {
			continue
		}
		requests = append(requests, req)
	}
	return requests
}
