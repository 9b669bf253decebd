package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// DecodeAnalysisResult parses a service reply into an AnalysisResult. Every
// field must be present with the right type and matchScore must be a whole
// number in [0, 100]; otherwise ErrMalformedResponse is returned and no
// partial result.
func DecodeAnalysisResult(raw string) (*models.AnalysisResult, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %w", ErrMalformedResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedResponse)
	}

	score, err := decodeMatchScore(fields["matchScore"])
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{MatchScore: score}

	if err := decodeField(fields, "summary", &result.Summary); err != nil {
		return nil, err
	}
	if err := decodeField(fields, "strengths", &result.Strengths); err != nil {
		return nil, err
	}
	if err := decodeField(fields, "weaknesses", &result.Weaknesses); err != nil {
		return nil, err
	}
	if err := decodeField(fields, "suggestions", &result.Suggestions); err != nil {
		return nil, err
	}

	return result, nil
}

func decodeMatchScore(raw json.RawMessage) (int, error) {
	if isMissing(raw) {
		return 0, fmt.Errorf("%w: matchScore is missing", ErrMalformedResponse)
	}

	// json.Number also accepts quoted numbers, which the schema does not allow.
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return 0, fmt.Errorf("%w: matchScore is not a number: %s", ErrMalformedResponse, raw)
	}

	var number json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&number); err != nil {
		return 0, fmt.Errorf("%w: matchScore is not a number: %s", ErrMalformedResponse, raw)
	}

	value, err := number.Float64()
	if err != nil || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: matchScore is not an integer: %s", ErrMalformedResponse, number)
	}
	if value < 0 || value > 100 {
		return 0, fmt.Errorf("%w: matchScore %s is outside 0-100", ErrMalformedResponse, number)
	}

	return int(value), nil
}

// decodeField decodes a required string or []string field. Arrays decode to a
// non-nil slice so an empty list stays distinguishable from a missing one.
func decodeField[T string | []string](fields map[string]json.RawMessage, name string, target *T) error {
	raw := fields[name]
	if isMissing(raw) {
		return fmt.Errorf("%w: %s is missing", ErrMalformedResponse, name)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %s has the wrong type: %w", ErrMalformedResponse, name, err)
	}

	if list, ok := any(&value).(*[]string); ok && *list == nil {
		*list = []string{}
	}

	*target = value
	return nil
}

func isMissing(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// extractJSON strips an enclosing markdown code fence and surrounding prose
// that some models add despite the JSON response type. Backticks inside the
// object are left alone.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}
