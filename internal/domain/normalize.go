package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Ordered vector field candidates tried on each embedding item.
//
//nolint:gochecknoglobals // read-only lookup table
var vectorFieldCandidates = []string{"embedding", "vector", "embedding_vector"}

// legacyVectorField is consulted only when no candidate yields a non-empty vector.
const legacyVectorField = "values"

// NormalizeCompletion extracts the reply text and usage from a decoded chat
// completion payload. It never fails: malformed shapes degrade to a
// stringified fallback.
func NormalizeCompletion(raw map[string]any) (string, Usage) {
	return ExtractCompletionText(raw), ExtractUsage(raw)
}

// ExtractCompletionText applies the choice/message/content extraction pipeline.
// When the choices portion is malformed it returns the stringified choices
// (or the whole payload when choices is absent).
func ExtractCompletionText(raw map[string]any) string {
	if text, ok := extractChoiceText(raw); ok {
		return text
	}

	if choices, present := raw["choices"]; present {
		return stringify(choices)
	}
	return stringify(raw)
}

// extractChoiceText returns ok=false when the payload shape cannot be read.
func extractChoiceText(raw map[string]any) (string, bool) {
	choicesValue := raw["choices"]
	if !truthy(choicesValue) {
		return "", true
	}

	choices, isList := choicesValue.([]any)
	if !isList {
		return "", false
	}

	choice, isMap := choices[0].(map[string]any)
	if !isMap {
		return "", false
	}

	if message, hasMessage := choice["message"].(map[string]any); hasMessage {
		return extractMessageContent(message["content"])
	}

	// Legacy completion shape: choices[0].text.
	return stringify(choice["text"]), true
}

// extractMessageContent reads message.content: a string, a list of blocks, or anything else.
func extractMessageContent(content any) (string, bool) {
	switch c := content.(type) {
	case string:
		return c, true
	case []any:
		return joinContentBlocks(c)
	default:
		return stringify(c), true
	}
}

// joinContentBlocks concatenates string blocks and the text of mapping blocks
// with no separator. A mapping block whose text is not a string makes the
// whole content malformed.
func joinContentBlocks(blocks []any) (string, bool) {
	var text []byte
	for _, block := range blocks {
		switch b := block.(type) {
		case string:
			text = append(text, b...)
		case map[string]any:
			value, hasText := b["text"]
			if !hasText {
				continue
			}
			s, isString := value.(string)
			if !isString {
				return "", false
			}
			text = append(text, s...)
		}
	}
	return string(text), true
}

// ExtractUsage returns the top-level usage mapping, else meta.usage, else an empty mapping.
func ExtractUsage(raw map[string]any) Usage {
	if usage, ok := raw["usage"].(map[string]any); ok && len(usage) > 0 {
		return Usage(usage)
	}

	if meta, ok := raw["meta"].(map[string]any); ok {
		if usage, ok := meta["usage"].(map[string]any); ok && len(usage) > 0 {
			return Usage(usage)
		}
	}

	return Usage{}
}

// ExtractVectors reads one vector per mapping item of the payload's data list.
// Non-mapping items are skipped; mapping items without a usable vector field
// contribute an empty vector so positions stay aligned.
func ExtractVectors(raw map[string]any) [][]float64 {
	data, _ := raw["data"].([]any)

	vectors := make([][]float64, 0, len(data))
	for _, item := range data {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		vectors = append(vectors, extractVector(fields))
	}
	return vectors
}

func extractVector(item map[string]any) []float64 {
	for _, name := range vectorFieldCandidates {
		if vec := toVector(item[name]); len(vec) > 0 {
			return vec
		}
	}

	if value, present := item[legacyVectorField]; present {
		if vec := toVector(value); vec != nil {
			return vec
		}
	}

	return []float64{}
}

// toVector converts a list of numbers. Anything else, including a list with a
// non-numeric element, is not a vector and yields nil.
func toVector(value any) []float64 {
	list, ok := value.([]any)
	if !ok {
		return nil
	}

	vec := make([]float64, 0, len(list))
	for _, element := range list {
		n, isNumber := toNumber(element)
		if !isNumber {
			return nil
		}
		vec = append(vec, n)
	}
	return vec
}

// truthy mirrors "present and non-empty" for decoded JSON values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// stringify renders a decoded JSON value as text. Null becomes the empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
