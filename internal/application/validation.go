package application

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeID" -> "node ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":    "node ID",
		"nodeIDs":   "node IDs",
		"nameArray": "name array",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateTagIndex checks a flow tag used to toggle visibility.
// The tag's leading integer must be between 0 and connectorCount inclusive.
// The bound is the number of connectors in the document, not FlowCount.
func ValidateTagIndex(tag string, connectorCount int) error {
	id, ok := leadingInt(tag)
	if !ok {
		return &TagError{Tag: tag, Reason: "not a number"}
	}
	if id < 0 {
		return &TagError{Tag: tag, Reason: "negative"}
	}
	if id > connectorCount {
		return &TagError{Tag: tag, Reason: fmt.Sprintf("exceeds connector count %d", connectorCount)}
	}
	return nil
}

// leadingInt reads the integer at the start of s after whitespace and an
// optional sign. Trailing text is ignored; ok is false when no digit follows.
// Values too large for int saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	// only digits remain, so the one possible error is a range error and
	// Atoi already returns the saturated value for it
	n, _ := strconv.Atoi(sign + s[:end])
	return n, true
}
