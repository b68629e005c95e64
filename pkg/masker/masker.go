package masker

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Field names whose values are replaced entirely. Matching is
// case-insensitive on the exact field name.
var fullMaskFields = []string{
	"email", "emailId", "emailId1", "emailId2", "contactNumber", "phoneNo",
	"mobileNo", "address", "address1", "address2", "name", "legalName",
	"tradeName", "supplierCompanyName", "firstName", "lastName",
	"supplierName", "buyerLegalName", "buyerTradeName", "vendorName",
	"shipPhoneNumber", "shipEmail", "gstin", "gstinNo", "legalname",
	"tradename", "contactPerson", "phone",
}

// Field names masked except for the last four characters, enough to
// correlate records without exposing the identifier.
var partialMaskFields = []string{
	"panNumber", "narrationOfGstin", "vendorCode",
}

const fullMask = "***"

var (
	normalizedFullMask    = normalize(fullMaskFields)
	normalizedPartialMask = normalize(partialMaskFields)

	fullMaskPatterns    = buildPatterns(fullMaskFields)
	partialMaskPatterns = buildPatterns(partialMaskFields)
)

func normalize(fields []string) map[string]struct{} {
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}
	return m
}

func buildPatterns(fields []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(fields))
	for _, f := range fields {
		// field ':' or '=' followed by a {...} block, a quoted string or a bare word
		expr := `(?i)\b` + regexp.QuoteMeta(f) + `\b\s*[:=]?\s*(\{[^}]+\}|"[^"]+"|\S+)`
		patterns[f] = regexp.MustCompile(expr)
	}
	return patterns
}

// Mask redacts sensitive field values in the given message. Valid JSON is
// masked structurally so nested objects and arrays are covered; anything
// else falls back to regex-based masking of field/value pairs in plain text.
func Mask(message string) string {
	if message == "" {
		return message
	}
	if masked, ok := maskJSON(message); ok {
		return masked
	}
	return maskText(message)
}

func maskJSON(message string) (string, bool) {
	var root any
	if err := json.Unmarshal([]byte(message), &root); err != nil {
		return "", false
	}
	masked := maskValue("", root)
	out, err := json.Marshal(masked)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func maskValue(key string, v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = maskValue(k, child)
		}
		return node
	case []any:
		for i, item := range node {
			node[i] = maskValue("", item)
		}
		return node
	case string:
		return maskField(key, node)
	default:
		return v
	}
}

func maskField(key, value string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if _, ok := normalizedFullMask[normalized]; ok {
		return fullMask
	}
	if _, ok := normalizedPartialMask[normalized]; ok {
		return maskExceptLast4(value)
	}
	return value
}

func maskText(message string) string {
	for field, pattern := range fullMaskPatterns {
		message = pattern.ReplaceAllString(message, fmt.Sprintf(`"%s": "%s"`, field, fullMask))
	}
	for field, pattern := range partialMaskPatterns {
		message = pattern.ReplaceAllStringFunc(message, func(match string) string {
			groups := pattern.FindStringSubmatch(match)
			if len(groups) != 2 {
				return match
			}
			clean := strings.Trim(strings.TrimSpace(groups[1]), `"{}`)
			return fmt.Sprintf(`"%s": "%s"`, field, maskExceptLast4(clean))
		})
	}
	return message
}

// maskExceptLast4 keeps the trailing four characters visible.
func maskExceptLast4(value string) string {
	if len(value) <= 4 {
		return fullMask
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
