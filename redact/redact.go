package redact

import "regexp"

// Sentinel is the fixed replacement recorded in place of a sensitive value.
const Sentinel = "[REDACTED]"

// sensitivePattern matches selectors and field names that reference
// credential-like inputs. Substring match, case-insensitive.
var sensitivePattern = regexp.MustCompile(`(?i)(password|passwd|card|cvv|ssn|credit|secret|token)`)

// Sensitive reports whether a selector or field name references a sensitive
// field, or the caller flagged it explicitly.
func Sensitive(selector string, explicit bool) bool {
	return explicit || sensitivePattern.MatchString(selector)
}

// Value returns Sentinel when the field is sensitive, otherwise the value
// unchanged.
func Value(value, selector string, explicit bool) string {
	if Sensitive(selector, explicit) {
		return Sentinel
	}
	return value
}
