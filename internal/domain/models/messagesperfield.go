// internal/domain/models/messagesperfield.go
package models

// MessagesPerField indexes validation errors by form field name.
type MessagesPerField map[string]string

// ExistsError reports whether any of the named fields has an error.
func (m MessagesPerField) ExistsError(fields ...string) bool {
	for _, f := range fields {
		if m[f] != "" {
			return true
		}
	}
	return false
}

// GetFirstError returns the error of the first named field that has one,
// in argument order, or "".
func (m MessagesPerField) GetFirstError(fields ...string) string {
	for _, f := range fields {
		if msg := m[f]; msg != "" {
			return msg
		}
	}
	return ""
}

// PrintIfExists returns text when field has an error and "" otherwise.
// Templates use it to add an error class to a form group.
func (m MessagesPerField) PrintIfExists(field, text string) string {
	if m[field] != "" {
		return text
	}
	return ""
}
