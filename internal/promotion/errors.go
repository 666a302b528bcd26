package promotion

import "strings"

// ValidationError flags a malformed promotion definition. It is a programmer
// or data error, never a business-rule mismatch: those come back as an
// ineligible Result instead.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid promotion: " + strings.Join(msgs, "; ")
}

// Fields returns the errors keyed by field, in the shape the API layer
// reports validation failures.
func (e ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, err := range e {
		if _, ok := fields[err.Field]; !ok {
			fields[err.Field] = err.Message
		}
	}
	return fields
}
