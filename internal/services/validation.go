package services

// ValidationError aggregates per-field validation messages. Handlers render it
// as a 422 response with a field-to-messages map.
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}
