package services

// ValidationErrors carries field-level validation messages. It is returned as
// an error so handlers can render a 422 with the full field map and no partial
// effect.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return "validation failed"
}
