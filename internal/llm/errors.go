package llm

import "fmt"

// GenerationParseError means the model replied but the reply does not fit the
// four-field schema.
type GenerationParseError struct {
	Category string
	Raw      string
	Err      error
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("parse %s generation: %v", e.Category, e.Err)
}

func (e *GenerationParseError) Unwrap() error {
	return e.Err
}
