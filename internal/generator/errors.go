package generator

import "fmt"

// EntityError wraps any failure while generating one entity's file. It is
// fatal for the whole run.
type EntityError struct {
	Kind     string
	Codename string
	Name     string
	Err      error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("failed to process %s '%s' (%s): %v", e.Kind, e.Codename, e.Name, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }

// InvalidCodenameError reports an element without a codename.
type InvalidCodenameError struct {
	ElementID string
}

func (e *InvalidCodenameError) Error() string {
	return fmt.Sprintf("invalid codename for element '%s'", e.ElementID)
}
