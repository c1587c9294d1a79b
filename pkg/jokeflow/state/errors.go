package state

import "fmt"

// SchemaError indicates a partial update or initial value referenced a
// field the schema does not declare. It signals a programming defect in
// a node function, not a transient condition, so callers should treat
// it as fatal for the run.
type SchemaError struct {
	// Field is the undeclared field name.
	Field string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("state: undeclared field: %s", e.Field)
}
