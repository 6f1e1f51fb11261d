package field

import "fmt"

// AssertionError marks a programmer error: a typed accessor was called
// against a field whose schema type does not match. These are
// unrecoverable — the caller has a bug, not the data — and are raised via
// panic rather than returned, the same way an exhaustive type switch
// panics on an unreachable default case.
type AssertionError struct {
	Field string
	Msg   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Msg)
}

func assertType(name string, got, want fmt.Stringer) {
	if got.String() != want.String() {
		panic(&AssertionError{Field: name, Msg: fmt.Sprintf("expected type %s, got %s", want, got)})
	}
}
