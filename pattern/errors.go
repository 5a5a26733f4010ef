package pattern

import "fmt"

// StructuralError reports unbalanced brackets or braces in a pattern.
type StructuralError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("pattern '%s': %s at offset %d", e.Pattern, e.Reason, e.Offset)
}

// DuplicateVariableError reports a variable declared more than once in a
// pattern, nested groups included.
type DuplicateVariableError struct {
	Name string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("cannot use the same placeholder `%s` twice", e.Name)
}

// RepeatCardinalityError reports a repeatable group holding more than one
// variable.
type RepeatCardinalityError struct {
	Pattern string
	Count   int
}

func (e *RepeatCardinalityError) Error() string {
	return fmt.Sprintf(
		"only a single placeholder is allowed in repeatable segments, '%s' has %d", e.Pattern, e.Count,
	)
}

// SyntaxError reports a capture regex rejected by the regexp package.
type SyntaxError struct {
	Pattern string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid capture pattern '%s': %v", e.Pattern, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
