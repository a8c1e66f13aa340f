package workflow

import "errors"

var (
	// ErrNoJobs is returned when a document parses but has no jobs mapping.
	ErrNoJobs = errors.New("No jobs found in YAML.")
	// ErrNoSteps is returned when no job carries any steps.
	ErrNoSteps = errors.New("No steps found in any job.")
)

// ParseError wraps the YAML parser diagnostic for malformed input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
