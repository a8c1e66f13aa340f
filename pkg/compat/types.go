package compat

// SupportLevel represents how much of a workflow feature survives conversion
type SupportLevel int

const (
	Supported SupportLevel = iota
	Unsupported
	Partial
)

func (l SupportLevel) String() string {
	switch l {
	case Supported:
		return "supported"
	case Unsupported:
		return "dropped"
	case Partial:
		return "partial"
	default:
		return "unknown"
	}
}

// Rule describes how a workflow feature is handled by the converter
type Rule struct {
	Feature    string       `json:"feature"`
	Supported  SupportLevel `json:"supported"`
	Note       string       `json:"note"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// Issue is a single note about a feature found in a workflow
type Issue struct {
	Job        string       `json:"job,omitempty"`
	Feature    string       `json:"feature"`
	Level      SupportLevel `json:"level"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// Report contains all notes for one workflow
type Report struct {
	Workflow string  `json:"workflow,omitempty"`
	Issues   []Issue `json:"issues"`
}
