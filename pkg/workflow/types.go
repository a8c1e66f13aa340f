package workflow

import "gopkg.in/yaml.v3"

// Document is a parsed GitHub Actions workflow. Jobs keep the order in which
// they were declared in the source document.
type Document struct {
	Name string
	Jobs []Job

	// Source is the raw document text.
	Source string
}

// Job is a named group of steps. Steps is nil when the job has no usable
// step sequence. The remaining fields describe job features that are not
// translated and are only reported.
type Job struct {
	Name  string
	Steps []Step

	Needs        []string
	If           string
	RunsOn       string
	UsesReusable string
	HasMatrix    bool
	HasContainer bool
	HasServices  bool
	HasEnv       bool
}

// Step is a single workflow step. Only the fields used for translation are
// decoded; Node holds the step as written.
type Step struct {
	Name string
	Run  string
	Uses string
	With []Param

	If     string
	HasEnv bool

	Node *yaml.Node
}

// Param is one entry of a step's `with` mapping, in declaration order.
// Value is the literal scalar text.
type Param struct {
	Key   string
	Value string
}

// IsRun reports whether the step executes a shell command.
func (s Step) IsRun() bool {
	return s.Run != ""
}

// IsUses reports whether the step invokes a reusable action.
func (s Step) IsUses() bool {
	return s.Uses != ""
}

// Action returns the action identifier without its @ref suffix.
func (s Step) Action() string {
	action, _, _ := cutRef(s.Uses)
	return action
}

// Param returns the value of the named `with` parameter.
func (s Step) Param(key string) (string, bool) {
	for _, p := range s.With {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
