package pipeline

import (
	"strings"

	"github.com/depot/shredder/pkg/workflow"
)

const (
	// FallbackImage is the base image when no node version is declared.
	FallbackImage = "alpine"
	// Workdir is where the host directory is mounted inside the container.
	Workdir = "/app"

	setupNodeAction = "actions/setup-node"
	checkoutAction  = "actions/checkout"
)

// absorbed lists actions covered by the base image and mount scaffolding.
var absorbed = map[string]struct{}{
	checkoutAction:  {},
	setupNodeAction: {},
}

// OpKind distinguishes executed commands from placeholder comments.
type OpKind int

const (
	// OpExec runs a shell command in the container.
	OpExec OpKind = iota
	// OpPlaceholder is a TODO comment for an action without a translation.
	OpPlaceholder
)

// Op is one translated step. For OpExec, Text is the escaped shell command;
// for OpPlaceholder it is the comment body.
type Op struct {
	Kind OpKind
	Text string
}

// Plan is the language independent form of a pipeline.
type Plan struct {
	BaseImage string
	Workdir   string
	Ops       []Op
}

// NewPlan applies the translation rules to a normalized step sequence.
func NewPlan(steps []workflow.Step) *Plan {
	plan := &Plan{
		BaseImage: EscapeCommand(BaseImage(steps)),
		Workdir:   Workdir,
	}

	for _, step := range steps {
		switch {
		case step.IsRun():
			plan.Ops = append(plan.Ops, Op{Kind: OpExec, Text: EscapeCommand(step.Run)})
		case step.IsUses():
			if IsAbsorbed(step.Action()) {
				continue
			}
			plan.Ops = append(plan.Ops, Op{Kind: OpPlaceholder, Text: placeholder(step)})
		}
	}

	return plan
}

// NodeVersion returns the node-version of the first setup-node step that
// declares one.
func NodeVersion(steps []workflow.Step) (string, bool) {
	for _, step := range steps {
		if !step.IsUses() || step.Action() != setupNodeAction {
			continue
		}
		if v, ok := step.Param("node-version"); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// BaseImage picks node:<version> when a setup-node step declares a version
// and FallbackImage otherwise.
func BaseImage(steps []workflow.Step) string {
	if v, ok := NodeVersion(steps); ok {
		return "node:" + v
	}
	return FallbackImage
}

// IsAbsorbed reports whether an action identifier needs no translation.
func IsAbsorbed(action string) bool {
	_, ok := absorbed[action]
	return ok
}

// EscapeCommand escapes double quotes only. Newlines, backslashes and other
// characters are passed through as is.
func EscapeCommand(cmd string) string {
	return strings.ReplaceAll(cmd, `"`, `\"`)
}

// placeholder builds a single comment line. Line breaks in the name or
// action are folded into spaces so nothing escapes the comment.
func placeholder(step workflow.Step) string {
	uses := singleLine(step.Uses)
	if name := singleLine(step.Name); name != "" {
		return "TODO: " + name + ": " + uses
	}
	return "TODO: " + uses
}

func singleLine(s string) string {
	parts := strings.FieldsFunc(s, isLineBreak)
	lines := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			lines = append(lines, part)
		}
	}
	return strings.Join(lines, " ")
}

// isLineBreak matches the characters that end a line comment in any of the
// target languages.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}
