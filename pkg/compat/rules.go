package compat

// JobFeatureRules defines how job-level keys are handled. Jobs are flattened
// into a single container pipeline, so most of them are dropped.
var JobFeatureRules = map[string]Rule{
	"needs": {
		Feature:    "needs",
		Supported:  Unsupported,
		Note:       "Job dependencies are dropped; steps run in job declaration order.",
		Suggestion: "Declare jobs in the order they must run.",
	},
	"if": {
		Feature:    "if",
		Supported:  Unsupported,
		Note:       "Job conditions are dropped; the job's steps always run.",
		Suggestion: "Wrap the generated steps in a condition in the pipeline code.",
	},
	"env": {
		Feature:    "env",
		Supported:  Unsupported,
		Note:       "Job environment variables are not translated.",
		Suggestion: "Add WithEnvVariable calls to the generated container.",
	},
	"strategy.matrix": {
		Feature:    "strategy.matrix",
		Supported:  Unsupported,
		Note:       "Matrix strategies are dropped; steps run once.",
		Suggestion: "Loop over the matrix values in the pipeline code.",
	},
	"container": {
		Feature:    "container",
		Supported:  Unsupported,
		Note:       "Job containers are ignored; the base image comes from setup-node or defaults to alpine.",
		Suggestion: "Change the base image in the generated code.",
	},
	"services": {
		Feature:    "services",
		Supported:  Unsupported,
		Note:       "Service containers are not translated.",
		Suggestion: "Bind the services with WithServiceBinding in the pipeline code.",
	},
	"uses": {
		Feature:    "uses",
		Supported:  Unsupported,
		Note:       "Reusable workflows are not expanded; the job contributes no steps.",
		Suggestion: "Inline the reusable workflow's steps into this workflow.",
	},
}

// StepFeatureRules defines how step-level constructs are handled.
var StepFeatureRules = map[string]Rule{
	"if": {
		Feature:   "if",
		Supported: Unsupported,
		Note:      "Step conditions are dropped; the step always runs.",
	},
	"env": {
		Feature:    "env",
		Supported:  Unsupported,
		Note:       "Step environment variables are not translated.",
		Suggestion: "Add WithEnvVariable calls before the step's exec.",
	},
	"uses": {
		Feature:    "uses",
		Supported:  Partial,
		Note:       "Action has no automatic translation and is emitted as a TODO comment.",
		Suggestion: "Replace the TODO with equivalent pipeline code.",
	},
	"run (multi-line)": {
		Feature:    "run (multi-line)",
		Supported:  Partial,
		Note:       "Multi-line commands are embedded verbatim and may not form a valid string literal.",
		Suggestion: "Split the command into separate steps or move it into a script.",
	},
	"node-version": {
		Feature:    "node-version",
		Supported:  Partial,
		Note:       "node-version does not form a valid image tag.",
		Suggestion: "Use an explicit version such as 20 or 20.11.",
	},
}

// ReferenceRules defines how expression references are handled.
var ReferenceRules = map[string]Rule{
	"secrets": {
		Feature:    "secrets",
		Supported:  Unsupported,
		Note:       "Secret references are passed through as literal text.",
		Suggestion: "Load the secret with dag.SetSecret and mount it with WithSecretVariable.",
	},
	"vars": {
		Feature:    "vars",
		Supported:  Unsupported,
		Note:       "Variable references are passed through as literal text.",
		Suggestion: "Pass the value in as a pipeline argument.",
	},
}
