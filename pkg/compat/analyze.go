package compat

import (
	"fmt"
	"strings"

	"github.com/depot/shredder/pkg/pipeline"
	"github.com/depot/shredder/pkg/workflow"
)

// Analyze reports the workflow features that do not survive conversion.
func Analyze(doc *workflow.Document) *Report {
	if doc == nil {
		return &Report{}
	}

	issues := append([]Issue{}, AnalyzeJobs(doc.Jobs)...)
	for _, job := range doc.Jobs {
		issues = append(issues, AnalyzeSteps(job.Name, job.Steps)...)
	}
	issues = append(issues, AnalyzeReferences(doc.Source)...)

	var steps []workflow.Step
	for _, job := range doc.Jobs {
		steps = append(steps, job.Steps...)
	}
	if issue, ok := analyzeNodeVersion(steps); ok {
		issues = append(issues, issue)
	}

	return &Report{
		Workflow: doc.Name,
		Issues:   issues,
	}
}

func AnalyzeJobs(jobs []workflow.Job) []Issue {
	issues := make([]Issue, 0)

	for _, job := range jobs {
		jobLabel := job.Name
		if jobLabel == "" {
			jobLabel = "unnamed job"
		}

		if len(job.Needs) > 0 {
			issues = append(issues, jobIssue(job.Name, "needs", fmt.Sprintf("Job %q needs %s", jobLabel, strings.Join(job.Needs, ", "))))
		}
		if job.If != "" {
			issues = append(issues, jobIssue(job.Name, "if", fmt.Sprintf("Job %q runs only if %s", jobLabel, job.If)))
		}
		if job.HasEnv {
			issues = append(issues, jobIssue(job.Name, "env", fmt.Sprintf("Job %q sets env", jobLabel)))
		}
		if job.HasMatrix {
			issues = append(issues, jobIssue(job.Name, "strategy.matrix", fmt.Sprintf("Job %q uses a matrix", jobLabel)))
		}
		if job.HasContainer {
			issues = append(issues, jobIssue(job.Name, "container", fmt.Sprintf("Job %q uses a container", jobLabel)))
		}
		if job.HasServices {
			issues = append(issues, jobIssue(job.Name, "services", fmt.Sprintf("Job %q uses services", jobLabel)))
		}
		if job.UsesReusable != "" {
			issues = append(issues, jobIssue(job.Name, "uses", fmt.Sprintf("Job %q calls reusable workflow %q", jobLabel, job.UsesReusable)))
		}
	}

	return issues
}

func AnalyzeSteps(jobName string, steps []workflow.Step) []Issue {
	issues := make([]Issue, 0)

	for i, step := range steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}

		if step.If != "" {
			issues = append(issues, stepIssue(jobName, "if", fmt.Sprintf("%s runs only if %s", label, step.If)))
		}
		if step.HasEnv {
			issues = append(issues, stepIssue(jobName, "env", fmt.Sprintf("%s sets env", label)))
		}

		switch {
		case step.IsRun():
			if strings.Contains(strings.TrimRight(step.Run, "\n"), "\n") {
				issues = append(issues, stepIssue(jobName, "run (multi-line)", fmt.Sprintf("%s has a multi-line command", label)))
			}
		case step.IsUses():
			if !pipeline.IsAbsorbed(step.Action()) {
				issues = append(issues, stepIssue(jobName, "uses", fmt.Sprintf("%s uses %s", label, step.Uses)))
			}
		}
	}

	return issues
}

func AnalyzeReferences(source string) []Issue {
	issues := make([]Issue, 0)

	for _, name := range DetectSecrets(source) {
		issues = append(issues, referenceIssue("secrets", fmt.Sprintf("Secret %s is referenced", name)))
	}
	for _, name := range DetectVariables(source) {
		issues = append(issues, referenceIssue("vars", fmt.Sprintf("Variable %s is referenced", name)))
	}

	return issues
}

func analyzeNodeVersion(steps []workflow.Step) (Issue, bool) {
	if _, ok := pipeline.NodeVersion(steps); !ok {
		return Issue{}, false
	}

	image := pipeline.BaseImage(steps)
	if err := pipeline.ValidateImage(image); err == nil {
		return Issue{}, false
	}

	rule := StepFeatureRules["node-version"]
	return Issue{
		Feature:    rule.Feature,
		Level:      rule.Supported,
		Message:    fmt.Sprintf("Base image %q: %s", image, rule.Note),
		Suggestion: rule.Suggestion,
	}, true
}

func jobIssue(job, feature, prefix string) Issue {
	return fromRule(job, JobFeatureRules[feature], prefix)
}

func stepIssue(job, feature, prefix string) Issue {
	return fromRule(job, StepFeatureRules[feature], prefix)
}

func referenceIssue(feature, prefix string) Issue {
	return fromRule("", ReferenceRules[feature], prefix)
}

func fromRule(job string, rule Rule, prefix string) Issue {
	return Issue{
		Job:        job,
		Feature:    rule.Feature,
		Level:      rule.Supported,
		Message:    fmt.Sprintf("%s: %s", prefix, rule.Note),
		Suggestion: rule.Suggestion,
	}
}

func SummarizeReport(report *Report) string {
	if report == nil || len(report.Issues) == 0 {
		return "No conversion notes"
	}

	dropped := 0
	partial := 0

	for _, issue := range report.Issues {
		switch issue.Level {
		case Unsupported:
			dropped++
		case Partial:
			partial++
		}
	}

	summary := fmt.Sprintf("%d notes", len(report.Issues))
	if len(report.Issues) == 1 {
		summary = "1 note"
	}
	details := make([]string, 0, 2)

	if dropped > 0 {
		details = append(details, fmt.Sprintf("%d dropped", dropped))
	}
	if partial > 0 {
		details = append(details, fmt.Sprintf("%d partial", partial))
	}

	if len(details) == 0 {
		return summary
	}

	return fmt.Sprintf("%s (%s)", summary, strings.Join(details, ", "))
}

// HasDroppedFeatures reports whether any feature was dropped entirely.
func HasDroppedFeatures(report *Report) bool {
	if report == nil {
		return false
	}

	for _, issue := range report.Issues {
		if issue.Level == Unsupported {
			return true
		}
	}

	return false
}
