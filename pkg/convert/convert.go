package convert

import (
	"github.com/depot/shredder/pkg/debuglog"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/depot/shredder/pkg/workflow"
)

// Result is the outcome of a conversion. Error is non-empty iff Code is empty.
type Result struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the conversion produced code.
func (r Result) OK() bool {
	return r.Error == ""
}

// Convert translates a GitHub Actions workflow into Dagger code for lang.
// Loader and normalizer failures are flattened into Result.Error. It keeps no
// state between calls and is safe for concurrent use.
func Convert(yamlText string, lang pipeline.Language) Result {
	doc, err := workflow.Load(yamlText)
	if err != nil {
		debuglog.Log("convert: load failed: %v", err)
		return Result{Error: err.Error()}
	}

	steps, err := workflow.Normalize(doc)
	if err != nil {
		debuglog.Log("convert: normalize failed: %v", err)
		return Result{Error: err.Error()}
	}

	debuglog.Log("convert: %d job(s), %d step(s), language %s", len(doc.Jobs), len(steps), lang)
	return Result{Code: pipeline.Emit(steps, lang)}
}

// CheckBaseImage returns an error when the base image Convert would pick for
// yamlText is not a valid image reference. Input that does not convert is
// not checked.
func CheckBaseImage(yamlText string) error {
	doc, err := workflow.Load(yamlText)
	if err != nil {
		return nil
	}
	steps, err := workflow.Normalize(doc)
	if err != nil {
		return nil
	}
	return pipeline.ValidateImage(pipeline.BaseImage(steps))
}
