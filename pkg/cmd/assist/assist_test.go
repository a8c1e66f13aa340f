package assist

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/depot/shredder/pkg/pipeline"
)

type fakeTranslator struct {
	code     string
	err      error
	gotLang  pipeline.Language
	gotInput string
}

func (f *fakeTranslator) Translate(ctx context.Context, yamlText string, lang pipeline.Language) (string, error) {
	f.gotLang = lang
	f.gotInput = yamlText
	return f.code, f.err
}

func TestNewCmdAssistFlags(t *testing.T) {
	cmd := NewCmdAssist()

	for _, flagName := range []string{"lang", "sample", "openai-key", "model"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Fatalf("expected --%s flag to exist", flagName)
		}
	}
}

func TestRunAssist(t *testing.T) {
	client := &fakeTranslator{code: "package main"}

	var stdout bytes.Buffer
	err := runAssist(context.Background(), client, assistOptions{
		language: "typescript",
		stdin:    strings.NewReader("jobs: {}\n"),
		stdout:   &stdout,
		stderr:   &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("runAssist returned error: %v", err)
	}

	if client.gotLang != pipeline.TypeScript {
		t.Fatalf("expected typescript, got %s", client.gotLang)
	}
	if client.gotInput != "jobs: {}\n" {
		t.Fatalf("unexpected input %q", client.gotInput)
	}
	if stdout.String() != "package main\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestRunAssistEmptyReply(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runAssist(context.Background(), &fakeTranslator{}, assistOptions{
		sample: "basic",
		stdout: &stdout,
		stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("runAssist returned error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "no output") {
		t.Fatalf("expected warning, got %q", stderr.String())
	}
}

func TestRunAssistError(t *testing.T) {
	err := runAssist(context.Background(), &fakeTranslator{err: errors.New("rate limited")}, assistOptions{
		sample: "basic",
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "AI translation failed: rate limited") {
		t.Fatalf("unexpected error: %v", err)
	}
}
