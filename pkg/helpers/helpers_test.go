package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/depot/shredder/pkg/compat"
	"github.com/depot/shredder/pkg/pipeline"
)

func TestReadWorkflow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ci.yml")
	if err := os.WriteFile(path, []byte("jobs: {}\n"), 0644); err != nil {
		t.Fatalf("failed to write workflow: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		sample  string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "file", path: path, want: "jobs: {}\n"},
		{name: "stdin dash", path: "-", stdin: "jobs: x\n", want: "jobs: x\n"},
		{name: "stdin default", stdin: "jobs: y\n", want: "jobs: y\n"},
		{name: "empty stdin", stdin: "  \n", wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.yml"), wantErr: true},
		{name: "sample and file", path: path, sample: "basic", wantErr: true},
		{name: "unknown sample", sample: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWorkflow(tt.path, tt.sample, strings.NewReader(tt.stdin))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadWorkflow returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReadWorkflow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadWorkflowSample(t *testing.T) {
	got, err := ReadWorkflow("", "basic", nil)
	if err != nil {
		t.Fatalf("ReadWorkflow returned error: %v", err)
	}
	if !strings.Contains(got, "actions/setup-node") {
		t.Fatalf("unexpected sample content: %s", got)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, &compat.Report{Issues: []compat.Issue{
		{Job: "test", Feature: "needs", Level: compat.Unsupported, Message: "Job \"test\" needs build", Suggestion: "Reorder jobs."},
	}})

	out := buf.String()
	for _, want := range []string{"1 note (1 dropped)", "[dropped, job test]", "needs build", "Reorder jobs."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStripANSI(t *testing.T) {
	if got := stripANSI("\x1b[31msk-key\x1b[0m"); got != "sk-key" {
		t.Fatalf("stripANSI() = %q", got)
	}
}

func TestParseDaggerVersion(t *testing.T) {
	got, err := parseDaggerVersion("dagger v0.9.7 (registry.dagger.io/engine) linux/amd64\n")
	if err != nil {
		t.Fatalf("parseDaggerVersion returned error: %v", err)
	}
	if got != "v0.9.7" {
		t.Fatalf("parseDaggerVersion() = %q", got)
	}

	if _, err := parseDaggerVersion("dagger"); err == nil {
		t.Fatal("expected error for truncated output")
	}
}

func TestRunHint(t *testing.T) {
	tests := []struct {
		lang pipeline.Language
		file string
		want string
	}{
		{lang: pipeline.Go, want: "dagger run go run main.go"},
		{lang: pipeline.Python, file: "ci.py", want: "dagger run python ci.py"},
		{lang: pipeline.TypeScript, want: "dagger run npx tsx main.ts"},
	}

	for _, tt := range tests {
		if got := RunHint(tt.lang, tt.file); got != tt.want {
			t.Errorf("RunHint(%s, %q) = %q, want %q", tt.lang, tt.file, got, tt.want)
		}
	}
}

func TestIsPiped(t *testing.T) {
	if !IsPiped(strings.NewReader("jobs: {}")) {
		t.Fatal("expected an in-memory reader to count as piped")
	}

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if !IsPiped(f) {
		t.Fatal("expected a regular file to count as piped")
	}
}

func TestReadWorkflowRedirectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci.yml")
	if err := os.WriteFile(path, []byte("jobs: {}\n"), 0644); err != nil {
		t.Fatalf("failed to write workflow: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open workflow: %v", err)
	}
	defer f.Close()

	got, err := ReadWorkflow("", "", f)
	if err != nil {
		t.Fatalf("ReadWorkflow returned error: %v", err)
	}
	if got != "jobs: {}\n" {
		t.Fatalf("ReadWorkflow() = %q", got)
	}
}
