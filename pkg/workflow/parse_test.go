package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPreservesJobOrder(t *testing.T) {
	doc, err := Load("jobs:\n  zeta:\n    steps:\n      - run: z\n  alpha:\n    steps:\n      - run: a\n")
	require.NoError(t, err)

	require.Len(t, doc.Jobs, 2)
	assert.Equal(t, "zeta", doc.Jobs[0].Name)
	assert.Equal(t, "alpha", doc.Jobs[1].Name)
}

func TestLoadDecodesStepShapes(t *testing.T) {
	doc, err := Load(`name: CI
jobs:
  build:
    steps:
      - name: Setup
        uses: actions/setup-node@v4
        with:
          node-version: 18.10
          cache: npm
      - run: npm test
      - just-a-string
      - name: nothing
`)
	require.NoError(t, err)
	assert.Equal(t, "CI", doc.Name)

	steps := doc.Jobs[0].Steps
	require.Len(t, steps, 4)

	assert.True(t, steps[0].IsUses())
	assert.Equal(t, "actions/setup-node", steps[0].Action())
	version, ok := steps[0].Param("node-version")
	assert.True(t, ok)
	assert.Equal(t, "18.10", version, "literal scalar text must be kept")
	assert.Equal(t, []Param{{Key: "node-version", Value: "18.10"}, {Key: "cache", Value: "npm"}}, steps[0].With)

	assert.True(t, steps[1].IsRun())
	assert.Equal(t, "npm test", steps[1].Run)

	assert.False(t, steps[2].IsRun())
	assert.False(t, steps[2].IsUses())
	assert.NotNil(t, steps[2].Node)

	assert.Equal(t, "nothing", steps[3].Name)
	assert.False(t, steps[3].IsRun())
	assert.False(t, steps[3].IsUses())
}

func TestLoadResolvesAliases(t *testing.T) {
	doc, err := Load(`jobs:
  build:
    steps: &shared
      - run: make
  test:
    steps: *shared
`)
	require.NoError(t, err)
	require.Len(t, doc.Jobs, 2)
	require.Len(t, doc.Jobs[1].Steps, 1)
	assert.Equal(t, "make", doc.Jobs[1].Steps[0].Run)
}

func TestLoadJobFeatures(t *testing.T) {
	doc, err := Load(`jobs:
  test:
    runs-on: [ubuntu-latest, self-hosted]
    needs: build
    if: github.ref == 'refs/heads/main'
    container: node:20
    env:
      FOO: bar
    services:
      redis:
        image: redis:7
    strategy:
      matrix:
        node: [18, 20]
  deploy:
    uses: ./.github/workflows/deploy.yml
`)
	require.NoError(t, err)

	test := doc.Jobs[0]
	assert.Equal(t, []string{"build"}, test.Needs)
	assert.Equal(t, "ubuntu-latest,self-hosted", test.RunsOn)
	assert.NotEmpty(t, test.If)
	assert.True(t, test.HasContainer)
	assert.True(t, test.HasEnv)
	assert.True(t, test.HasServices)
	assert.True(t, test.HasMatrix)
	assert.Nil(t, test.Steps)

	deploy := doc.Jobs[1]
	assert.Equal(t, "./.github/workflows/deploy.yml", deploy.UsesReusable)
	assert.False(t, deploy.HasMatrix)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty document", input: "", want: ErrNoJobs},
		{name: "comment only", input: "# nothing here\n", want: ErrNoJobs},
		{name: "null document", input: "~\n", want: ErrNoJobs},
		{name: "scalar document", input: "hello\n", want: ErrNoJobs},
		{name: "sequence document", input: "- jobs\n", want: ErrNoJobs},
		{name: "missing jobs", input: "name: CI\non: push\n", want: ErrNoJobs},
		{name: "null jobs", input: "jobs:\n", want: ErrNoJobs},
		{name: "jobs is a list", input: "jobs:\n  - build\n", want: ErrNoJobs},
		{name: "jobs is a string", input: "jobs: build\n", want: ErrNoJobs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load("name: Invalid\non: [push\njobs:\n  build:\n    runs-on: ubuntu-latest\n")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "Parse error: ")
	assert.Contains(t, err.Error(), "line")
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "top level jobs twice",
			input: "jobs:\n  a:\n    steps:\n      - run: one\njobs:\n  b:\n    steps:\n      - run: two\n",
			want:  `mapping key "jobs" already defined at line 1`,
		},
		{
			name:  "job defined twice",
			input: "jobs:\n  build:\n    steps: []\n  build:\n    steps: []\n",
			want:  `mapping key "build" already defined at line 2`,
		},
		{
			name:  "step key twice",
			input: "jobs:\n  build:\n    steps:\n      - run: one\n        run: two\n",
			want:  `mapping key "run" already defined at line 4`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.input)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), "Parse error: ")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadAllowsRepeatedMergeKeys(t *testing.T) {
	doc, err := Load(`base: &base
  runs-on: ubuntu-latest
extra: &extra
  if: always()
jobs:
  build:
    <<: *base
    <<: *extra
    steps:
      - run: make
`)
	require.NoError(t, err)
	require.Len(t, doc.Jobs, 1)
	assert.Equal(t, "make", doc.Jobs[0].Steps[0].Run)
}

func TestLoadRejectsMultipleDocuments(t *testing.T) {
	_, err := Load("jobs:\n  a:\n    steps:\n      - run: one\n---\njobs:\n  b:\n    steps:\n      - run: two\n")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "expected a single document in the stream")
}

func TestLoadAcceptsExplicitDocumentMarkers(t *testing.T) {
	doc, err := Load("---\njobs:\n  a:\n    steps:\n      - run: one\n...\n")
	require.NoError(t, err)
	require.Len(t, doc.Jobs, 1)
}
