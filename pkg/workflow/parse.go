package workflow

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a workflow document. Malformed YAML, a duplicated mapping key
// or a second document in the stream yields a *ParseError; a document without
// a jobs mapping yields ErrNoJobs.
func Load(text string) (*Document, error) {
	root, err := decodeSingle(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	top := resolve(root)
	if top != nil && top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrNoJobs
		}
		top = resolve(top.Content[0])
	}
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, ErrNoJobs
	}

	jobsNode := lookup(top, "jobs")
	if jobsNode == nil || jobsNode.Kind != yaml.MappingNode {
		return nil, ErrNoJobs
	}

	doc := &Document{Source: text}
	if name := lookup(top, "name"); name != nil && name.Kind == yaml.ScalarNode {
		doc.Name = name.Value
	}

	pairs(jobsNode, func(key string, value *yaml.Node) {
		doc.Jobs = append(doc.Jobs, decodeJob(key, value))
	})

	return doc, nil
}

// decodeSingle decodes exactly one document. Decoding into a yaml.Node keeps
// duplicate keys and stops after the first document, so both are checked here.
func decodeSingle(text string) (*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, fmt.Errorf("yaml: line %d: expected a single document in the stream, but found more", extra.Line)
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	if err := checkDuplicateKeys(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func checkDuplicateKeys(node *yaml.Node) error {
	if node == nil || node.Kind == yaml.AliasNode {
		return nil
	}

	if node.Kind == yaml.MappingNode {
		seen := make(map[string]int, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode || key.Tag == "!!merge" {
				continue
			}
			if line, ok := seen[key.Value]; ok {
				return fmt.Errorf("yaml: line %d: mapping key %q already defined at line %d", key.Line, key.Value, line)
			}
			seen[key.Value] = key.Line
		}
	}

	for _, child := range node.Content {
		if err := checkDuplicateKeys(child); err != nil {
			return err
		}
	}
	return nil
}

func decodeJob(name string, node *yaml.Node) Job {
	job := Job{Name: name, Steps: extractSteps(node)}
	if node == nil || node.Kind != yaml.MappingNode {
		return job
	}

	job.Needs = stringList(lookup(node, "needs"))
	job.If = scalar(lookup(node, "if"))
	job.RunsOn = strings.Join(stringList(lookup(node, "runs-on")), ",")
	job.UsesReusable = scalar(lookup(node, "uses"))
	job.HasContainer = present(lookup(node, "container"))
	job.HasEnv = present(lookup(node, "env"))

	if services := lookup(node, "services"); services != nil && services.Kind == yaml.MappingNode {
		job.HasServices = len(services.Content) > 0
	}
	if strategy := lookup(node, "strategy"); strategy != nil && strategy.Kind == yaml.MappingNode {
		job.HasMatrix = present(lookup(strategy, "matrix"))
	}

	return job
}

func extractSteps(job *yaml.Node) []Step {
	if job == nil || job.Kind != yaml.MappingNode {
		return nil
	}

	seq := lookup(job, "steps")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}

	steps := make([]Step, 0, len(seq.Content))
	for _, item := range seq.Content {
		steps = append(steps, decodeStep(resolve(item)))
	}
	return steps
}

// decodeStep never fails: anything that is not a mapping becomes a step with
// neither run nor uses, which the emitter skips.
func decodeStep(node *yaml.Node) Step {
	step := Step{Node: node}
	if node == nil || node.Kind != yaml.MappingNode {
		return step
	}

	step.Name = scalar(lookup(node, "name"))
	step.Run = scalar(lookup(node, "run"))
	step.Uses = scalar(lookup(node, "uses"))
	step.If = scalar(lookup(node, "if"))
	step.HasEnv = present(lookup(node, "env"))

	if with := lookup(node, "with"); with != nil && with.Kind == yaml.MappingNode {
		pairs(with, func(key string, value *yaml.Node) {
			step.With = append(step.With, Param{Key: key, Value: scalar(value)})
		})
	}

	return step
}

func cutRef(uses string) (string, string, bool) {
	return strings.Cut(uses, "@")
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

func pairs(mapping *yaml.Node, fn func(key string, value *yaml.Node)) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		fn(mapping.Content[i].Value, resolve(mapping.Content[i+1]))
	}
}

// stringList accepts either a single scalar or a sequence of scalars.
func stringList(node *yaml.Node) []string {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if v := scalar(node); v != "" {
			return []string{v}
		}
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if v := scalar(resolve(item)); v != "" {
				values = append(values, v)
			}
		}
		return values
	}
	return nil
}

func present(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	return !(node.Kind == yaml.ScalarNode && (node.Tag == "!!null" || node.Value == ""))
}

// scalar returns the literal text of a scalar node. Null scalars and
// non-scalar nodes read as empty.
func scalar(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}
