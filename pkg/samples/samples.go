package samples

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed workflows/*.yaml
var files embed.FS

// Sample is an example GitHub Actions workflow.
type Sample struct {
	Name        string
	Description string
	file        string
}

var all = []Sample{
	{Name: "basic", Description: "Basic Node.js CI", file: "workflows/basic.yaml"},
	{Name: "intermediate", Description: "Intermediate Python Package CI", file: "workflows/intermediate.yaml"},
	{Name: "gnarly", Description: "Gnarly Monorepo CI/CD", file: "workflows/gnarly.yaml"},
}

// List returns the samples from simplest to most involved.
func List() []Sample {
	return append([]Sample(nil), all...)
}

// Names returns the sample names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Get returns the YAML content of the named sample.
func Get(name string) (string, error) {
	for _, s := range all {
		if s.Name == name {
			content, err := files.ReadFile(s.file)
			if err != nil {
				return "", err
			}
			return string(content), nil
		}
	}
	return "", fmt.Errorf("unknown sample %q (available: basic, intermediate, gnarly)", name)
}
