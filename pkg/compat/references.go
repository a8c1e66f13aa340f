package compat

import (
	"regexp"
	"sort"
)

var (
	secretRegex   = regexp.MustCompile(`\$\{\{\s*secrets\.([A-Za-z_][A-Za-z0-9_]*)\s*[}\s|]`)
	variableRegex = regexp.MustCompile(`\$\{\{\s*vars\.([A-Za-z_][A-Za-z0-9_]*)\s*[}\s|]`)
)

// DetectSecrets scans raw workflow text for ${{ secrets.X }} references.
func DetectSecrets(content string) []string {
	return detectMatches(content, secretRegex)
}

// DetectVariables scans raw workflow text for ${{ vars.X }} references.
func DetectVariables(content string) []string {
	return detectMatches(content, variableRegex)
}

func detectMatches(content string, re *regexp.Regexp) []string {
	matches := re.FindAllStringSubmatch(content, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			values = append(values, m[1])
		}
	}

	return dedupeSorted(values)
}

func dedupeSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			seen[v] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for v := range seen {
		result = append(result, v)
	}

	sort.Strings(result)
	return result
}
