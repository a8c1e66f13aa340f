package pipeline

import (
	"fmt"
	"strings"
)

// Language selects the Dagger SDK the generated code targets.
type Language string

const (
	Go         Language = "go"
	Python     Language = "python"
	TypeScript Language = "typescript"
)

// DefaultLanguage is used when no language, or an unknown one, is given.
const DefaultLanguage = Go

var aliases = map[string]Language{
	"go":         Go,
	"golang":     Go,
	"python":     Python,
	"py":         Python,
	"typescript": TypeScript,
	"ts":         TypeScript,
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{Go, TypeScript, Python}
}

// ParseLanguage resolves a user supplied language name or alias.
func ParseLanguage(name string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultLanguage, nil
	}
	if lang, ok := aliases[key]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("unsupported language %q (expected one of go, python, typescript)", name)
}

func (l Language) String() string {
	return string(l)
}

// Title is the human readable language name.
func (l Language) Title() string {
	switch l {
	case Python:
		return "Python"
	case TypeScript:
		return "TypeScript"
	default:
		return "Go"
	}
}

// Extension is the source file extension for generated code.
func (l Language) Extension() string {
	switch l {
	case Python:
		return ".py"
	case TypeScript:
		return ".ts"
	default:
		return ".go"
	}
}

// DocsURL links to the Dagger SDK documentation for the language.
func (l Language) DocsURL() string {
	switch l {
	case Python:
		return "https://docs.dagger.io/sdk/python/"
	case TypeScript:
		return "https://docs.dagger.io/sdk/typescript/"
	default:
		return "https://docs.dagger.io/sdk/go/"
	}
}
