package pipeline

import (
	"strings"

	"github.com/depot/shredder/pkg/workflow"
)

// syntax renders a Plan in one target language.
type syntax interface {
	preamble(b *strings.Builder, p *Plan)
	exec(b *strings.Builder, command string)
	comment(b *strings.Builder, text string)
	epilogue(b *strings.Builder)
}

// formatter is implemented by syntaxes that can normalize their output.
type formatter interface {
	format(src string) string
}

func syntaxFor(lang Language) syntax {
	switch lang {
	case Python:
		return pythonSyntax{}
	case TypeScript:
		return typescriptSyntax{}
	default:
		return goSyntax{}
	}
}

// Emit translates a normalized step sequence into Dagger source code. It
// never fails; unknown languages render as DefaultLanguage.
func Emit(steps []workflow.Step, lang Language) string {
	return Render(NewPlan(steps), lang)
}

// Render writes a Plan in the given language.
func Render(p *Plan, lang Language) string {
	s := syntaxFor(lang)

	var b strings.Builder
	s.preamble(&b, p)
	for _, op := range p.Ops {
		switch op.Kind {
		case OpExec:
			s.exec(&b, op.Text)
		case OpPlaceholder:
			s.comment(&b, op.Text)
		}
	}
	s.epilogue(&b)

	src := b.String()
	if f, ok := s.(formatter); ok {
		src = f.format(src)
	}
	return src
}
