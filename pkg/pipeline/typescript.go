package pipeline

import (
	"fmt"
	"strings"
)

type typescriptSyntax struct{}

func (typescriptSyntax) preamble(b *strings.Builder, p *Plan) {
	b.WriteString("import { connect } from \"@dagger.io/dagger\";\n\n")
	b.WriteString("(async function main() {\n")
	b.WriteString("  try {\n")
	b.WriteString("    const client = await connect();\n")
	b.WriteString("    let container = client\n")
	b.WriteString("      .container()\n")
	fmt.Fprintf(b, "      .from(\"%s\")\n", p.BaseImage)
	fmt.Fprintf(b, "      .withMountedDirectory(\"%s\", client.host().directory(\".\"))\n", p.Workdir)
	fmt.Fprintf(b, "      .withWorkdir(\"%s\");\n", p.Workdir)
}

func (typescriptSyntax) exec(b *strings.Builder, command string) {
	fmt.Fprintf(b, "    container = container.withExec([\"sh\", \"-c\", \"%s\"]);\n", command)
}

func (typescriptSyntax) comment(b *strings.Builder, text string) {
	fmt.Fprintf(b, "    // %s\n", text)
}

func (typescriptSyntax) epilogue(b *strings.Builder) {
	b.WriteString("    const out = await container.stdout();\n")
	b.WriteString("    console.log(out);\n")
	b.WriteString("  } catch (err) {\n")
	b.WriteString("    console.error(\"Pipeline failed:\", err);\n")
	b.WriteString("  }\n")
	b.WriteString("})();\n")
}
