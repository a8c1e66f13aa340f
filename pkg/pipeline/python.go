package pipeline

import (
	"fmt"
	"strings"
)

type pythonSyntax struct{}

func (pythonSyntax) preamble(b *strings.Builder, p *Plan) {
	b.WriteString("import asyncio\n\nimport dagger\n\n\n")
	b.WriteString("async def main():\n")
	b.WriteString("    try:\n")
	b.WriteString("        async with dagger.Connection() as client:\n")
	b.WriteString("            container = (\n")
	b.WriteString("                client.container()\n")
	fmt.Fprintf(b, "                .from_(\"%s\")\n", p.BaseImage)
	fmt.Fprintf(b, "                .with_mounted_directory(\"%s\", client.host().directory(\".\"))\n", p.Workdir)
	fmt.Fprintf(b, "                .with_workdir(\"%s\")\n", p.Workdir)
}

func (pythonSyntax) exec(b *strings.Builder, command string) {
	fmt.Fprintf(b, "                .with_exec([\"sh\", \"-c\", \"%s\"])\n", command)
}

func (pythonSyntax) comment(b *strings.Builder, text string) {
	fmt.Fprintf(b, "                # %s\n", text)
}

func (pythonSyntax) epilogue(b *strings.Builder) {
	b.WriteString("            )\n")
	b.WriteString("            out = await container.stdout()\n")
	b.WriteString("            print(out)\n")
	b.WriteString("    except Exception as e:\n")
	b.WriteString("        print(f\"Pipeline failed: {e}\")\n\n\n")
	b.WriteString("asyncio.run(main())\n")
}
