package pipeline

import (
	"fmt"
	"go/format"
	"strings"
)

type goSyntax struct{}

func (goSyntax) preamble(b *strings.Builder, p *Plan) {
	b.WriteString("package main\n\n")
	b.WriteString("import (\n\t\"context\"\n\t\"fmt\"\n\t\"log\"\n\n\t\"dagger.io/dagger\"\n)\n\n")
	b.WriteString("func main() {\n")
	b.WriteString("\tctx := context.Background()\n")
	b.WriteString("\tclient, err := dagger.Connect(ctx)\n")
	b.WriteString("\tif err != nil {\n\t\tlog.Fatalf(\"failed to connect to Dagger: %v\", err)\n\t}\n")
	b.WriteString("\tdefer client.Close()\n\n")
	fmt.Fprintf(b, "\tcontainer := client.Container().From(\"%s\").\n", p.BaseImage)
	fmt.Fprintf(b, "\t\tWithMountedDirectory(\"%s\", client.Host().Directory(\".\")).\n", p.Workdir)
	fmt.Fprintf(b, "\t\tWithWorkdir(\"%s\")\n", p.Workdir)
}

func (goSyntax) exec(b *strings.Builder, command string) {
	fmt.Fprintf(b, "\tcontainer = container.WithExec([]string{\"sh\", \"-c\", \"%s\"})\n", command)
}

func (goSyntax) comment(b *strings.Builder, text string) {
	fmt.Fprintf(b, "\t// %s\n", text)
}

func (goSyntax) epilogue(b *strings.Builder) {
	b.WriteString("\n\tout, err := container.Stdout(ctx)\n")
	b.WriteString("\tif err != nil {\n\t\tlog.Fatalf(\"pipeline failed: %v\", err)\n\t}\n")
	b.WriteString("\tfmt.Println(out)\n}\n")
}

// format runs gofmt over the generated file. Commands that break the string
// literal leave the source unparseable, in which case it is returned as is.
func (goSyntax) format(src string) string {
	out, err := format.Source([]byte(src))
	if err != nil {
		return src
	}
	return string(out)
}
