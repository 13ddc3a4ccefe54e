package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rsflow/pkg/graph"
	"github.com/aretw0/rsflow/pkg/rsf"
)

// Summary describes the recipe as markdown: inputs, levels and one table row per artifact.
func Summary(g *graph.Graph) string {
	var sb strings.Builder

	sb.WriteString("# Recipe\n\n")
	sb.WriteString(fmt.Sprintf("%d artifacts in %d levels.\n\n", g.Len(), len(g.Levels())))

	if ext := g.External(); len(ext) > 0 {
		sb.WriteString("## Inputs\n\n")
		for _, name := range ext {
			sb.WriteString(fmt.Sprintf("- `%s`\n", name))
		}
		sb.WriteString("\n")
	}

	if sinks := g.Sinks(); len(sinks) > 0 {
		sb.WriteString("## Outputs\n\n")
		for _, name := range sinks {
			sb.WriteString(fmt.Sprintf("- `%s`\n", name))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Artifacts\n\n")
	sb.WriteString("| Level | Artifact | Sources | Command |\n")
	sb.WriteString("|---|---|---|---|\n")
	for level, names := range g.Levels() {
		for _, name := range names {
			a, _ := g.Artifact(name)
			sources := "-"
			if a.HasSources() {
				sources = strings.Join(a.Sources, ", ")
			}
			label := name
			if a.Description != "" {
				label = fmt.Sprintf("%s (%s)", name, a.Description)
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | `%s` |\n",
				level, escapeCell(label), escapeCell(sources), escapeCell(rsf.Command(a.Operation))))
		}
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
