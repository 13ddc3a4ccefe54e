package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rsflow/pkg/graph"
)

// GraphOverlay contains build state to visualize on the graph.
type GraphOverlay struct {
	Built   []string
	Skipped []string
	Failed  string
}

// GenerateMermaid produces a Mermaid flowchart of the recipe.
// It applies semantic styling:
// - External input: [/Parallelogram/]
// - Generator (no sources): ((Circle))
// - Final artifact (nothing depends on it): ([Stadium])
// - Default: [Rectangle]
// Edges from a multi-source artifact carry the source position.
func GenerateMermaid(g *graph.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, name := range g.External() {
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", sanitizeMermaidID(name), name))
	}

	sinks := make(map[string]bool)
	for _, name := range g.Sinks() {
		sinks[name] = true
	}

	for _, a := range g.Artifacts() {
		safeID := sanitizeMermaidID(a.Name)

		opener, closer := "[", "]"
		switch {
		case !a.HasSources():
			opener, closer = "((", "))"
		case sinks[a.Name]:
			opener, closer = "([", "])"
		}

		programs := strings.Join(a.Operation.Programs(), " | ")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> <i>%s</i>\"%s\n", safeID, opener, a.Name, programs, closer))

		for i, src := range a.Sources {
			arrow := "-->"
			if len(a.Sources) > 1 {
				arrow = fmt.Sprintf("-- %d -->", i)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(src), arrow, safeID))
		}
	}

	if len(g.External()) > 0 {
		sb.WriteString("    classDef external fill:#eceff1,stroke:#607d8b,stroke-dasharray:4 2,color:#000;\n")
		for _, name := range g.External() {
			sb.WriteString(fmt.Sprintf("    class %s external;\n", sanitizeMermaidID(name)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef built fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef skipped fill:#e1f5fe,stroke:#01579b,stroke-width:1px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:4px,color:#000;\n")

		writeClass(&sb, overlay.Built, "built")
		writeClass(&sb, overlay.Skipped, "skipped")
		if overlay.Failed != "" {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", sanitizeMermaidID(overlay.Failed)))
		}
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, names []string, class string) {
	seen := make(map[string]bool)
	for _, name := range names {
		safeID := sanitizeMermaidID(name)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
		}
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
