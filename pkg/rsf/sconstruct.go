package rsf

import (
	"fmt"
	"strings"

	"github.com/aretw0/rsflow/pkg/graph"
)

// SConstruct renders g as a Madagascar SConstruct script, one Flow call per
// artifact in declaration order.
func SConstruct(g *graph.Graph) string {
	var sb strings.Builder
	sb.WriteString("# Generated by rsflow. Do not edit.\n")
	sb.WriteString("from rsf.proj import *\n")

	for _, a := range g.Artifacts() {
		sb.WriteString("\n")
		if a.Description != "" {
			sb.WriteString("# " + a.Description + "\n")
		}

		sources := "None"
		if a.HasSources() {
			quoted := make([]string, len(a.Sources))
			for i, s := range a.Sources {
				quoted[i] = pyString(s)
			}
			sources = "[" + strings.Join(quoted, ", ") + "]"
		}

		fmt.Fprintf(&sb, "Flow(%s, %s, %s)\n", pyString(a.Name), sources, pyString(Command(a.Operation)))
	}

	sb.WriteString("\nEnd()\n")
	return sb.String()
}

func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
