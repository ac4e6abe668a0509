// Package export encodes a RES structure graph for downstream visualization
// and analysis tooling. Rendering and layout stay with those tools; this
// package only produces interchange documents.
package export

import (
	"fmt"
	"strings"

	"github.com/resmod/resnet/pkg/res"
)

// DOT encodes the graph in Graphviz DOT format. Technologies on the same
// layer share a rank so layered renderers reproduce the energy chain from
// supply to demand.
func DOT(g *res.Graph) string {
	var b strings.Builder
	b.WriteString("digraph RES {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [shape=box];\n")

	byLayer, layers := g.Layers()
	for _, layer := range layers {
		b.WriteString("\t{ rank=same;")
		for _, tech := range byLayer[layer] {
			fmt.Fprintf(&b, " %q;", tech.ID)
		}
		b.WriteString(" }\n")
	}

	for _, tech := range g.Technologies() {
		fmt.Fprintf(&b, "\t%q [label=\"%s\", layer=%d];\n",
			tech.ID, escape(tech.Label), tech.Layer)
	}

	for _, fuel := range g.Fuels() {
		fmt.Fprintf(&b, "\t%q -> %q [label=\"%s\"];\n",
			fuel.From, fuel.To, escape(fuel.Label))
	}

	b.WriteString("}\n")
	return b.String()
}

// dotEscaper rewrites characters that would break a double-quoted DOT
// string. Backslash must go first so escapes are not themselves escaped.
var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
)

func escape(s string) string {
	return dotEscaper.Replace(s)
}
