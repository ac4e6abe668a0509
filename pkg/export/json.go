package export

import (
	"encoding/json"

	"github.com/resmod/resnet/pkg/res"
)

// Document is the JSON interchange shape of a RES structure graph
type Document struct {
	GraphID string                     `json:"graphId"`
	Nodes   []Node                     `json:"nodes"`
	Edges   []Edge                     `json:"edges"`
	Sets    map[string][]res.SetMember `json:"sets,omitempty"`
}

// Node is one technology in the interchange document
type Node struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	Type      string         `json:"type"`
	Layer     int            `json:"layer"`
	Index     string         `json:"index"`
	Params    map[string]any `json:"params,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Edge is one fuel flow in the interchange document
type Edge struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// JSON encodes the graph as an indented interchange document
func JSON(g *res.Graph) ([]byte, error) {
	doc := Document{
		GraphID: g.ID(),
		Nodes:   make([]Node, 0, g.Order()),
		Edges:   make([]Edge, 0, g.Size()),
	}

	for _, tech := range g.Technologies() {
		doc.Nodes = append(doc.Nodes, Node{
			ID:        tech.ID,
			Label:     tech.Label,
			Type:      tech.Type,
			Layer:     tech.Layer,
			Index:     tech.Index,
			Params:    tech.Params,
			Variables: tech.Variables,
		})
	}

	for _, fuel := range g.Fuels() {
		doc.Edges = append(doc.Edges, Edge{
			ID:    fuel.ID,
			From:  fuel.From,
			To:    fuel.To,
			Label: fuel.Label,
			Type:  fuel.Type,
		})
	}

	if sets := g.Sets(); len(sets) > 0 {
		doc.Sets = sets
	}

	return json.MarshalIndent(doc, "", "  ")
}
