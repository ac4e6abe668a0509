package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/resmod/resnet/pkg/logging"
	"github.com/resmod/resnet/pkg/res"
)

func newExportGraph(t *testing.T) *res.Graph {
	t.Helper()
	g, err := res.New(context.Background(), res.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("Failed to create graph: %v", err)
	}

	if _, err := g.AddTechnology("PWRHYD", "Hydroelectric Power Plant", 0); err != nil {
		t.Fatalf("Failed to add technology: %v", err)
	}
	if _, err := g.AddTechnology("PWRTRN", "Transmission of Electricity", 1); err != nil {
		t.Fatalf("Failed to add technology: %v", err)
	}
	if _, err := g.AddFuel("PWRHYD", "PWRTRN", "ELC001", "Electricity before Transmission"); err != nil {
		t.Fatalf("Failed to add fuel: %v", err)
	}
	return g
}

func TestDOT(t *testing.T) {
	g := newExportGraph(t)

	dot := DOT(g)

	for _, want := range []string{
		"digraph RES {",
		`"t1" [label="PWRHYD", layer=0];`,
		`"t2" [label="PWRTRN", layer=1];`,
		`"t1" -> "t2" [label="ELC001"];`,
		"rank=same",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestDOT_EscapesQuotes(t *testing.T) {
	g, err := res.New(context.Background(), res.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("Failed to create graph: %v", err)
	}
	g.AddTechnology(`PWR"X`, "Quoted", 0)

	dot := DOT(g)
	if !strings.Contains(dot, `label="PWR\"X"`) {
		t.Errorf("DOT output should escape quotes:\n%s", dot)
	}
}

func TestDOT_EscapesBackslashAndNewline(t *testing.T) {
	g, err := res.New(context.Background(), res.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("Failed to create graph: %v", err)
	}
	g.AddTechnology(`PWR\X`, "Backslashed", 0)
	g.AddTechnology("PWR\nY", "Multiline", 0)

	dot := DOT(g)
	if !strings.Contains(dot, `label="PWR\\X"`) {
		t.Errorf("DOT output should escape backslashes:\n%s", dot)
	}
	if !strings.Contains(dot, `label="PWR\nY"`) {
		t.Errorf("DOT output should escape newlines:\n%s", dot)
	}
}

func TestJSON(t *testing.T) {
	g := newExportGraph(t)
	g.AddRegion("UTOPIA")

	raw, err := JSON(g)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Encoded document does not round-trip: %v", err)
	}

	if doc.GraphID != g.ID() {
		t.Errorf("Expected graph ID %q, got %q", g.ID(), doc.GraphID)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("Expected 2 nodes and 1 edge, got %d and %d",
			len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[0].ID != "t1" || doc.Nodes[0].Label != "PWRHYD" {
		t.Errorf("Unexpected first node: %+v", doc.Nodes[0])
	}
	if doc.Edges[0].From != "t1" || doc.Edges[0].To != "t2" {
		t.Errorf("Unexpected edge endpoints: %+v", doc.Edges[0])
	}
	if len(doc.Sets["region"]) != 1 {
		t.Errorf("Expected one region in sets, got %+v", doc.Sets)
	}
}
