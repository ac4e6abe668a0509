// Package res models the network structure of a Reference Energy System: a
// directed graph of technologies (nodes) and fuel flows (edges), backed by an
// independently loaded structure description used for parameter and variable
// lookup.
package res

// Technology is a node in the RES graph: an abstract component that uses
// fuel, supplies it, or converts it from one kind to another. A technology
// may stand for a single plant or a heavily aggregated stock.
type Technology struct {
	// ID is the generated identifier, <index prefix><counter>
	ID string `json:"id"`
	// Label is the acronym following the naming convention (e.g. PWRHYD)
	Label string `json:"label"`
	// Type is the verbose classification of the label
	Type string `json:"type"`
	// Layer is the technology's position in the energy conversion chain
	Layer int `json:"layer"`
	// Index is the prefix the identifier was generated under
	Index     string         `json:"index"`
	Params    map[string]any `json:"params,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
	CreatedAt int64          `json:"createdAt"`
}

// Fuel is a directed edge in the RES graph: a commodity or energy flow from
// one technology to another.
type Fuel struct {
	// ID is the generated identifier, <index prefix><counter>
	ID string `json:"id"`
	// From and To hold the generated identifiers of the endpoint technologies
	From string `json:"from"`
	To   string `json:"to"`
	// Label is the commodity acronym (e.g. ELC001)
	Label string `json:"label"`
	// Type is the verbose classification of the label
	Type string `json:"type"`
	// Index is the prefix the identifier was generated under
	Index     string         `json:"index"`
	Params    map[string]any `json:"params,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
	CreatedAt int64          `json:"createdAt"`
}

// SetMember is one registered member of an index set (a region, a year, a
// season, ...). Set members are graph-level metadata, not nodes.
type SetMember struct {
	// ID is the generated identifier, <index prefix><counter>
	ID string `json:"id"`
	// Name is the caller-supplied member name
	Name string `json:"name"`
}

// Clone creates a deep copy of a technology
func (t *Technology) Clone() *Technology {
	clone := *t
	clone.Params = cloneAttrs(t.Params)
	clone.Variables = cloneAttrs(t.Variables)
	return &clone
}

// GetParam gets an attached parameter value
func (t *Technology) GetParam(name string) (any, bool) {
	v, ok := t.Params[name]
	return v, ok
}

// GetVariable gets an attached variable value
func (t *Technology) GetVariable(name string) (any, bool) {
	v, ok := t.Variables[name]
	return v, ok
}

// Clone creates a deep copy of a fuel
func (f *Fuel) Clone() *Fuel {
	clone := *f
	clone.Params = cloneAttrs(f.Params)
	clone.Variables = cloneAttrs(f.Variables)
	return &clone
}

// GetParam gets an attached parameter value
func (f *Fuel) GetParam(name string) (any, bool) {
	v, ok := f.Params[name]
	return v, ok
}

// GetVariable gets an attached variable value
func (f *Fuel) GetVariable(name string) (any, bool) {
	v, ok := f.Variables[name]
	return v, ok
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	clone := make(map[string]any, len(attrs))
	for k, v := range attrs {
		clone[k] = v
	}
	return clone
}
