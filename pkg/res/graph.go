package res

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resmod/resnet/pkg/logging"
	"github.com/resmod/resnet/pkg/metrics"
	"github.com/resmod/resnet/pkg/skeleton"
)

// Default index prefixes for generated identifiers
const (
	DefaultTechnologyIndex = "t"
	DefaultFuelIndex       = "f"
)

// Graph is the RES structure graph: a directed graph of technologies and fuel
// flows, with per-prefix identifier counters and a cached structure
// description for parameter/variable lookup.
type Graph struct {
	mu sync.RWMutex

	id        string
	source    skeleton.Source
	structure *skeleton.Structure

	technologies map[string]*Technology
	fuels        map[string]*Fuel
	byLabel      map[string]string   // technology label -> generated ID
	outgoing     map[string][]string // technology ID -> fuel IDs
	incoming     map[string][]string // technology ID -> fuel IDs
	techOrder    []string            // insertion order, for deterministic iteration
	fuelOrder    []string
	sets         map[string][]SetMember
	counters     map[string]uint64 // per-prefix identifier counters

	log     logging.Logger
	metrics *metrics.Registry
}

// Option configures a Graph at construction time
type Option func(*Graph)

// WithSkeleton sets the structure description source. The structure is loaded
// at construction and on every ReloadStructure call.
func WithSkeleton(src skeleton.Source) Option {
	return func(g *Graph) {
		g.source = src
	}
}

// WithLogger sets the logger
func WithLogger(log logging.Logger) Option {
	return func(g *Graph) {
		g.log = log
	}
}

// WithMetrics sets the metrics registry. Without it metric calls are no-ops.
func WithMetrics(reg *metrics.Registry) Option {
	return func(g *Graph) {
		g.metrics = reg
	}
}

// New creates an empty RES graph. If a skeleton source is configured, the
// structure description is loaded before New returns; a missing document
// surfaces as skeleton.ErrNotFound, an unparseable one as
// skeleton.ErrMalformed.
func New(ctx context.Context, opts ...Option) (*Graph, error) {
	g := &Graph{
		id:           uuid.NewString(),
		technologies: make(map[string]*Technology),
		fuels:        make(map[string]*Fuel),
		byLabel:      make(map[string]string),
		outgoing:     make(map[string][]string),
		incoming:     make(map[string][]string),
		sets:         make(map[string][]SetMember),
		counters:     make(map[string]uint64),
		log:          logging.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logging.Component("res"), logging.GraphID(g.id))

	if g.source != nil {
		if err := g.reload(ctx); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ID returns the graph instance identifier
func (g *Graph) ID() string {
	return g.id
}

// ReloadStructure re-reads the structure description from its source and
// replaces the cached copy. Params/variables already attached to nodes and
// edges are deliberately left untouched; only subsequent lookups and
// insertions see the new document.
func (g *Graph) ReloadStructure(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reload(ctx)
}

// reload must be called with the write lock held (or before the graph is
// shared).
func (g *Graph) reload(ctx context.Context) error {
	if g.source == nil {
		return ErrNoSkeleton
	}

	start := time.Now()
	structure, err := skeleton.Load(ctx, g.source)
	if err != nil {
		g.metrics.ObserveSkeletonLoad("error", time.Since(start).Seconds())
		g.log.Error("structure load failed",
			logging.SourceLocation(g.source.Location()),
			logging.Error(err),
		)
		return fmt.Errorf("load structure: %w", err)
	}

	g.structure = structure
	g.metrics.ObserveSkeletonLoad("ok", time.Since(start).Seconds())
	g.log.Info("structure loaded",
		logging.SourceLocation(g.source.Location()),
		logging.Count(len(structure.Params)+len(structure.Variables)),
	)
	return nil
}

// Structure returns a copy of the cached structure description, or nil if
// none has been loaded.
func (g *Graph) Structure() *skeleton.Structure {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.structure == nil {
		return nil
	}
	return g.structure.Clone()
}

// GetParams returns the parameter mapping recorded under the index in the
// structure description's params section.
func (g *Graph) GetParams(index string) (map[string]any, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.structure == nil {
		return nil, indexNotFoundError("get_params", index)
	}
	attrs, err := g.structure.ParamsFor(index)
	if err != nil {
		return nil, indexNotFoundError("get_params", index)
	}
	return attrs, nil
}

// GetVariables returns the variable mapping recorded under the index in the
// structure description's variables section.
func (g *Graph) GetVariables(index string) (map[string]any, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.structure == nil {
		return nil, indexNotFoundError("get_variables", index)
	}
	attrs, err := g.structure.VariablesFor(index)
	if err != nil {
		return nil, indexNotFoundError("get_variables", index)
	}
	return attrs, nil
}

// nextID generates the next identifier under the prefix. Must be called with
// the write lock held. Identifiers count from 1 and are strictly increasing
// within a prefix for the lifetime of the instance.
func (g *Graph) nextID(prefix string) string {
	g.counters[prefix]++
	return fmt.Sprintf("%s%d", prefix, g.counters[prefix])
}

// lookupParams returns structure params for the index, or an empty map when
// the structure has no entry. Must be called with a lock held.
func (g *Graph) lookupParams(index string) map[string]any {
	if g.structure == nil {
		return map[string]any{}
	}
	attrs, err := g.structure.ParamsFor(index)
	if err != nil {
		return map[string]any{}
	}
	return attrs
}

// lookupVariables mirrors lookupParams for the variables section.
func (g *Graph) lookupVariables(index string) map[string]any {
	if g.structure == nil {
		return map[string]any{}
	}
	attrs, err := g.structure.VariablesFor(index)
	if err != nil {
		return map[string]any{}
	}
	return attrs
}

// Order returns the number of technologies
func (g *Graph) Order() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.technologies)
}

// Size returns the number of fuel edges
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.fuels)
}
