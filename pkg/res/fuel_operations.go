package res

import (
	"time"

	"github.com/resmod/resnet/pkg/logging"
)

// AddFuel creates a directed fuel edge under the default "f" index prefix.
func (g *Graph) AddFuel(from, to, label, fuelType string) (*Fuel, error) {
	return g.AddFuelWithIndex(from, to, label, fuelType, DefaultFuelIndex)
}

// AddFuelWithIndex creates a directed fuel edge from one technology to
// another. Endpoints resolve by generated identifier first, then by label.
// If either endpoint is missing the insert is rejected atomically with a
// reference error and the edge set is left unchanged.
func (g *Graph) AddFuelWithIndex(from, to, label, fuelType, index string) (*Fuel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fromTech, err := g.resolveLocked(from)
	if err != nil {
		g.metrics.ObserveOperation("add_fuel", "error")
		return nil, endpointNotFoundError("add_fuel", from)
	}
	toTech, err := g.resolveLocked(to)
	if err != nil {
		g.metrics.ObserveOperation("add_fuel", "error")
		return nil, endpointNotFoundError("add_fuel", to)
	}

	id := g.nextID(index)
	fuel := &Fuel{
		ID:        id,
		From:      fromTech.ID,
		To:        toTech.ID,
		Label:     label,
		Type:      fuelType,
		Index:     index,
		Params:    g.lookupParams(index),
		Variables: g.lookupVariables(index),
		CreatedAt: time.Now().Unix(),
	}

	g.fuels[id] = fuel
	g.fuelOrder = append(g.fuelOrder, id)
	g.outgoing[fromTech.ID] = append(g.outgoing[fromTech.ID], id)
	g.incoming[toTech.ID] = append(g.incoming[toTech.ID], id)

	g.metrics.ObserveOperation("add_fuel", "ok")
	g.metrics.SetGraphSize(len(g.technologies), len(g.fuels))
	g.log.Debug("fuel added",
		logging.FuelID(id),
		logging.Label(label),
		logging.String("from", fromTech.ID),
		logging.String("to", toTech.ID),
		logging.Index(index),
	)

	return fuel.Clone(), nil
}

// GetFuel retrieves a fuel edge by generated identifier.
func (g *Graph) GetFuel(id string) (*Fuel, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fuel, ok := g.fuels[id]
	if !ok {
		return nil, fuelNotFoundError("get", id)
	}
	return fuel.Clone(), nil
}

// Fuels returns all fuel edges in insertion order.
func (g *Graph) Fuels() []*Fuel {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fuels := make([]*Fuel, 0, len(g.fuelOrder))
	for _, id := range g.fuelOrder {
		fuels = append(fuels, g.fuels[id].Clone())
	}
	return fuels
}

// OutFuels returns the fuel edges leaving the technology, in insertion order.
func (g *Graph) OutFuels(ref string) ([]*Fuel, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	tech, err := g.resolveLocked(ref)
	if err != nil {
		return nil, technologyNotFoundError("out_fuels", ref)
	}

	fuels := make([]*Fuel, 0, len(g.outgoing[tech.ID]))
	for _, id := range g.outgoing[tech.ID] {
		fuels = append(fuels, g.fuels[id].Clone())
	}
	return fuels, nil
}

// InFuels returns the fuel edges entering the technology, in insertion order.
func (g *Graph) InFuels(ref string) ([]*Fuel, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	tech, err := g.resolveLocked(ref)
	if err != nil {
		return nil, technologyNotFoundError("in_fuels", ref)
	}

	fuels := make([]*Fuel, 0, len(g.incoming[tech.ID]))
	for _, id := range g.incoming[tech.ID] {
		fuels = append(fuels, g.fuels[id].Clone())
	}
	return fuels, nil
}
