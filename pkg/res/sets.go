package res

import (
	"github.com/resmod/resnet/pkg/logging"
)

// Index set kinds. Each registers model dimensions beyond technologies and
// fuels, under its conventional index prefix.
const (
	SetRegion           = "region"
	SetEmission         = "emission"
	SetYear             = "year"
	SetTimeslice        = "timeslice"
	SetModeOfOperation  = "mode_of_operation"
	SetSeason           = "season"
	SetDayType          = "day_type"
	SetDailyTimeBracket = "daily_time_bracket"
	SetStorage          = "storage"
)

// AddRegion registers a region to be modeled.
func (g *Graph) AddRegion(name string) string {
	return g.addSetMember(SetRegion, "r", name)
}

// AddEmission registers an emission attributable to technologies.
func (g *Graph) AddEmission(name string) string {
	return g.addSetMember(SetEmission, "e", name)
}

// AddYear registers a year of the model time frame.
func (g *Graph) AddYear(name string) string {
	return g.addSetMember(SetYear, "y", name)
}

// AddTimeslice registers a time split of each modeled year.
func (g *Graph) AddTimeslice(name string) string {
	return g.addSetMember(SetTimeslice, "l", name)
}

// AddModeOfOperation registers an operating mode technologies can have.
func (g *Graph) AddModeOfOperation(name string) string {
	return g.addSetMember(SetModeOfOperation, "m", name)
}

// AddSeason registers a season.
func (g *Graph) AddSeason(name string) string {
	return g.addSetMember(SetSeason, "ls", name)
}

// AddDayType registers a day type.
func (g *Graph) AddDayType(name string) string {
	return g.addSetMember(SetDayType, "ld", name)
}

// AddDailyTimeBracket registers a part the day is split into.
func (g *Graph) AddDailyTimeBracket(name string) string {
	return g.addSetMember(SetDailyTimeBracket, "lh", name)
}

// AddStorage registers a storage facility. Storage is modeled apart from
// conversion technologies.
func (g *Graph) AddStorage(name string) string {
	return g.addSetMember(SetStorage, "s", name)
}

// addSetMember registers a member under the set kind, generating its
// identifier from the same per-prefix counter table the node and edge
// identifiers come from.
func (g *Graph) addSetMember(kind, index, name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID(index)
	g.sets[kind] = append(g.sets[kind], SetMember{ID: id, Name: name})

	g.metrics.ObserveOperation("add_set_member", "ok")
	g.metrics.SetSetSize(kind, len(g.sets[kind]))
	g.log.Debug("set member added",
		logging.String("set", kind),
		logging.String("member_id", id),
		logging.String("name", name),
	)

	return id
}

// Set returns the registered members of one index set, in registration order.
func (g *Graph) Set(kind string) []SetMember {
	g.mu.RLock()
	defer g.mu.RUnlock()

	members := make([]SetMember, len(g.sets[kind]))
	copy(members, g.sets[kind])
	return members
}

// Sets returns all index sets with registered members.
func (g *Graph) Sets() map[string][]SetMember {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sets := make(map[string][]SetMember, len(g.sets))
	for kind, members := range g.sets {
		copied := make([]SetMember, len(members))
		copy(copied, members)
		sets[kind] = copied
	}
	return sets
}
