package res

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	"github.com/golang/snappy"

	"github.com/resmod/resnet/pkg/logging"
)

// Snapshot file framing: magic, crc32 of the compressed payload, payload
// length, snappy-compressed JSON document.
var snapshotMagic = []byte("RESSNAP1")

const snapshotHeaderSize = 8 + 4 + 4

type snapshotDoc struct {
	GraphID      string                 `json:"graphId"`
	SavedAt      int64                  `json:"savedAt"`
	Technologies []*Technology          `json:"technologies"`
	Fuels        []*Fuel                `json:"fuels"`
	Sets         map[string][]SetMember `json:"sets,omitempty"`
	Counters     map[string]uint64      `json:"counters"`
}

// SaveSnapshot writes the graph's technologies, fuels, sets and identifier
// counters to a checksummed, snappy-compressed file. The write goes through a
// temp file and rename so a crash never leaves a torn snapshot behind.
func (g *Graph) SaveSnapshot(path string) error {
	g.mu.RLock()
	doc := snapshotDoc{
		GraphID:      g.id,
		SavedAt:      time.Now().Unix(),
		Technologies: make([]*Technology, 0, len(g.techOrder)),
		Fuels:        make([]*Fuel, 0, len(g.fuelOrder)),
		Sets:         make(map[string][]SetMember, len(g.sets)),
		Counters:     make(map[string]uint64, len(g.counters)),
	}
	for _, id := range g.techOrder {
		doc.Technologies = append(doc.Technologies, g.technologies[id])
	}
	for _, id := range g.fuelOrder {
		doc.Fuels = append(doc.Fuels, g.fuels[id])
	}
	for kind, members := range g.sets {
		doc.Sets[kind] = members
	}
	for prefix, n := range g.counters {
		doc.Counters[prefix] = n
	}
	g.mu.RUnlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	compressed := snappy.Encode(nil, data)
	buf := make([]byte, snapshotHeaderSize+len(compressed))
	copy(buf[0:8], snapshotMagic)
	binary.LittleEndian.PutUint32(buf[8:12], crc32.ChecksumIEEE(compressed))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(compressed)))
	copy(buf[snapshotHeaderSize:], compressed)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename snapshot: %w", err)
	}

	g.log.Info("snapshot saved",
		logging.Path(path),
		logging.Count(len(doc.Technologies)+len(doc.Fuels)),
	)
	return nil
}

// LoadSnapshot rebuilds a graph from a snapshot file. Options apply as in
// New; a configured skeleton source is loaded so lookups work immediately.
// Counter state is restored, so identifiers are never reused across a
// save/load cycle.
func LoadSnapshot(ctx context.Context, path string, opts ...Option) (*Graph, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	doc, err := decodeSnapshot(buf)
	if err != nil {
		return nil, err
	}

	g, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	for _, tech := range doc.Technologies {
		g.technologies[tech.ID] = tech
		g.techOrder = append(g.techOrder, tech.ID)
		if tech.Label != "" {
			g.byLabel[tech.Label] = tech.ID
		}
		g.outgoing[tech.ID] = make([]string, 0)
		g.incoming[tech.ID] = make([]string, 0)
	}
	for _, fuel := range doc.Fuels {
		g.fuels[fuel.ID] = fuel
		g.fuelOrder = append(g.fuelOrder, fuel.ID)
		g.outgoing[fuel.From] = append(g.outgoing[fuel.From], fuel.ID)
		g.incoming[fuel.To] = append(g.incoming[fuel.To], fuel.ID)
	}
	for kind, members := range doc.Sets {
		g.sets[kind] = members
		g.metrics.SetSetSize(kind, len(members))
	}
	for prefix, n := range doc.Counters {
		g.counters[prefix] = n
	}
	g.metrics.SetGraphSize(len(g.technologies), len(g.fuels))
	g.mu.Unlock()

	g.log.Info("snapshot loaded",
		logging.Path(path),
		logging.Count(len(doc.Technologies)+len(doc.Fuels)),
	)
	return g, nil
}

func decodeSnapshot(buf []byte) (*snapshotDoc, error) {
	if len(buf) < snapshotHeaderSize {
		return nil, fmt.Errorf("%w: truncated header", ErrSnapshotCorrupt)
	}
	if string(buf[0:8]) != string(snapshotMagic) {
		return nil, fmt.Errorf("%w: bad magic", ErrSnapshotCorrupt)
	}

	checksum := binary.LittleEndian.Uint32(buf[8:12])
	length := binary.LittleEndian.Uint32(buf[12:16])
	payload := buf[snapshotHeaderSize:]
	if uint32(len(payload)) != length {
		return nil, fmt.Errorf("%w: expected %d payload bytes, got %d",
			ErrSnapshotCorrupt, length, len(payload))
	}
	if crc32.ChecksumIEEE(payload) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotCorrupt)
	}

	data, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return &doc, nil
}
