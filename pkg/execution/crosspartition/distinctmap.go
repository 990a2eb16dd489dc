package crosspartition

import (
	"encoding/json"
	"fmt"

	"storemy/pkg/execution/crosspartition/element"
)

// DistinctQueryType selects a DistinctMap variant (spec §4.2).
type DistinctQueryType int

const (
	// Unordered keeps every fingerprint seen so far in memory; exact but
	// memory-proportional-to-distinct-count.
	Unordered DistinctQueryType = iota
	// Ordered relies on upstream emitting documents sorted by the
	// distinct key and only remembers the last fingerprint seen.
	Ordered
)

func (t DistinctQueryType) String() string {
	switch t {
	case Unordered:
		return "Unordered"
	case Ordered:
		return "Ordered"
	default:
		return "Unknown"
	}
}

// DistinctMap tracks which documents have already been emitted by a
// Distinct stage (spec §4.2).
type DistinctMap interface {
	// Add returns admitted=true the first time a canonically-equivalent
	// element is seen, and false on every subsequent occurrence.
	Add(e element.Element) (admitted bool, fingerprint element.UInt128)

	// GetCursor serializes the map's current state for resumption.
	GetCursor() (string, error)
}

// NewDistinctMap builds a fresh DistinctMap of the given variant, or
// restores one from a previously-serialized cursor when cursor is
// non-nil and non-empty. cfg.DistinctMapSnapshotBudget, if set, bounds
// how many fingerprints an Unordered map's GetCursor will serialize.
func NewDistinctMap(queryType DistinctQueryType, cursor *string, cfg Config) (DistinctMap, error) {
	switch queryType {
	case Unordered:
		m := newUnorderedDistinctMap()
		m.snapshotBudget = cfg.DistinctMapSnapshotBudget
		if cursor != nil && *cursor != "" {
			if err := m.restore(*cursor); err != nil {
				return nil, badRequest("NewDistinctMap", "malformed distinct map cursor", *cursor)
			}
		}
		return m, nil
	case Ordered:
		m := &orderedDistinctMap{}
		if cursor != nil && *cursor != "" {
			if err := m.restore(*cursor); err != nil {
				return nil, badRequest("NewDistinctMap", "malformed distinct map cursor", *cursor)
			}
		}
		return m, nil
	default:
		return nil, badRequest("NewDistinctMap", fmt.Sprintf("unknown distinct query type: %v", queryType), "")
	}
}

// unorderedDistinctMap is an in-memory set of every fingerprint seen.
type unorderedDistinctMap struct {
	seen           map[element.UInt128]struct{}
	snapshotBudget int
}

func newUnorderedDistinctMap() *unorderedDistinctMap {
	return &unorderedDistinctMap{seen: make(map[element.UInt128]struct{})}
}

func (m *unorderedDistinctMap) Add(e element.Element) (bool, element.UInt128) {
	fp := element.Fingerprint(e)
	if _, ok := m.seen[fp]; ok {
		return false, fp
	}
	m.seen[fp] = struct{}{}
	return true, fp
}

type unorderedDistinctMapCursor struct {
	Fingerprints []string `json:"fingerprints"`
}

func (m *unorderedDistinctMap) GetCursor() (string, error) {
	if m.snapshotBudget > 0 && len(m.seen) > m.snapshotBudget {
		return "", badRequest("DistinctMap.GetCursor",
			fmt.Sprintf("distinct map snapshot exceeds budget: %d fingerprints > budget %d", len(m.seen), m.snapshotBudget), "")
	}
	c := unorderedDistinctMapCursor{Fingerprints: make([]string, 0, len(m.seen))}
	for fp := range m.seen {
		c.Fingerprints = append(c.Fingerprints, fp.String())
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m *unorderedDistinctMap) restore(cursor string) error {
	var c unorderedDistinctMapCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	m.seen = make(map[element.UInt128]struct{}, len(c.Fingerprints))
	for _, s := range c.Fingerprints {
		fp, err := element.ParseUInt128(s)
		if err != nil {
			return err
		}
		m.seen[fp] = struct{}{}
	}
	return nil
}

// orderedDistinctMap keeps only the last-seen fingerprint, relying on the
// upstream source to emit documents sorted by the distinct key.
type orderedDistinctMap struct {
	hasLast bool
	last    element.UInt128
}

func (m *orderedDistinctMap) Add(e element.Element) (bool, element.UInt128) {
	fp := element.Fingerprint(e)
	if m.hasLast && m.last.Equal(fp) {
		return false, fp
	}
	m.hasLast = true
	m.last = fp
	return true, fp
}

type orderedDistinctMapCursor struct {
	HasLast bool   `json:"hasLast"`
	Last    string `json:"last,omitempty"`
}

func (m *orderedDistinctMap) GetCursor() (string, error) {
	c := orderedDistinctMapCursor{HasLast: m.hasLast}
	if m.hasLast {
		c.Last = m.last.String()
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m *orderedDistinctMap) restore(cursor string) error {
	var c orderedDistinctMapCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	m.hasLast = c.HasLast
	if c.HasLast {
		fp, err := element.ParseUInt128(c.Last)
		if err != nil {
			return err
		}
		m.last = fp
	}
	return nil
}
