package crosspartition

import (
	"encoding/json"
	"fmt"

	"storemy/pkg/execution/crosspartition/element"
)

// GroupingTable maps a fingerprinted GROUP BY key to the SingleGroupAggregator
// accumulating that group's rows (spec §4.5). Iteration order follows first
// encounter, not map order - Go randomizes map iteration, which would make
// output order (and therefore any cursor built mid-drain) nondeterministic
// across runs, so order is tracked in a parallel slice.
type GroupingTable struct {
	aliases        []string
	aggregates     []AliasAggregate
	hasSelectValue bool
	cfg            Config

	groups map[string]*SingleGroupAggregator
	order  []string
}

// NewGroupingTable builds an empty table for the given projection. aliases
// and aggregates describe every output column exactly as
// NewSingleGroupAggregator expects; a fresh SingleGroupAggregator is built
// per group the first time its key is seen.
func NewGroupingTable(aliases []string, aggregates []AliasAggregate, hasSelectValue bool, cfg Config) *GroupingTable {
	return &GroupingTable{
		aliases:        aliases,
		aggregates:     aggregates,
		hasSelectValue: hasSelectValue,
		cfg:            cfg,
		groups:         make(map[string]*SingleGroupAggregator),
	}
}

// AddPayload routes one source row into its group, creating the group on
// first sight. Returns a BadRequest error if cfg.MaxGroupCardinality is set
// and admitting a new group would exceed it (SPEC_FULL.md §6's cardinality
// guard, a supplemented feature beyond spec.md).
func (g *GroupingTable) AddPayload(groupByItems []element.Element, payload element.Element) error {
	key := element.FingerprintTuple(groupByItems).String()

	agg, ok := g.groups[key]
	if !ok {
		if g.cfg.MaxGroupCardinality > 0 && len(g.order) >= g.cfg.MaxGroupCardinality {
			return badRequest("GroupingTable.AddPayload",
				fmt.Sprintf("group count exceeds MaxGroupCardinality %d", g.cfg.MaxGroupCardinality), key)
		}
		var err error
		agg, err = NewSingleGroupAggregator(g.aliases, g.aggregates, g.hasSelectValue)
		if err != nil {
			return err
		}
		g.groups[key] = agg
		g.order = append(g.order, key)
	}

	return agg.AddValues(payload)
}

// Drain picks the first maxItemCount keys in the table's current iteration
// order, removes them, and returns each aggregator's GetResult() in the
// same order (spec §4.5). A drained group cannot be re-entered - callers
// must only start draining once the source feeding AddPayload is
// exhausted (spec §4.5's invariant).
func (g *GroupingTable) Drain(maxItemCount int) []element.Element {
	if maxItemCount > len(g.order) {
		maxItemCount = len(g.order)
	}
	out := make([]element.Element, 0, maxItemCount)
	for _, key := range g.order[:maxItemCount] {
		out = append(out, g.groups[key].GetResult())
		delete(g.groups, key)
	}
	g.order = g.order[maxItemCount:]
	return out
}

// Len reports how many distinct groups are currently tracked.
func (g *GroupingTable) Len() int { return len(g.order) }

type groupingTableCursor struct {
	Order   []string          `json:"order"`
	Cursors map[string]string `json:"cursors"`
}

// GetCursor serializes every group's aggregator state plus the insertion
// order, so a restored table resumes with identical Drain() ordering.
func (g *GroupingTable) GetCursor() (string, error) {
	c := groupingTableCursor{
		Order:   append([]string(nil), g.order...),
		Cursors: make(map[string]string, len(g.order)),
	}
	for _, key := range g.order {
		cur, err := g.groups[key].GetCursor()
		if err != nil {
			return "", err
		}
		c.Cursors[key] = cur
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RestoreGroupingTable rebuilds a GroupingTable from a cursor produced by
// GetCursor, re-establishing both group state and emission order.
func RestoreGroupingTable(cursor string, aliases []string, aggregates []AliasAggregate, hasSelectValue bool, cfg Config) (*GroupingTable, error) {
	var c groupingTableCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return nil, badRequest("RestoreGroupingTable", "malformed grouping table cursor", cursor)
	}

	g := NewGroupingTable(aliases, aggregates, hasSelectValue, cfg)
	g.order = append([]string(nil), c.Order...)
	for _, key := range c.Order {
		aggCursor, ok := c.Cursors[key]
		if !ok {
			return nil, badRequest("RestoreGroupingTable", "cursor missing aggregator state for key", key)
		}
		agg, err := RestoreSingleGroupAggregator(aggCursor)
		if err != nil {
			return nil, err
		}
		g.groups[key] = agg
	}
	return g, nil
}
