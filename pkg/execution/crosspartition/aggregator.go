package crosspartition

import (
	"encoding/json"

	"storemy/pkg/execution/crosspartition/element"
)

// AliasAggregate pairs a SELECT alias with the aggregate it computes.
// Kind == AggregateScalar means the alias passes its payload through
// unaggregated (spec §4.4's "null" mapping entry).
type AliasAggregate struct {
	Alias string
	Kind  AggregateKind
}

// SingleGroupAggregator accumulates every row belonging to one GROUP BY
// key into one result document, per spec §4.4. hasSelectValue restricts
// the aggregator to exactly one alias (the query's "SELECT VALUE
// <aggregate>(...)" form has no object to build; it returns the bare
// aggregate result) - the Open Question in spec §9 is resolved by
// rejecting any other arity for that mode at construction time.
type SingleGroupAggregator struct {
	orderedAliases []string
	aggregates     map[string]*AliasAggregate
	columns        map[string]columnAggregator
	hasSelectValue bool
}

// NewSingleGroupAggregator builds an aggregator for one GROUP BY key.
// aliases must list every SELECT alias in projection order; aggregates
// maps each alias to its AliasAggregate (every alias in aliases must
// have an entry). hasSelectValue requires exactly one alias.
func NewSingleGroupAggregator(aliases []string, aggregates []AliasAggregate, hasSelectValue bool) (*SingleGroupAggregator, error) {
	if hasSelectValue && len(aliases) != 1 {
		return nil, badRequest("NewSingleGroupAggregator",
			"SELECT VALUE aggregation requires exactly one aggregate alias", "")
	}

	byAlias := make(map[string]*AliasAggregate, len(aggregates))
	for i := range aggregates {
		a := aggregates[i]
		byAlias[a.Alias] = &a
	}

	ordered := make([]string, len(aliases))
	copy(ordered, aliases)

	columns := make(map[string]columnAggregator, len(ordered))
	for _, alias := range ordered {
		agg, ok := byAlias[alias]
		if !ok {
			return nil, badRequest("NewSingleGroupAggregator",
				"alias has no aggregate mapping: "+alias, "")
		}
		columns[alias] = newColumnAggregator(agg.Kind)
	}

	return &SingleGroupAggregator{
		orderedAliases: ordered,
		aggregates:     byAlias,
		columns:        columns,
		hasSelectValue: hasSelectValue,
	}, nil
}

// AddValues feeds one source row into the group. For the hasSelectValue
// case payload is the bare value to aggregate. Otherwise payload must be
// an Object keyed by alias; aggregate-kind aliases expect a nested
// {"item": v} wrapper (spec §4.4's payload shape for non-scalar columns),
// scalar aliases take the value directly.
func (g *SingleGroupAggregator) AddValues(payload element.Element) error {
	if g.hasSelectValue {
		alias := g.orderedAliases[0]
		g.columns[alias].AddValue(payload)
		return nil
	}

	if payload.Kind() != element.KindObject {
		return badRequest("SingleGroupAggregator.AddValues", "payload must be an object", payload.Kind().String())
	}

	for _, alias := range g.orderedAliases {
		v, ok := payload.Get(alias)
		if !ok {
			continue
		}
		agg := g.aggregates[alias]
		if agg.Kind == AggregateScalar {
			g.columns[alias].AddValue(v)
			continue
		}
		item, ok := v.Get("item")
		if !ok {
			continue
		}
		g.columns[alias].AddValue(item)
	}
	return nil
}

// GetResult materializes the group's final document (or, in the
// hasSelectValue case, the bare aggregate value). Aliases whose
// aggregator never produced a value (Undefined) are omitted from the
// object form, matching spec §4.4's definition of Undefined columns.
func (g *SingleGroupAggregator) GetResult() element.Element {
	if g.hasSelectValue {
		return g.columns[g.orderedAliases[0]].GetResult()
	}

	fields := make([]element.Field, 0, len(g.orderedAliases))
	for _, alias := range g.orderedAliases {
		v := g.columns[alias].GetResult()
		if v.IsUndefined() {
			continue
		}
		fields = append(fields, element.Field{Key: alias, Value: v})
	}
	return element.NewObject(fields)
}

type singleGroupAggregatorCursor struct {
	HasSelectValue bool              `json:"hasSelectValue"`
	OrderedAliases []string          `json:"orderedAliases"`
	Kinds          map[string]int    `json:"kinds"`
	Columns        map[string]string `json:"columns"`
}

// GetCursor serializes the aggregator's running state for resumption.
func (g *SingleGroupAggregator) GetCursor() (string, error) {
	c := singleGroupAggregatorCursor{
		HasSelectValue: g.hasSelectValue,
		OrderedAliases: g.orderedAliases,
		Kinds:          make(map[string]int, len(g.aggregates)),
		Columns:        make(map[string]string, len(g.columns)),
	}
	for alias, agg := range g.aggregates {
		c.Kinds[alias] = int(agg.Kind)
	}
	for alias, col := range g.columns {
		cur, err := col.GetCursor()
		if err != nil {
			return "", err
		}
		c.Columns[alias] = cur
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RestoreSingleGroupAggregator rebuilds a SingleGroupAggregator from a
// cursor produced by GetCursor.
func RestoreSingleGroupAggregator(cursor string) (*SingleGroupAggregator, error) {
	var c singleGroupAggregatorCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return nil, badRequest("RestoreSingleGroupAggregator", "malformed aggregator cursor", cursor)
	}

	g := &SingleGroupAggregator{
		orderedAliases: c.OrderedAliases,
		hasSelectValue: c.HasSelectValue,
		aggregates:     make(map[string]*AliasAggregate, len(c.Kinds)),
		columns:        make(map[string]columnAggregator, len(c.Kinds)),
	}
	for alias, kind := range c.Kinds {
		agg := &AliasAggregate{Alias: alias, Kind: AggregateKind(kind)}
		g.aggregates[alias] = agg
		col := newColumnAggregator(agg.Kind)
		if cur, ok := c.Columns[alias]; ok {
			if err := col.restore(cur); err != nil {
				return nil, badRequest("RestoreSingleGroupAggregator", "malformed column aggregator cursor", cur)
			}
		}
		g.columns[alias] = col
	}
	return g, nil
}
