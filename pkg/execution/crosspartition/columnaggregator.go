package crosspartition

import (
	"encoding/json"

	"storemy/pkg/execution/crosspartition/element"
)

// AggregateKind identifies a per-column aggregator kind (spec §4.4).
// AggregateScalar means "no aggregate: passthrough, first-seen wins" —
// the mapping's "null" entry in spec.md's alias -> (kind | null) table.
type AggregateKind int

const (
	AggregateScalar AggregateKind = iota
	AggregateCount
	AggregateSum
	AggregateMin
	AggregateMax
	AggregateAverage
)

func (k AggregateKind) String() string {
	switch k {
	case AggregateScalar:
		return "Scalar"
	case AggregateCount:
		return "Count"
	case AggregateSum:
		return "Sum"
	case AggregateMin:
		return "Min"
	case AggregateMax:
		return "Max"
	case AggregateAverage:
		return "Average"
	default:
		return "Unknown"
	}
}

// columnAggregator is the per-alias aggregation state machine (spec §4.4
// table). AddValue receives the already-unwrapped payload value (callers
// unwrap {"item": v} before calling it for aggregate-kind columns).
type columnAggregator interface {
	AddValue(v element.Element)
	GetResult() element.Element
	GetCursor() (string, error)
	restore(cursor string) error
}

func newColumnAggregator(kind AggregateKind) columnAggregator {
	switch kind {
	case AggregateCount:
		return &countAggregator{}
	case AggregateSum:
		return &sumAggregator{}
	case AggregateMin:
		return &extremumAggregator{wantMin: true}
	case AggregateMax:
		return &extremumAggregator{wantMin: false}
	case AggregateAverage:
		return &averageAggregator{}
	default:
		return &scalarAggregator{}
	}
}

// scalarAggregator records the first non-Undefined value it sees.
type scalarAggregator struct {
	hasValue bool
	value    element.Element
}

func (a *scalarAggregator) AddValue(v element.Element) {
	if a.hasValue || v.IsUndefined() {
		return
	}
	a.hasValue = true
	a.value = v
}

func (a *scalarAggregator) GetResult() element.Element {
	if !a.hasValue {
		return element.Undefined
	}
	return a.value
}

type scalarCursor struct {
	HasValue bool            `json:"hasValue"`
	Value    json.RawMessage `json:"value,omitempty"`
}

func (a *scalarAggregator) GetCursor() (string, error) {
	c := scalarCursor{HasValue: a.hasValue}
	if a.hasValue {
		raw, err := json.Marshal(a.value)
		if err != nil {
			return "", err
		}
		c.Value = raw
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (a *scalarAggregator) restore(cursor string) error {
	var c scalarCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	a.hasValue = c.HasValue
	if c.HasValue {
		var v element.Element
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return err
		}
		a.value = v
	}
	return nil
}

// countAggregator is a running integer sum of {item:n}.item values.
type countAggregator struct {
	total int64
}

func (a *countAggregator) AddValue(v element.Element) {
	if v.Kind() == element.KindInt64 {
		a.total += v.Int64()
	} else if v.Kind() == element.KindFloat64 {
		a.total += int64(v.Float64())
	}
}

func (a *countAggregator) GetResult() element.Element { return element.NewInt64(a.total) }

type countCursor struct {
	Total int64 `json:"total"`
}

func (a *countAggregator) GetCursor() (string, error) {
	b, err := json.Marshal(countCursor{Total: a.total})
	return string(b), err
}

func (a *countAggregator) restore(cursor string) error {
	var c countCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	a.total = c.Total
	return nil
}

// sumAggregator sums numeric payloads; any non-numeric input makes the
// result stickily Undefined (spec §4.4).
type sumAggregator struct {
	sum        float64
	nonNumeric bool
}

func (a *sumAggregator) AddValue(v element.Element) {
	if a.nonNumeric {
		return
	}
	switch v.Kind() {
	case element.KindInt64:
		a.sum += float64(v.Int64())
	case element.KindFloat64:
		a.sum += v.Float64()
	default:
		a.nonNumeric = true
	}
}

func (a *sumAggregator) GetResult() element.Element {
	if a.nonNumeric {
		return element.Undefined
	}
	return element.NewFloat64(a.sum)
}

type sumCursor struct {
	Sum        float64 `json:"sum"`
	NonNumeric bool    `json:"nonNumeric"`
}

func (a *sumAggregator) GetCursor() (string, error) {
	b, err := json.Marshal(sumCursor{Sum: a.sum, NonNumeric: a.nonNumeric})
	return string(b), err
}

func (a *sumAggregator) restore(cursor string) error {
	var c sumCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	a.sum, a.nonNumeric = c.Sum, c.NonNumeric
	return nil
}

// extremumAggregator implements Min (wantMin=true) and Max (wantMin=false)
// using the total order in element.Compare.
type extremumAggregator struct {
	wantMin  bool
	hasValue bool
	value    element.Element
}

func (a *extremumAggregator) AddValue(v element.Element) {
	if !a.hasValue {
		a.hasValue = true
		a.value = v
		return
	}
	cmp := element.Compare(v, a.value)
	if (a.wantMin && cmp < 0) || (!a.wantMin && cmp > 0) {
		a.value = v
	}
}

func (a *extremumAggregator) GetResult() element.Element {
	if !a.hasValue {
		return element.Undefined
	}
	return a.value
}

type extremumCursor struct {
	HasValue bool            `json:"hasValue"`
	Value    json.RawMessage `json:"value,omitempty"`
}

func (a *extremumAggregator) GetCursor() (string, error) {
	c := extremumCursor{HasValue: a.hasValue}
	if a.hasValue {
		raw, err := json.Marshal(a.value)
		if err != nil {
			return "", err
		}
		c.Value = raw
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (a *extremumAggregator) restore(cursor string) error {
	var c extremumCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	a.hasValue = c.HasValue
	if c.HasValue {
		var v element.Element
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return err
		}
		a.value = v
	}
	return nil
}

// averageAggregator is a (sum, count) pair; GetResult divides, or is
// Undefined if nothing numeric was ever added.
type averageAggregator struct {
	sum   float64
	count int64
}

func (a *averageAggregator) AddValue(v element.Element) {
	switch v.Kind() {
	case element.KindInt64:
		a.sum += float64(v.Int64())
		a.count++
	case element.KindFloat64:
		a.sum += v.Float64()
		a.count++
	}
}

func (a *averageAggregator) GetResult() element.Element {
	if a.count == 0 {
		return element.Undefined
	}
	return element.NewFloat64(a.sum / float64(a.count))
}

type averageCursor struct {
	Sum   float64 `json:"sum"`
	Count int64   `json:"count"`
}

func (a *averageAggregator) GetCursor() (string, error) {
	b, err := json.Marshal(averageCursor{Sum: a.sum, Count: a.count})
	return string(b), err
}

func (a *averageAggregator) restore(cursor string) error {
	var c averageCursor
	if err := json.Unmarshal([]byte(cursor), &c); err != nil {
		return err
	}
	a.sum, a.count = c.Sum, c.Count
	return nil
}
