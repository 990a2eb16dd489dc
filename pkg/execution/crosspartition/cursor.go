package crosspartition

import "encoding/json"

// DistinctContinuationToken is the wire format of a Distinct stage's
// resumption point (spec §3, §6): the source's own cursor plus the
// DistinctMap's internal state, both opaque strings.
type DistinctContinuationToken struct {
	SourceToken      *string `json:"sourceToken"`
	DistinctMapToken *string `json:"distinctMapToken"`
}

func (t DistinctContinuationToken) marshal() (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseDistinctContinuationToken(s string) (DistinctContinuationToken, error) {
	var t DistinctContinuationToken
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return DistinctContinuationToken{}, err
	}
	return t, nil
}

// GroupByContinuationToken is the wire format of a GroupBy stage's
// resumption point (spec §4.6, §6): the source's cursor plus the
// GroupingTable's serialized aggregator state.
type GroupByContinuationToken struct {
	SourceToken        *string `json:"sourceToken"`
	GroupingTableToken *string `json:"groupingTableToken"`
}

func (t GroupByContinuationToken) marshal() (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseGroupByContinuationToken(s string) (GroupByContinuationToken, error) {
	var t GroupByContinuationToken
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return GroupByContinuationToken{}, err
	}
	return t, nil
}
