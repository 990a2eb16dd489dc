package crosspartition

import (
	"context"

	"storemy/pkg/execution/crosspartition/element"
	"storemy/pkg/logging"
)

var (
	disallowGroupByEmitCursorReason = "GROUP BY mid-emit continuation not supported by this variant"
	disallowGroupByComputeReason    = "Use TryGetCursor"
)

// groupByBase implements the fill-phase/emit-phase split of spec §4.6.
// ClientGroupByStage and ComputeGroupByStage differ only in whether a
// cursor is embedded automatically on Page versus requiring an explicit
// TryGetCursor call.
type groupByBase struct {
	source     Source
	table      *GroupingTable
	env        ExecutionEnvironment
	activityID string
}

// Drain implements spec §4.6: while the source is not yet exhausted it
// accumulates every row into the grouping table and returns a zero-element
// success page (propagating metrics); once the source is exhausted it
// drains completed groups from the table instead. A non-nil error means a
// BadRequest condition (a malformed rewritten projection or a grouping
// table cardinality violation, spec §7) was hit; it is permanent, unlike a
// Transient source failure, which is still reported as Page.Success=false.
func (gb *groupByBase) Drain(ctx context.Context, maxElements int) (Page, error) {
	if !gb.source.IsDone() {
		return gb.fill(ctx, maxElements)
	}
	return gb.emit(maxElements)
}

func (gb *groupByBase) fill(ctx context.Context, maxElements int) (Page, error) {
	page, err := gb.source.Drain(ctx, maxElements)
	if err != nil {
		return Page{}, err
	}
	if !page.Success {
		return page, nil
	}

	for _, e := range page.Elements {
		groupByItems, payload, err := parseRewrittenProjection(e)
		if err != nil {
			return Page{}, err
		}
		if err := gb.table.AddPayload(groupByItems, payload); err != nil {
			return Page{}, err
		}
	}

	gb.activityID = page.ActivityID

	out := Page{
		Success:       true,
		Elements:      nil,
		ActivityID:    page.ActivityID,
		RequestCharge: page.RequestCharge,
		Diagnostics:   page.Diagnostics,
		ResponseBytes: page.ResponseBytes,
	}

	switch gb.env {
	case Client:
		if ok, sourceCursor := gb.source.TryGetCursor(); ok && sourceCursor != nil {
			if cursor, err := gb.buildFillCursor(sourceCursor); err == nil {
				out.Cursor = &cursor
			}
		}
	case Compute:
		out.DisallowCursorReason = &disallowGroupByComputeReason
	}

	logging.WithComponent(component).Debug("groupby fill",
		"requested", maxElements, "source_elements", len(page.Elements), "groups", gb.table.Len())

	return out, nil
}

func (gb *groupByBase) emit(maxElements int) (Page, error) {
	elements := gb.table.Drain(clampNonNegative(maxElements))

	out := Page{
		Success:    true,
		Elements:   elements,
		ActivityID: gb.activityID,
	}

	if gb.env == Client {
		out.DisallowCursorReason = &disallowGroupByEmitCursorReason
	} else {
		out.DisallowCursorReason = &disallowGroupByComputeReason
	}

	logging.WithComponent(component).Debug("groupby emit", "requested", maxElements, "emitted", len(elements))

	return out, nil
}

// clampNonNegative lets Drain(maxElements) callers pass a non-positive
// value to mean "no limit" when draining the grouping table, so
// GroupingTable.Drain is always given a positive count.
func clampNonNegative(n int) int {
	if n <= 0 {
		return 1 << 30
	}
	return n
}

func (gb *groupByBase) buildFillCursor(sourceCursor *string) (string, error) {
	tableCursor, err := gb.table.GetCursor()
	if err != nil {
		return "", err
	}
	tok := GroupByContinuationToken{SourceToken: sourceCursor, GroupingTableToken: &tableCursor}
	return tok.marshal()
}

// IsDone is true only once the source is exhausted and every group has
// been drained (spec §4.6: IsDone <=> source.IsDone && groupingTable.Count == 0).
func (gb *groupByBase) IsDone() bool {
	return gb.source.IsDone() && gb.table.Len() == 0
}

// TryGetCursor implements spec §4.6's phase-dependent cursor rules.
func (gb *groupByBase) TryGetCursor() (bool, *string) {
	if gb.IsDone() {
		return true, nil
	}

	if !gb.source.IsDone() {
		ok, sourceCursor := gb.source.TryGetCursor()
		if !ok {
			return false, nil
		}
		cursor, err := gb.buildFillCursor(sourceCursor)
		if err != nil {
			return false, nil
		}
		return true, &cursor
	}

	if gb.env == Client {
		return false, nil
	}

	tableCursor, err := gb.table.GetCursor()
	if err != nil {
		return false, nil
	}
	tok := GroupByContinuationToken{SourceToken: nil, GroupingTableToken: &tableCursor}
	cursor, err := tok.marshal()
	if err != nil {
		return false, nil
	}
	return true, &cursor
}

// ClientGroupByStage is the Client-variant GROUP BY stage.
type ClientGroupByStage struct{ *groupByBase }

// ComputeGroupByStage is the Compute-variant GROUP BY stage.
type ComputeGroupByStage struct{ *groupByBase }

func createGroupByStage(env ExecutionEnvironment, source Source, table *GroupingTable) Stage {
	base := &groupByBase{source: source, table: table, env: env}
	switch env {
	case Client:
		return ClientGroupByStage{base}
	default:
		return ComputeGroupByStage{base}
	}
}

// parseRewrittenProjection validates and unpacks one source element into
// the grouping key tuple and aggregation payload described by spec §4.3's
// rewritten-projection shape:
//
//	{ "groupByItems": [ {"item": v1}, {"item": v2}, ... ], "payload": {...} }
func parseRewrittenProjection(e element.Element) ([]element.Element, element.Element, error) {
	if e.Kind() != element.KindObject {
		return nil, element.Undefined, badRequest("parseRewrittenProjection",
			"rewritten projection must be an object", e.Kind().String())
	}

	rawGroupByItems, ok := e.Get("groupByItems")
	if !ok || rawGroupByItems.Kind() != element.KindArray {
		return nil, element.Undefined, badRequest("parseRewrittenProjection",
			"rewritten projection missing array field groupByItems", "")
	}

	payload, ok := e.Get("payload")
	if !ok {
		return nil, element.Undefined, badRequest("parseRewrittenProjection",
			"rewritten projection missing field payload", "")
	}

	items := make([]element.Element, 0, len(rawGroupByItems.Array()))
	for _, wrapped := range rawGroupByItems.Array() {
		if wrapped.Kind() != element.KindObject {
			return nil, element.Undefined, badRequest("parseRewrittenProjection",
				"groupByItems entries must be {\"item\": v} objects", wrapped.Kind().String())
		}
		v, ok := wrapped.Get("item")
		if !ok {
			return nil, element.Undefined, badRequest("parseRewrittenProjection",
				"groupByItems entry missing field item", "")
		}
		items = append(items, v)
	}

	return items, payload, nil
}
