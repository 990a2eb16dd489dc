package crosspartition

import (
	"context"
	"testing"

	dberror "storemy/pkg/error"
	"storemy/pkg/execution/crosspartition/element"
)

func rewrittenRow(team string, total int64) element.Element {
	return objPayload(
		element.Field{Key: "groupByItems", Value: element.NewArray([]element.Element{itemWrap(element.NewString(team))})},
		element.Field{Key: "payload", Value: objPayload(
			element.Field{Key: "team", Value: element.NewString(team)},
			element.Field{Key: "total", Value: itemWrap(element.NewInt64(total))},
		)},
	)
}

func TestGroupByFillPhaseEmitsNothing(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{
		rewrittenRow("A", 3), rewrittenRow("B", 5),
	}})
	aliases, aggregates := groupByTeamSum()
	table := NewGroupingTable(aliases, aggregates, false, DefaultConfig())
	stage := createGroupByStage(Client, source, table)

	page, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if !page.Success {
		t.Fatalf("expected fill-phase page to succeed, got %+v", page)
	}
	if len(page.Elements) != 0 {
		t.Fatalf("expected fill-phase page to emit zero elements, got %d", len(page.Elements))
	}
	if stage.IsDone() {
		t.Fatalf("expected stage to not be done while groups remain undrained")
	}
}

func TestGroupByEmitPhaseAfterSourceExhausted(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{
		rewrittenRow("A", 3), rewrittenRow("B", 5), rewrittenRow("A", 7),
	}})
	aliases, aggregates := groupByTeamSum()
	table := NewGroupingTable(aliases, aggregates, false, DefaultConfig())
	stage := createGroupByStage(Client, source, table)

	fill, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain (fill): %v", err)
	}
	if !fill.Success || len(fill.Elements) != 0 {
		t.Fatalf("expected fill page with zero elements, got %+v", fill)
	}

	emit, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain (emit): %v", err)
	}
	if !emit.Success || len(emit.Elements) != 2 {
		t.Fatalf("expected emit page with 2 groups, got %+v", emit)
	}

	totals := map[string]float64{}
	for _, e := range emit.Elements {
		team, _ := e.Get("team")
		total, _ := e.Get("total")
		totals[team.String()] = total.Float64()
	}
	if totals["A"] != 10 || totals["B"] != 5 {
		t.Fatalf("unexpected group totals: %+v", totals)
	}

	if !stage.IsDone() {
		t.Fatalf("expected stage to be done once every group has been drained")
	}
}

func TestGroupByRewrittenProjectionValidation(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{
		element.NewString("not a rewritten projection"),
	}})
	aliases, aggregates := groupByTeamSum()
	table := NewGroupingTable(aliases, aggregates, false, DefaultConfig())
	stage := createGroupByStage(Client, source, table)

	// A malformed rewritten projection is a BadRequest (spec §7): permanent,
	// and must raise as an error rather than flow through Page.Success=false
	// alongside retryable Transient source failures.
	_, err := stage.Drain(context.Background(), 10)
	if err == nil {
		t.Fatalf("expected malformed rewritten projection to raise an error")
	}
	dbErr, ok := err.(*dberror.DBError)
	if !ok {
		t.Fatalf("expected a *dberror.DBError, got %T", err)
	}
	if dbErr.Category != dberror.ErrCategoryUser {
		t.Fatalf("expected ErrCategoryUser, got %v", dbErr.Category)
	}
}

func TestClientGroupByDisallowsMidEmitCursor(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{rewrittenRow("A", 3)}})
	aliases, aggregates := groupByTeamSum()
	table := NewGroupingTable(aliases, aggregates, false, DefaultConfig())
	stage := createGroupByStage(Client, source, table)

	stage.Drain(context.Background(), 10) // fill

	ok, cursor := stage.TryGetCursor()
	if ok || cursor != nil {
		t.Fatalf("expected Client-variant to disallow mid-emit continuation, got ok=%v cursor=%v", ok, cursor)
	}
}

func TestComputeGroupByAllowsMidEmitCursor(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{rewrittenRow("A", 3)}})
	aliases, aggregates := groupByTeamSum()
	table := NewGroupingTable(aliases, aggregates, false, DefaultConfig())
	stage := createGroupByStage(Compute, source, table)

	stage.Drain(context.Background(), 10) // fill

	ok, cursor := stage.TryGetCursor()
	if !ok || cursor == nil {
		t.Fatalf("expected Compute-variant to support mid-emit continuation, got ok=%v cursor=%v", ok, cursor)
	}
}
