package crosspartition

import (
	"context"
	"testing"

	"storemy/pkg/execution/crosspartition/element"
)

func TestClientDistinctFiltersDuplicatesAcrossPages(t *testing.T) {
	source := newMockSource(
		Page{Success: true, Elements: []element.Element{element.NewString("a"), element.NewString("b")}},
		Page{Success: true, Elements: []element.Element{element.NewString("a"), element.NewString("c")}},
	)
	distinctMap, err := NewDistinctMap(Unordered, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDistinctMap: %v", err)
	}
	stage := createDistinctStage(Client, source, distinctMap)

	page1, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if !page1.Success || len(page1.Elements) != 2 {
		t.Fatalf("expected page 1 to admit 2 elements, got %+v", page1)
	}

	page2, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if !page2.Success || len(page2.Elements) != 1 {
		t.Fatalf("expected page 2 to admit 1 element (duplicate \"a\" filtered), got %+v", page2)
	}
	if page2.Elements[0].String() != "c" {
		t.Fatalf("expected surviving element to be \"c\", got %q", page2.Elements[0].String())
	}

	if !stage.IsDone() {
		t.Fatalf("expected stage to be done once source is exhausted")
	}
}

func TestComputeDistinctSetsDisallowCursorReason(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{element.NewInt64(1)}})
	distinctMap, err := NewDistinctMap(Unordered, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDistinctMap: %v", err)
	}
	stage := createDistinctStage(Compute, source, distinctMap)

	page, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if page.Cursor != nil {
		t.Fatalf("expected Compute-variant page to never embed a cursor")
	}
	if page.DisallowCursorReason == nil {
		t.Fatalf("expected Compute-variant page to set DisallowCursorReason")
	}
}

func TestDistinctFailurePassthrough(t *testing.T) {
	source := newMockSource(
		Page{Success: false, ActivityID: "act-1", Diagnostics: "partition unavailable"},
		Page{Success: true, Elements: []element.Element{element.NewInt64(42)}},
	)
	distinctMap, err := NewDistinctMap(Unordered, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDistinctMap: %v", err)
	}
	stage := createDistinctStage(Client, source, distinctMap)

	failed, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected a Transient source failure to not raise, got %v", err)
	}
	if failed.Success {
		t.Fatalf("expected the failed source page to pass through unchanged")
	}
	if failed.ActivityID != "act-1" || failed.Diagnostics != "partition unavailable" {
		t.Fatalf("expected failure metadata to be preserved, got %+v", failed)
	}

	retry, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if !retry.Success || len(retry.Elements) != 1 {
		t.Fatalf("expected retry after failure to succeed as if the failure never happened, got %+v", retry)
	}
}

func TestDistinctPreservesSourceOrder(t *testing.T) {
	source := newMockSource(Page{Success: true, Elements: []element.Element{
		element.NewInt64(3), element.NewInt64(1), element.NewInt64(2), element.NewInt64(1),
	}})
	distinctMap, err := NewDistinctMap(Unordered, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDistinctMap: %v", err)
	}
	stage := createDistinctStage(Client, source, distinctMap)

	page, err := stage.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	want := []int64{3, 1, 2}
	if len(page.Elements) != len(want) {
		t.Fatalf("expected %d admitted elements, got %d", len(want), len(page.Elements))
	}
	for i, v := range want {
		if page.Elements[i].Int64() != v {
			t.Fatalf("element %d: expected %d, got %d", i, v, page.Elements[i].Int64())
		}
	}
}
