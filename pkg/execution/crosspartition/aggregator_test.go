package crosspartition

import (
	"testing"

	"storemy/pkg/execution/crosspartition/element"
)

func TestSingleGroupAggregatorSumCountAverage(t *testing.T) {
	aliases := []string{"team", "total", "n", "avg"}
	aggregates := []AliasAggregate{
		{Alias: "team", Kind: AggregateScalar},
		{Alias: "total", Kind: AggregateSum},
		{Alias: "n", Kind: AggregateCount},
		{Alias: "avg", Kind: AggregateAverage},
	}
	agg, err := NewSingleGroupAggregator(aliases, aggregates, false)
	if err != nil {
		t.Fatalf("NewSingleGroupAggregator: %v", err)
	}

	rows := []int64{3, 5, 7}
	for _, v := range rows {
		payload := objPayload(
			element.Field{Key: "team", Value: element.NewString("A")},
			element.Field{Key: "total", Value: itemWrap(element.NewInt64(v))},
			element.Field{Key: "n", Value: itemWrap(element.NewInt64(1))},
			element.Field{Key: "avg", Value: itemWrap(element.NewInt64(v))},
		)
		if err := agg.AddValues(payload); err != nil {
			t.Fatalf("AddValues(%d): %v", v, err)
		}
	}

	result := agg.GetResult()
	team, ok := result.Get("team")
	if !ok || team.String() != "A" {
		t.Fatalf("expected team=A in result, got %#v", result)
	}
	total, ok := result.Get("total")
	if !ok || total.Float64() != 15 {
		t.Fatalf("expected total=15, got %#v", total)
	}
	count, ok := result.Get("n")
	if !ok || count.Int64() != 3 {
		t.Fatalf("expected n=3, got %#v", count)
	}
	avg, ok := result.Get("avg")
	if !ok || avg.Float64() != 5 {
		t.Fatalf("expected avg=5, got %#v", avg)
	}
}

func TestSingleGroupAggregatorMinMax(t *testing.T) {
	aliases := []string{"lo", "hi"}
	aggregates := []AliasAggregate{
		{Alias: "lo", Kind: AggregateMin},
		{Alias: "hi", Kind: AggregateMax},
	}
	agg, err := NewSingleGroupAggregator(aliases, aggregates, false)
	if err != nil {
		t.Fatalf("NewSingleGroupAggregator: %v", err)
	}

	for _, v := range []int64{4, -2, 9, 1} {
		payload := objPayload(
			element.Field{Key: "lo", Value: itemWrap(element.NewInt64(v))},
			element.Field{Key: "hi", Value: itemWrap(element.NewInt64(v))},
		)
		if err := agg.AddValues(payload); err != nil {
			t.Fatalf("AddValues(%d): %v", v, err)
		}
	}

	result := agg.GetResult()
	lo, _ := result.Get("lo")
	hi, _ := result.Get("hi")
	if lo.Int64() != -2 {
		t.Fatalf("expected min=-2, got %d", lo.Int64())
	}
	if hi.Int64() != 9 {
		t.Fatalf("expected max=9, got %d", hi.Int64())
	}
}

func TestSingleGroupAggregatorSumStickyUndefinedOnNonNumeric(t *testing.T) {
	agg, err := NewSingleGroupAggregator([]string{"s"}, []AliasAggregate{{Alias: "s", Kind: AggregateSum}}, false)
	if err != nil {
		t.Fatalf("NewSingleGroupAggregator: %v", err)
	}

	agg.AddValues(objPayload(element.Field{Key: "s", Value: itemWrap(element.NewInt64(1))}))
	agg.AddValues(objPayload(element.Field{Key: "s", Value: itemWrap(element.NewString("oops"))}))

	result := agg.GetResult()
	if _, ok := result.Get("s"); ok {
		t.Fatalf("expected alias with Undefined result to be omitted from the object, got %#v", result)
	}
}

func TestSingleGroupAggregatorHasSelectValueRequiresExactlyOneAlias(t *testing.T) {
	_, err := NewSingleGroupAggregator(
		[]string{"a", "b"},
		[]AliasAggregate{{Alias: "a", Kind: AggregateSum}, {Alias: "b", Kind: AggregateSum}},
		true,
	)
	if err == nil {
		t.Fatalf("expected construction to be rejected when hasSelectValue=true with more than one alias")
	}
}

func TestSingleGroupAggregatorHasSelectValueReturnsBareResult(t *testing.T) {
	agg, err := NewSingleGroupAggregator([]string{"total"}, []AliasAggregate{{Alias: "total", Kind: AggregateSum}}, true)
	if err != nil {
		t.Fatalf("NewSingleGroupAggregator: %v", err)
	}
	if err := agg.AddValues(element.NewInt64(4)); err != nil {
		t.Fatalf("AddValues: %v", err)
	}
	if err := agg.AddValues(element.NewInt64(6)); err != nil {
		t.Fatalf("AddValues: %v", err)
	}

	result := agg.GetResult()
	if result.Kind() != element.KindFloat64 || result.Float64() != 10 {
		t.Fatalf("expected bare SELECT VALUE result 10, got %#v", result)
	}
}

func TestSingleGroupAggregatorCursorRoundTrip(t *testing.T) {
	agg, err := NewSingleGroupAggregator([]string{"total"}, []AliasAggregate{{Alias: "total", Kind: AggregateSum}}, false)
	if err != nil {
		t.Fatalf("NewSingleGroupAggregator: %v", err)
	}
	agg.AddValues(objPayload(element.Field{Key: "total", Value: itemWrap(element.NewInt64(3))}))

	cursor, err := agg.GetCursor()
	if err != nil {
		t.Fatalf("GetCursor: %v", err)
	}

	restored, err := RestoreSingleGroupAggregator(cursor)
	if err != nil {
		t.Fatalf("RestoreSingleGroupAggregator: %v", err)
	}
	restored.AddValues(objPayload(element.Field{Key: "total", Value: itemWrap(element.NewInt64(4))}))

	result := restored.GetResult()
	total, ok := result.Get("total")
	if !ok || total.Float64() != 7 {
		t.Fatalf("expected restored aggregator sum=7, got %#v", result)
	}
}
