package element

import "testing"

func TestEqualIgnoresObjectKeyOrder(t *testing.T) {
	a := NewObject([]Field{{Key: "x", Value: NewInt64(1)}, {Key: "y", Value: NewInt64(2)}})
	b := NewObject([]Field{{Key: "y", Value: NewInt64(2)}, {Key: "x", Value: NewInt64(1)}})
	if !Equal(a, b) {
		t.Fatalf("expected objects with reordered keys to be equal")
	}
}

func TestEqualRespectsArrayOrder(t *testing.T) {
	a := NewArray([]Element{NewInt64(1), NewInt64(2)})
	b := NewArray([]Element{NewInt64(2), NewInt64(1)})
	if Equal(a, b) {
		t.Fatalf("expected arrays with different order to be unequal")
	}
}

func TestEqualDistinguishesNumericSubtype(t *testing.T) {
	if Equal(NewInt64(1), NewFloat64(1.0)) {
		t.Fatalf("expected int64(1) and float64(1.0) to be unequal, per spec's bit-exact numeric equality")
	}
}

func TestGetOnNonObjectReturnsUndefined(t *testing.T) {
	v, ok := NewInt64(5).Get("anything")
	if ok || !v.IsUndefined() {
		t.Fatalf("expected Get on a non-object element to report absent/Undefined")
	}
}

func TestGetMissingKeyReturnsUndefined(t *testing.T) {
	obj := NewObject([]Field{{Key: "a", Value: NewInt64(1)}})
	v, ok := obj.Get("b")
	if ok || !v.IsUndefined() {
		t.Fatalf("expected Get on a missing key to report absent/Undefined")
	}
}

func TestNewArrayAndObjectCopyDefensively(t *testing.T) {
	items := []Element{NewInt64(1)}
	arr := NewArray(items)
	items[0] = NewInt64(99)
	if arr.Array()[0].Int64() != 1 {
		t.Fatalf("expected NewArray to copy its input defensively")
	}

	fields := []Field{{Key: "a", Value: NewInt64(1)}}
	obj := NewObject(fields)
	fields[0].Value = NewInt64(99)
	got, _ := obj.Get("a")
	if got.Int64() != 1 {
		t.Fatalf("expected NewObject to copy its input defensively")
	}
}
