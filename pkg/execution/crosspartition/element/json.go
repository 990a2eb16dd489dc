package element

import (
	"encoding/json"
	"fmt"
)

// wireElement is Element's JSON wire format, used only for continuation
// token serialization (never for the canonical fingerprint, which uses
// appendCanonical instead).
type wireElement struct {
	Kind  Kind        `json:"kind"`
	Bool  bool        `json:"bool,omitempty"`
	Int64 int64       `json:"int64,omitempty"`
	Float *float64    `json:"float,omitempty"`
	Str   string      `json:"str,omitempty"`
	Arr   []Element   `json:"arr,omitempty"`
	Obj   []wireField `json:"obj,omitempty"`
}

type wireField struct {
	Key   string  `json:"key"`
	Value Element `json:"value"`
}

// MarshalJSON implements json.Marshaler so continuation-token cursors can
// embed arbitrary Element values (scalar aggregator state, Min/Max
// running extrema) without a bespoke encoder per call site.
func (e Element) MarshalJSON() ([]byte, error) {
	w := wireElement{Kind: e.kind}
	switch e.kind {
	case KindBool:
		w.Bool = e.b
	case KindInt64:
		w.Int64 = e.i
	case KindFloat64:
		f := e.f
		w.Float = &f
	case KindString:
		w.Str = e.s
	case KindArray:
		w.Arr = e.arr
	case KindObject:
		w.Obj = make([]wireField, len(e.obj))
		for i, f := range e.obj {
			w.Obj[i] = wireField{Key: f.Key, Value: f.Value}
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON.
func (e *Element) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case KindUndefined:
		*e = Undefined
	case KindNull:
		*e = Null
	case KindBool:
		*e = NewBool(w.Bool)
	case KindInt64:
		*e = NewInt64(w.Int64)
	case KindFloat64:
		if w.Float == nil {
			*e = NewFloat64(0)
		} else {
			*e = NewFloat64(*w.Float)
		}
	case KindString:
		*e = NewString(w.Str)
	case KindArray:
		*e = NewArray(w.Arr)
	case KindObject:
		fields := make([]Field, len(w.Obj))
		for i, f := range w.Obj {
			fields[i] = Field{Key: f.Key, Value: f.Value}
		}
		*e = NewObject(fields)
	default:
		return fmt.Errorf("element: unknown kind %d in wire format", w.Kind)
	}
	return nil
}
