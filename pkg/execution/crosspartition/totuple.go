package crosspartition

import (
	"storemy/pkg/execution/crosspartition/element"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// ToTuple projects a result Element - the payload of a Page or a
// SingleGroupAggregator.GetResult() - onto a TupleDescription so GROUP BY
// and DISTINCT output can feed the rest of the query engine's DbIterator
// pipeline (SPEC_FULL.md §6). desc.FieldNames selects, in order, which
// Object key backs each output field; a scalar result (from a
// hasSelectValue aggregate, or a non-object DISTINCT element) is used
// directly when desc has exactly one field and no FieldNames.
func ToTuple(e element.Element, desc *tuple.TupleDescription) (*tuple.Tuple, error) {
	t := tuple.NewTuple(desc)

	if desc.NumFields() == 1 && (desc.FieldNames == nil || desc.FieldNames[0] == "") {
		field, err := elementToField(e, desc.Types[0])
		if err != nil {
			return nil, err
		}
		if err := t.SetField(0, field); err != nil {
			return nil, badRequest("ToTuple", "failed to set field 0", err.Error())
		}
		return t, nil
	}

	if e.Kind() != element.KindObject {
		return nil, badRequest("ToTuple", "result element is not an object and descriptor has multiple fields", e.Kind().String())
	}

	for i := 0; i < desc.NumFields(); i++ {
		name, err := desc.GetFieldName(i)
		if err != nil {
			return nil, fatal("ToTuple", "tuple description field name lookup failed")
		}
		v, ok := e.Get(name)
		if !ok || v.IsUndefined() {
			continue
		}
		field, err := elementToField(v, desc.Types[i])
		if err != nil {
			return nil, err
		}
		if err := t.SetField(i, field); err != nil {
			return nil, badRequest("ToTuple", "failed to set field", err.Error())
		}
	}
	return t, nil
}

func elementToField(e element.Element, t types.Type) (types.Field, error) {
	switch t {
	case types.IntType:
		switch e.Kind() {
		case element.KindInt64:
			return types.NewIntField(e.Int64()), nil
		case element.KindFloat64:
			return types.NewIntField(int64(e.Float64())), nil
		}
	case types.FloatType:
		switch e.Kind() {
		case element.KindFloat64:
			return types.NewFloat64Field(e.Float64()), nil
		case element.KindInt64:
			return types.NewFloat64Field(float64(e.Int64())), nil
		}
	case types.StringType:
		if e.Kind() == element.KindString {
			return types.NewStringField(e.String(), types.StringMaxSize), nil
		}
	case types.BoolType:
		if e.Kind() == element.KindBool {
			return types.NewBoolField(e.Bool()), nil
		}
	}
	return nil, badRequest("ToTuple", "element kind does not match tuple field type", e.Kind().String()+" -> "+t.String())
}
