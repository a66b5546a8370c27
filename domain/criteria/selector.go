package criteria

import (
	"reflect"

	"github.com/globalsign/mgo/bson"
)

// Condition operators placed in the selector.
const (
	OpIn  = "$in"
	OpNin = "$nin"
	OpAll = "$all"
	OpNe  = "$ne"
)

// Where sets an equality condition on field.
func (c Criteria) Where(field string, value any) Criteria {
	return c.clone(func(n *Criteria) { n.selector[field] = value })
}

// AnyIn requires field to match one of values. Slice arguments are flattened.
func (c Criteria) AnyIn(field string, values ...any) Criteria {
	return c.withOperator(field, OpIn, flatten(values))
}

// AllIn requires an array field to contain every one of values.
func (c Criteria) AllIn(field string, values ...any) Criteria {
	return c.withOperator(field, OpAll, flatten(values))
}

// NotIn requires field to match none of values.
func (c Criteria) NotIn(field string, values ...any) Criteria {
	return c.withOperator(field, OpNin, flatten(values))
}

// Excludes requires field to differ from value.
func (c Criteria) Excludes(field string, value any) Criteria {
	return c.withOperator(field, OpNe, value)
}

func (c Criteria) withOperator(field, op string, value any) Criteria {
	return c.clone(func(n *Criteria) { n.selector[field] = bson.M{op: value} })
}

// flatten expands nested slices into a single sequence. Byte slices are kept
// whole since they usually carry a single binary value.
func flatten(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = appendFlat(out, v)
	}
	return out
}

func appendFlat(out []any, v any) []any {
	switch tv := v.(type) {
	case nil, []byte:
		return append(out, v)
	case []any:
		for _, e := range tv {
			out = appendFlat(out, e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return append(out, v)
	}
	for i := 0; i < rv.Len(); i++ {
		out = appendFlat(out, rv.Index(i).Interface())
	}
	return out
}

// distinct removes repeated values, keeping the first occurrence. Values that
// cannot be used as map keys, including comparable types holding slices or
// maps behind interface fields, are always kept.
func distinct(values []any) []any {
	seen := make(map[any]struct{}, len(values))
	out := make([]any, 0, len(values))
	for _, v := range values {
		if !hashable(reflect.ValueOf(v)) {
			out = append(out, v)
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func hashable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		return v.IsNil() || hashable(v.Elem())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !hashable(v.Index(i)) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !hashable(v.Field(i)) {
				return false
			}
		}
	}
	return true
}
