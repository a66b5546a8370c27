package criteria

import (
	"fmt"
	"sort"
	"strings"
)

// Direction is a sort direction.
type Direction int

// Direction values.
const (
	SortAsc  Direction = 1
	SortDesc Direction = -1
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// ParseDirection parses asc, ascending, 1, desc, descending or -1.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "1":
		return SortAsc, nil
	case "desc", "descending", "-1":
		return SortDesc, nil
	default:
		return 0, fmt.Errorf("invalid sort direction %q", s)
	}
}

// SortField pairs a field with a direction.
type SortField struct {
	Field     string
	Direction Direction
}

// Sort is an ordered list of sort fields.
type Sort []SortField

// String renders the sort as "a asc, b desc".
func (s Sort) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Field + " " + f.Direction.String()
	}
	return strings.Join(parts, ", ")
}

// Expression is a key with an operator, built symbolically with Asc and Desc.
type Expression struct {
	Key      string
	Operator Direction
}

// Asc returns an ascending expression on key.
func Asc(key string) Expression { return Expression{Key: key, Operator: SortAsc} }

// Desc returns a descending expression on key.
func Desc(key string) Expression { return Expression{Key: key, Operator: SortDesc} }

// OrderSpec is one of OrderMap, OrderPairs or OrderExpressions.
type OrderSpec interface {
	sortFields() []SortField
}

// OrderMap maps fields to directions. Fields are applied in key order.
type OrderMap map[string]Direction

func (m OrderMap) sortFields() []SortField {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]SortField, len(keys))
	for i, k := range keys {
		fields[i] = SortField{Field: k, Direction: m[k]}
	}
	return fields
}

// OrderPairs is an already ordered list of sort fields.
type OrderPairs []SortField

func (p OrderPairs) sortFields() []SortField {
	return p
}

// OrderExpressions is a list of expressions applied as (key, operator).
type OrderExpressions []Expression

func (e OrderExpressions) sortFields() []SortField {
	fields := make([]SortField, len(e))
	for i, x := range e {
		fields[i] = SortField{Field: x.Key, Direction: x.Operator}
	}
	return fields
}

// Ascending appends ascending sort fields. Without fields the sort is left as is.
func (c Criteria) Ascending(fields ...string) Criteria {
	return c.orderFields(SortAsc, fields)
}

// Descending appends descending sort fields. Without fields the sort is left as is.
func (c Criteria) Descending(fields ...string) Criteria {
	return c.orderFields(SortDesc, fields)
}

func (c Criteria) orderFields(dir Direction, fields []string) Criteria {
	pairs := make([]SortField, len(fields))
	for i, f := range fields {
		pairs[i] = SortField{Field: f, Direction: dir}
	}
	return c.clone(func(n *Criteria) { n.options.appendSort(pairs) })
}

// OrderBy appends the fields described by spec. A nil or empty spec leaves
// the sort as is.
func (c Criteria) OrderBy(spec OrderSpec) Criteria {
	var pairs []SortField
	if spec != nil {
		pairs = spec.sortFields()
	}
	return c.clone(func(n *Criteria) { n.options.appendSort(pairs) })
}
