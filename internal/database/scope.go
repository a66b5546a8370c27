package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/globalsign/mgo/bson"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
)

// ErrUnsupportedCondition indicates a selector condition with no SQL rendering.
var ErrUnsupportedCondition = errors.New("unsupported condition")

// ColumnMapper maps a criteria field name to a table column.
type ColumnMapper func(field string) string

// DefaultColumns maps the reserved identifier and type fields to "id" and
// "type", and nested field paths to underscore separated columns.
func DefaultColumns(field string) string {
	switch field {
	case document.DefaultIDField:
		return "id"
	case document.DefaultTypeField:
		return "type"
	}
	return strings.ReplaceAll(field, ".", "_")
}

// Conditions translates the selector of c into clause expressions. Fields are
// visited in name order. Every unsupported condition is reported.
func Conditions(c criteria.Criteria, columns ColumnMapper) ([]clause.Expression, error) {
	if columns == nil {
		columns = DefaultColumns
	}

	selector := c.Selector()
	fields := make([]string, 0, len(selector))
	for f := range selector {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var (
		exprs  []clause.Expression
		result *multierror.Error
	)
	for _, field := range fields {
		column := clause.Column{Name: columns(field)}
		ops, isOps, err := operators(field, selector[field])
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if !isOps {
			exprs = append(exprs, clause.Eq{Column: column, Value: sqlValue(selector[field])})
			continue
		}
		for _, op := range sortedOps(ops) {
			expr, err := condition(column, op, ops[op])
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%w: %s %s", ErrUnsupportedCondition, field, op))
				continue
			}
			exprs = append(exprs, expr)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return exprs, nil
}

// operators reports whether value is an operator document such as
// {"$in": [...]}. Documents mixing plain keys cannot be rendered.
func operators(field string, value any) (map[string]any, bool, error) {
	var doc map[string]any
	switch v := value.(type) {
	case bson.M:
		doc = v
	case map[string]any:
		doc = v
	default:
		return nil, false, nil
	}
	for k := range doc {
		if !strings.HasPrefix(k, "$") {
			return nil, false, fmt.Errorf("%w: %s is an embedded document", ErrUnsupportedCondition, field)
		}
	}
	return doc, true, nil
}

func sortedOps(ops map[string]any) []string {
	out := make([]string, 0, len(ops))
	for op := range ops {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

func condition(column clause.Column, op string, value any) (clause.Expression, error) {
	switch op {
	case criteria.OpIn:
		return clause.IN{Column: column, Values: sqlValues(value)}, nil
	case criteria.OpNin:
		return clause.Not(clause.IN{Column: column, Values: sqlValues(value)}), nil
	case criteria.OpNe:
		return clause.Neq{Column: column, Value: sqlValue(value)}, nil
	default:
		return nil, ErrUnsupportedCondition
	}
}

func sqlValues(value any) []any {
	values, ok := value.([]any)
	if !ok {
		return []any{sqlValue(value)}
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = sqlValue(v)
	}
	return out
}

// sqlValue stores object ids as their hex form.
func sqlValue(v any) any {
	if id, ok := v.(bson.ObjectId); ok {
		return id.Hex()
	}
	return v
}

// Scope returns a GORM scope applying the conditions, sort, limit and skip of
// c. Conditions that cannot be rendered are added to the statement errors.
func Scope(c criteria.Criteria, columns ColumnMapper) func(*gorm.DB) *gorm.DB {
	if columns == nil {
		columns = DefaultColumns
	}
	return func(db *gorm.DB) *gorm.DB {
		exprs, err := Conditions(c, columns)
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		for _, expr := range exprs {
			db = db.Where(expr)
		}
		if s, ok := c.Sort(); ok {
			for _, f := range s {
				db = db.Order(clause.OrderByColumn{
					Column: clause.Column{Name: columns(f.Field)},
					Desc:   f.Direction == criteria.SortDesc,
				})
			}
		}
		if limit, ok := c.LimitValue(); ok {
			db = db.Limit(limit)
		}
		if skip, ok := c.SkipValue(); ok {
			db = db.Offset(skip)
		}
		return db
	}
}

// Explain renders the SELECT statement c describes against its target's
// collection table without executing it.
func Explain(ctx context.Context, db Database, c criteria.Criteria) (string, error) {
	columns := db.Columns()
	if _, err := Conditions(c, columns); err != nil {
		return "", err
	}

	table := c.Target().Collection()
	if table == "" {
		return "", fmt.Errorf("%w: criteria has no target collection", ErrUnsupportedCondition)
	}

	sql := db.Session(ctx).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return tx.Table(table).Scopes(Scope(c, columns)).Find(&rows)
	})
	return sql, nil
}
