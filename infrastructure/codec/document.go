package codec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/helixml/criteria/domain/criteria"
)

// Target names the document type a document is scoped to.
type Target struct {
	Name       string `yaml:"name"`
	ID         string `yaml:"id"`
	Collection string `yaml:"collection"`
	IDField    string `yaml:"id_field"`
	TypeField  string `yaml:"type_field"`
}

// Document is the serialized form of a criteria.
type Document struct {
	Target     Target           `yaml:"target"`
	IDs        []any            `yaml:"ids"`
	Types      []string         `yaml:"types"`
	Where      map[string]any   `yaml:"where"`
	AnyIn      map[string][]any `yaml:"any_in"`
	AllIn      map[string][]any `yaml:"all_in"`
	NotIn      map[string][]any `yaml:"not_in"`
	Excludes   map[string]any   `yaml:"excludes"`
	Ascending  []string         `yaml:"ascending"`
	Descending []string         `yaml:"descending"`
	OrderBy    OrderBy          `yaml:"order_by"`
	Limit      *Limit           `yaml:"limit"`
	Skip       *int             `yaml:"skip"`
	Cache      bool             `yaml:"cache"`
	Enslave    bool             `yaml:"enslave"`
	Extras     map[string]any   `yaml:"extras"`
}

// OrderBy holds sort pairs in the order they appear in the document.
type OrderBy criteria.OrderPairs

// UnmarshalYAML accepts a mapping of field to direction, or a sequence whose
// items are either a "field [direction]" string or such a mapping.
func (o *OrderBy) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		pairs, err := mappingPairs(node)
		if err != nil {
			return err
		}
		*o = pairs
	case yaml.SequenceNode:
		var out OrderBy
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				f, err := parseOrderTerm(item.Value)
				if err != nil {
					return err
				}
				out = append(out, f)
			case yaml.MappingNode:
				pairs, err := mappingPairs(item)
				if err != nil {
					return err
				}
				out = append(out, pairs...)
			default:
				return fmt.Errorf("%w: order_by line %d: unexpected item", ErrInvalidDocument, item.Line)
			}
		}
		*o = out
	default:
		return fmt.Errorf("%w: order_by line %d: expected mapping or sequence", ErrInvalidDocument, node.Line)
	}
	return nil
}

func mappingPairs(node *yaml.Node) (OrderBy, error) {
	out := make(OrderBy, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		dir, err := criteria.ParseDirection(value.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: order_by.%s: %v", ErrInvalidDocument, key.Value, err)
		}
		out = append(out, criteria.SortField{Field: key.Value, Direction: dir})
	}
	return out, nil
}

func parseOrderTerm(term string) (criteria.SortField, error) {
	parts := strings.Fields(term)
	switch len(parts) {
	case 1:
		return criteria.SortField{Field: parts[0], Direction: criteria.SortAsc}, nil
	case 2:
		dir, err := criteria.ParseDirection(parts[1])
		if err != nil {
			return criteria.SortField{}, fmt.Errorf("%w: order_by %q: %v", ErrInvalidDocument, term, err)
		}
		return criteria.SortField{Field: parts[0], Direction: dir}, nil
	default:
		return criteria.SortField{}, fmt.Errorf("%w: order_by %q: expected \"field [direction]\"", ErrInvalidDocument, term)
	}
}

// Limit is either an explicit row count or the default limit.
type Limit struct {
	Value   int
	Default bool
}

// UnmarshalYAML accepts an integer or the word "default".
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Value == "default" {
		*l = Limit{Default: true}
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("%w: limit: %v", ErrInvalidDocument, err)
	}
	*l = Limit{Value: n}
	return nil
}
