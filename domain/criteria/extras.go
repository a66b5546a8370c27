package criteria

import (
	"fmt"
	"math"
	"slices"

	"github.com/mitchellh/copystructure"
)

// Recognised option keys. Other keys passed to Extras are passthrough options.
const (
	OptionSort    = "sort"
	OptionLimit   = "limit"
	OptionSkip    = "skip"
	OptionCache   = "cache"
	OptionEnslave = "enslave"
)

// Extras merges raw options into a copy of the criteria and runs the option
// filter over the resulting passthrough options. Recognised keys with values
// of the expected shape replace the typed option; everything else is kept as
// a passthrough option, later values overwriting earlier ones.
func (c Criteria) Extras(extras map[string]any) (Criteria, error) {
	copied, err := copystructure.Copy(extras)
	if err != nil {
		return Criteria{}, fmt.Errorf("copy extras: %w", err)
	}
	raw, _ := copied.(map[string]any)

	filter := c.optionFilter()
	var filterErr error
	next := c.clone(func(n *Criteria) {
		for key, value := range raw {
			n.options.merge(key, value)
		}
		filtered, err := filter.FilterOptions(n.options.Extra)
		if err != nil {
			filterErr = err
			return
		}
		n.options.Extra = filtered
	})
	if filterErr != nil {
		return Criteria{}, filterErr
	}
	return next, nil
}

func (o *Options) merge(key string, value any) {
	switch key {
	case OptionLimit:
		if n, ok := asInt(value); ok {
			o.Limit = &n
			delete(o.Extra, key)
			return
		}
	case OptionSkip:
		if n, ok := asInt(value); ok {
			o.Skip = &n
			delete(o.Extra, key)
			return
		}
	case OptionCache:
		if b, ok := value.(bool); ok {
			o.Cache = b
			delete(o.Extra, key)
			return
		}
	case OptionEnslave:
		if b, ok := value.(bool); ok {
			o.Enslave = b
			delete(o.Extra, key)
			return
		}
	case OptionSort:
		if s, ok := asSort(value); ok {
			o.Sort = nil
			o.appendSort(s)
			delete(o.Extra, key)
			return
		}
	}

	if o.Extra == nil {
		o.Extra = make(map[string]any)
	}
	o.Extra[key] = value
}

// asInt accepts non-negative whole numbers that fit in an int. Anything else
// stays a passthrough option.
func asInt(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x < 0 || x >= math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func asSort(v any) ([]SortField, bool) {
	switch s := v.(type) {
	case Sort:
		return slices.Clone(s), true
	case []SortField:
		return slices.Clone(s), true
	case OrderSpec:
		return s.sortFields(), true
	}
	return nil, false
}
