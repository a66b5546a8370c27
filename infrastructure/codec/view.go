package codec

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/helixml/criteria/domain/criteria"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SortView is one rendered sort field.
type SortView struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// View is the read-only rendering of a criteria.
type View struct {
	Target     string         `json:"target"`
	Collection string         `json:"collection"`
	Selector   map[string]any `json:"selector"`
	Sort       []SortView     `json:"sort,omitempty"`
	Limit      *int           `json:"limit,omitempty"`
	Skip       *int           `json:"skip,omitempty"`
	Cache      bool           `json:"cache"`
	Enslave    bool           `json:"enslave"`
	Extras     map[string]any `json:"extras,omitempty"`
}

// NewView renders c.
func NewView(c criteria.Criteria) View {
	target := c.Target()
	v := View{
		Target:     target.Name(),
		Collection: target.Collection(),
		Selector:   c.Selector(),
		Cache:      c.Cached(),
		Enslave:    c.Enslaved(),
		Extras:     c.ExtraOptions(),
	}
	if sort, ok := c.Sort(); ok {
		v.Sort = make([]SortView, len(sort))
		for i, f := range sort {
			v.Sort[i] = SortView{Field: f.Field, Direction: f.Direction.String()}
		}
	}
	if limit, ok := c.LimitValue(); ok {
		v.Limit = &limit
	}
	if skip, ok := c.SkipValue(); ok {
		v.Skip = &skip
	}
	return v
}

// Encode renders c as indented JSON.
func Encode(c criteria.Criteria) ([]byte, error) {
	data, err := json.MarshalIndent(NewView(c), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode criteria: %w", err)
	}
	return data, nil
}
