// Package criteria provides an immutable builder for document store queries.
//
// A Criteria accumulates a selector (field conditions) and execution options
// (sort, pagination, flags, passthrough driver options). Every method returns
// a new Criteria and leaves its receiver untouched, so a chain can be branched
// at any point:
//
//	base := criteria.New(browsers).Where("vendor", "mozilla")
//	recent := base.Descending("released_at").Limit(5)
//	stable := base.Type("Stable").Ascending("name")
//
// Neither branch observes the other.
package criteria

import (
	"maps"
	"slices"

	"github.com/globalsign/mgo/bson"

	"github.com/helixml/criteria/domain/document"
)

// Pagination defaults.
const (
	DefaultLimit = 20
	DefaultSkip  = 0
)

// Options holds execution directives for a query.
type Options struct {
	// Sort is nil until ordering is requested.
	Sort    Sort
	Limit   *int
	Skip    *int
	Cache   bool
	Enslave bool
	// Extra holds passthrough driver options.
	Extra map[string]any
}

func (o Options) clone() Options {
	out := o
	if o.Sort != nil {
		out.Sort = slices.Clone(o.Sort)
	}
	if o.Limit != nil {
		n := *o.Limit
		out.Limit = &n
	}
	if o.Skip != nil {
		n := *o.Skip
		out.Skip = &n
	}
	out.Extra = maps.Clone(o.Extra)
	return out
}

// appendSort adds fields to the sort, allocating it on the first non-empty call.
func (o *Options) appendSort(fields []SortField) {
	if len(fields) == 0 {
		return
	}
	if o.Sort == nil {
		o.Sort = make(Sort, 0, len(fields))
	}
	o.Sort = append(o.Sort, fields...)
}

// Criteria is an immutable description of a query against one document type.
type Criteria struct {
	target   document.Type
	selector bson.M
	options  Options
	filter   OptionFilter
}

// Option configures a Criteria at construction.
type Option func(*Criteria)

// WithOptionFilter sets the validator applied to passthrough options.
func WithOptionFilter(f OptionFilter) Option {
	return func(c *Criteria) { c.filter = f }
}

// WithSelector seeds the selector. The map is copied.
func WithSelector(selector bson.M) Option {
	return func(c *Criteria) {
		for k, v := range selector {
			c.selector[k] = v
		}
	}
}

// New creates an empty Criteria scoped to target.
func New(target document.Type, opts ...Option) Criteria {
	c := Criteria{
		target:   target,
		selector: bson.M{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// clone copies the selector and option containers, applies mutate to the
// copy and returns it. The receiver is never modified.
func (c Criteria) clone(mutate func(*Criteria)) Criteria {
	next := c
	next.selector = make(bson.M, len(c.selector)+1)
	for k, v := range c.selector {
		next.selector[k] = v
	}
	next.options = c.options.clone()
	mutate(&next)
	return next
}

// Target returns the document type this criteria is scoped to.
func (c Criteria) Target() document.Type {
	if c.target.Name() == "" && c.target.Collection() == "" {
		return document.Default
	}
	return c.target
}

// Selector returns a copy of the selector.
func (c Criteria) Selector() bson.M {
	out := make(bson.M, len(c.selector))
	for k, v := range c.selector {
		out[k] = v
	}
	return out
}

// Options returns a copy of the execution options.
func (c Criteria) Options() Options {
	return c.options.clone()
}

// Sort returns the requested ordering and whether any was requested.
func (c Criteria) Sort() (Sort, bool) {
	if c.options.Sort == nil {
		return nil, false
	}
	return slices.Clone(c.options.Sort), true
}

// LimitValue returns the limit and whether one was set.
func (c Criteria) LimitValue() (int, bool) {
	if c.options.Limit == nil {
		return 0, false
	}
	return *c.options.Limit, true
}

// SkipValue returns the number of documents to skip and whether it was set.
func (c Criteria) SkipValue() (int, bool) {
	if c.options.Skip == nil {
		return 0, false
	}
	return *c.options.Skip, true
}

// ExtraOptions returns a copy of the passthrough options.
func (c Criteria) ExtraOptions() map[string]any {
	return maps.Clone(c.options.Extra)
}

// Cache marks the query results as cacheable.
func (c Criteria) Cache() Criteria {
	return c.clone(func(n *Criteria) { n.options.Cache = true })
}

// Cached reports whether Cache was called.
func (c Criteria) Cached() bool {
	return c.options.Cache
}

// Enslave marks the query as safe to read from a replica.
func (c Criteria) Enslave() Criteria {
	return c.clone(func(n *Criteria) { n.options.Enslave = true })
}

// Enslaved reports whether Enslave was called.
func (c Criteria) Enslaved() bool {
	return c.options.Enslave
}

func (c Criteria) optionFilter() OptionFilter {
	if c.filter == nil {
		return PermissiveFilter{}
	}
	return c.filter
}
