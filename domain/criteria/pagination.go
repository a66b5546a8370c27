package criteria

// Limit sets the maximum number of documents to return. Called without a
// value it uses DefaultLimit. Only the first value is used.
func (c Criteria) Limit(value ...int) Criteria {
	n := DefaultLimit
	if len(value) > 0 {
		n = value[0]
	}
	return c.clone(func(next *Criteria) { next.options.Limit = &n })
}

// Skip sets the number of documents to skip. Called without a value it uses
// DefaultSkip. Only the first value is used.
func (c Criteria) Skip(value ...int) Criteria {
	n := DefaultSkip
	if len(value) > 0 {
		n = value[0]
	}
	return c.clone(func(next *Criteria) { next.options.Skip = &n })
}

// Offset is an alias for Skip.
func (c Criteria) Offset(n int) Criteria {
	return c.Skip(n)
}

// OffsetValue returns the current skip without building a new Criteria.
func (c Criteria) OffsetValue() (int, bool) {
	return c.SkipValue()
}

// Paginate sets limit and skip for a 1-based page.
func (c Criteria) Paginate(page, pageSize int) Criteria {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultLimit
	}
	return c.Limit(pageSize).Skip((page - 1) * pageSize)
}
