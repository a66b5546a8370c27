package criteria

// ForIDs restricts the criteria to documents with the given identifiers.
//
// Arguments are flattened and de-duplicated both before and after coercion.
// A single identifier becomes an equality condition on the identifier field;
// several become an inclusion condition. Identifiers are coerced through the target type, and coercion
// errors are returned unchanged.
func (c Criteria) ForIDs(ids ...any) (Criteria, error) {
	target := c.Target()
	raw := distinct(flatten(ids))

	if len(raw) == 1 {
		id, err := target.CoerceID(raw[0])
		if err != nil {
			return Criteria{}, err
		}
		return c.clone(func(n *Criteria) { n.selector[target.IDField()] = id }), nil
	}

	coerced, err := target.CoerceIDs(raw)
	if err != nil {
		return Criteria{}, err
	}
	coerced = distinct(coerced)
	if len(coerced) == 1 {
		return c.clone(func(n *Criteria) { n.selector[target.IDField()] = coerced[0] }), nil
	}
	return c.AnyIn(target.IDField(), coerced...), nil
}

// Type restricts the criteria to the given polymorphic document types.
func (c Criteria) Type(types ...string) Criteria {
	values := make([]any, len(types))
	for i, t := range types {
		values[i] = t
	}
	return c.AnyIn(c.Target().TypeField(), values...)
}
