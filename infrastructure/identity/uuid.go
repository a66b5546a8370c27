package identity

import "github.com/google/uuid"

// UUID coerces identifiers into uuid.UUID values.
type UUID struct{}

// CoerceID converts raw into a uuid.UUID.
func (UUID) CoerceID(raw any) (any, error) {
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id, nil
		}
	case []byte:
		if id, err := uuid.FromBytes(v); err == nil {
			return id, nil
		}
	}
	return nil, invalid(raw, "uuid")
}

// CoerceIDs converts every element of raw.
func (u UUID) CoerceIDs(raw []any) ([]any, error) {
	return coerceAll(u.CoerceID, raw)
}
