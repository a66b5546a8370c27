package identity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Integer coerces identifiers into int64 values. It accepts any integer kind,
// whole floats and decimal strings.
type Integer struct{}

// CoerceID converts raw into an int64.
func (Integer) CoerceID(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), nil
		}
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, nil
		}
	}
	return nil, invalid(raw, "integer id")
}

// CoerceIDs converts every element of raw.
func (i Integer) CoerceIDs(raw []any) ([]any, error) {
	return coerceAll(i.CoerceID, raw)
}

// Text coerces identifiers into non-empty strings.
type Text struct{}

// CoerceID converts raw into a string.
func (Text) CoerceID(raw any) (any, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprint(v)
	}
	if s == "" {
		return nil, invalid(raw, "string id")
	}
	return s, nil
}

// CoerceIDs converts every element of raw.
func (t Text) CoerceIDs(raw []any) ([]any, error) {
	return coerceAll(t.CoerceID, raw)
}
