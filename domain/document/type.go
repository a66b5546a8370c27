// Package document describes the document types a criteria can be scoped to.
package document

import (
	"errors"
	"strings"
)

// Reserved field names.
const (
	DefaultIDField   = "_id"
	DefaultTypeField = "_type"
)

// ErrInvalidIdentifier indicates a raw identifier could not be coerced into
// the native identifier type of a document type.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// IDCoercer converts caller-supplied identifier representations into the
// store's native identifier type.
type IDCoercer interface {
	CoerceID(raw any) (any, error)
	CoerceIDs(raw []any) ([]any, error)
}

// Type describes a document type: its name, the collection it lives in, its
// reserved fields and how its identifiers are coerced.
type Type struct {
	name       string
	collection string
	idField    string
	typeField  string
	coercer    IDCoercer
}

// TypeOption configures a Type.
type TypeOption func(*Type)

// WithIDField overrides the identifier field name.
func WithIDField(field string) TypeOption {
	return func(t *Type) { t.idField = field }
}

// WithTypeField overrides the type discriminator field name.
func WithTypeField(field string) TypeOption {
	return func(t *Type) { t.typeField = field }
}

// WithCollection overrides the collection name.
func WithCollection(collection string) TypeOption {
	return func(t *Type) { t.collection = collection }
}

// NewType creates a Type. A nil coercer leaves identifiers unchanged.
func NewType(name string, coercer IDCoercer, opts ...TypeOption) Type {
	if coercer == nil {
		coercer = Passthrough{}
	}
	t := Type{
		name:       name,
		collection: strings.ToLower(name),
		idField:    DefaultIDField,
		typeField:  DefaultTypeField,
		coercer:    coercer,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Default is the type used by criteria that were not scoped to one.
var Default = NewType("", Passthrough{})

// Name returns the type name.
func (t Type) Name() string { return t.name }

// Collection returns the collection (or table) holding documents of this type.
func (t Type) Collection() string { return t.collection }

// IDField returns the reserved identifier field name.
func (t Type) IDField() string {
	if t.idField == "" {
		return DefaultIDField
	}
	return t.idField
}

// TypeField returns the reserved type discriminator field name.
func (t Type) TypeField() string {
	if t.typeField == "" {
		return DefaultTypeField
	}
	return t.typeField
}

// CoerceID converts a single raw identifier.
func (t Type) CoerceID(raw any) (any, error) {
	return t.idCoercer().CoerceID(raw)
}

// CoerceIDs converts a sequence of raw identifiers.
func (t Type) CoerceIDs(raw []any) ([]any, error) {
	return t.idCoercer().CoerceIDs(raw)
}

func (t Type) idCoercer() IDCoercer {
	if t.coercer == nil {
		return Passthrough{}
	}
	return t.coercer
}

// Passthrough leaves identifiers as given.
type Passthrough struct{}

// CoerceID returns raw unchanged.
func (Passthrough) CoerceID(raw any) (any, error) {
	return raw, nil
}

// CoerceIDs returns a copy of raw.
func (Passthrough) CoerceIDs(raw []any) ([]any, error) {
	result := make([]any, len(raw))
	copy(result, raw)
	return result, nil
}
