// Package identity provides identifier coercion for document types.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/helixml/criteria/domain/document"
)

// ErrUnknownKind indicates an identifier kind that has no coercer.
var ErrUnknownKind = errors.New("unknown identifier kind")

// Identifier kinds accepted by ForKind.
const (
	KindObjectID = "object_id"
	KindUUID     = "uuid"
	KindInteger  = "integer"
	KindString   = "string"
)

// ForKind returns the coercer for an identifier kind. An empty kind leaves
// identifiers unchanged.
func ForKind(kind string) (document.IDCoercer, error) {
	switch strings.ToLower(kind) {
	case "":
		return document.Passthrough{}, nil
	case KindObjectID, "objectid":
		return ObjectID{}, nil
	case KindUUID:
		return UUID{}, nil
	case KindInteger, "int":
		return Integer{}, nil
	case KindString, "text":
		return Text{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

func invalid(raw any, kind string) error {
	return fmt.Errorf("%w: %#v is not a valid %s", document.ErrInvalidIdentifier, raw, kind)
}

// coerceAll coerces every element, collecting all failures into one error.
func coerceAll(coerce func(any) (any, error), raw []any) ([]any, error) {
	out := make([]any, 0, len(raw))
	var result *multierror.Error
	for _, r := range raw {
		id, err := coerce(r)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		out = append(out, id)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
