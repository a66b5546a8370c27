package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/helixml/criteria/domain/document"
	"github.com/helixml/criteria/infrastructure/identity"
)

// TypesFile lists the document types known ahead of time.
//
//	types:
//	  - {name: Browser, id: object_id, collection: browsers}
//	  - {name: Tab, id: uuid}
type TypesFile struct {
	Types []Target `yaml:"types"`
}

// ReadRegistry builds a registry from a YAML or JSON types file. Unknown keys,
// unnamed types and repeated names are rejected.
func ReadRegistry(r io.Reader) (*document.Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file TypesFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: types: %v", ErrInvalidDocument, err)
	}

	registry := document.NewRegistry()
	for i, t := range file.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: types[%d]: missing name", ErrInvalidDocument, i)
		}
		if _, err := registry.Lookup(t.Name); err == nil {
			return nil, fmt.Errorf("%w: types[%d]: duplicate type %s", ErrInvalidDocument, i, t.Name)
		}
		typ, err := targetType(t)
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		registry.Register(typ)
	}
	return registry, nil
}

func targetType(t Target) (document.Type, error) {
	coercer, err := identity.ForKind(t.ID)
	if err != nil {
		return document.Type{}, fmt.Errorf("%w: target: %v", ErrInvalidDocument, err)
	}

	var opts []document.TypeOption
	if t.Collection != "" {
		opts = append(opts, document.WithCollection(t.Collection))
	}
	if t.IDField != "" {
		opts = append(opts, document.WithIDField(t.IDField))
	}
	if t.TypeField != "" {
		opts = append(opts, document.WithTypeField(t.TypeField))
	}
	return document.NewType(t.Name, coercer, opts...), nil
}
