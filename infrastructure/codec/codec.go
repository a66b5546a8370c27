// Package codec reads and writes criteria as YAML or JSON documents.
package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/helixml/criteria/domain/criteria"
	"github.com/helixml/criteria/domain/document"
)

// ErrInvalidDocument indicates a document that is malformed or does not
// satisfy the criteria document schema.
var ErrInvalidDocument = errors.New("invalid criteria document")

// Decoder builds criteria from documents.
type Decoder struct {
	registry     *document.Registry
	filter       criteria.OptionFilter
	logger       *slog.Logger
	defaultLimit int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithRegistry resolves document targets through registry before falling
// back to the target description in the document.
func WithRegistry(registry *document.Registry) DecoderOption {
	return func(d *Decoder) { d.registry = registry }
}

// WithOptionFilter sets the option filter given to decoded criteria.
func WithOptionFilter(filter criteria.OptionFilter) DecoderOption {
	return func(d *Decoder) { d.filter = filter }
}

// WithDefaultLimit sets the row count used for "limit: default". Without it
// criteria.DefaultLimit applies.
func WithDefaultLimit(n int) DecoderOption {
	return func(d *Decoder) { d.defaultLimit = n }
}

// WithLogger sets the decoder logger.
func WithLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) { d.logger = logger }
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) Decoder {
	d := Decoder{
		filter: criteria.PermissiveFilter{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Read decodes the document read from r.
func (d Decoder) Read(r io.Reader) (criteria.Criteria, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("read document: %w", err)
	}
	return d.Decode(data)
}

// Decode validates a YAML or JSON document and builds the criteria it
// describes.
func (d Decoder) Decode(data []byte) (criteria.Criteria, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return criteria.Criteria{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return criteria.Criteria{}, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	var generic any
	if err := root.Decode(&generic); err != nil {
		return criteria.Criteria{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := validate(generic); err != nil {
		return criteria.Criteria{}, err
	}

	var doc Document
	if err := root.Decode(&doc); err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return criteria.Criteria{}, err
		}
		return criteria.Criteria{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return d.Build(doc)
}

// Build turns a decoded document into criteria.
func (d Decoder) Build(doc Document) (criteria.Criteria, error) {
	target, err := d.resolve(doc.Target)
	if err != nil {
		return criteria.Criteria{}, err
	}

	c := criteria.New(target, criteria.WithOptionFilter(d.filter))

	if doc.Types != nil {
		c = c.Type(doc.Types...)
	}
	if doc.IDs != nil {
		c, err = c.ForIDs(doc.IDs...)
		if err != nil {
			return criteria.Criteria{}, fmt.Errorf("ids: %w", err)
		}
	}
	for _, field := range keys(doc.Where) {
		c = c.Where(field, doc.Where[field])
	}
	for _, field := range keys(doc.AnyIn) {
		c = c.AnyIn(field, doc.AnyIn[field]...)
	}
	for _, field := range keys(doc.AllIn) {
		c = c.AllIn(field, doc.AllIn[field]...)
	}
	for _, field := range keys(doc.NotIn) {
		c = c.NotIn(field, doc.NotIn[field]...)
	}
	for _, field := range keys(doc.Excludes) {
		c = c.Excludes(field, doc.Excludes[field])
	}

	c = c.Ascending(doc.Ascending...).
		Descending(doc.Descending...).
		OrderBy(criteria.OrderPairs(doc.OrderBy))

	if doc.Limit != nil {
		switch {
		case doc.Limit.Default && d.defaultLimit > 0:
			c = c.Limit(d.defaultLimit)
		case doc.Limit.Default:
			c = c.Limit()
		default:
			c = c.Limit(doc.Limit.Value)
		}
	}
	if doc.Skip != nil {
		c = c.Skip(*doc.Skip)
	}
	if doc.Cache {
		c = c.Cache()
	}
	if doc.Enslave {
		c = c.Enslave()
	}
	if doc.Extras != nil {
		c, err = c.Extras(doc.Extras)
		if err != nil {
			return criteria.Criteria{}, fmt.Errorf("extras: %w", err)
		}
	}

	d.logger.Debug("decoded criteria",
		slog.String("target", target.Name()),
		slog.Int("conditions", len(c.Selector())),
	)
	return c, nil
}

func (d Decoder) resolve(t Target) (document.Type, error) {
	if d.registry != nil {
		if typ, err := d.registry.Lookup(t.Name); err == nil {
			return typ, nil
		}
	}

	return targetType(t)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
