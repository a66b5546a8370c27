package criteria

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrUnsupportedOption indicates a passthrough option the driver does not accept.
var ErrUnsupportedOption = errors.New("unsupported option")

// ErrUnknownPolicy indicates an option policy name that is not recognised.
var ErrUnknownPolicy = errors.New("unknown option policy")

// PassthroughOptions lists the driver options accepted by StrictFilter and
// LenientFilter when no explicit list is given.
var PassthroughOptions = []string{
	"batch_size",
	"collation",
	"comment",
	"fields",
	"hint",
	"max_scan",
	"max_time_ms",
	"no_cursor_timeout",
	"projection",
	"read",
	"snapshot",
	"timeout",
	"transformer",
}

// OptionFilter validates passthrough options. It returns the options that
// remain, or an error when unsupported options are rejected.
type OptionFilter interface {
	FilterOptions(extra map[string]any) (map[string]any, error)
}

// PermissiveFilter accepts every option.
type PermissiveFilter struct{}

// FilterOptions returns extra unchanged.
func (PermissiveFilter) FilterOptions(extra map[string]any) (map[string]any, error) {
	return extra, nil
}

// StrictFilter rejects any option outside its allowed set.
type StrictFilter struct {
	allowed map[string]struct{}
}

// NewStrictFilter creates a StrictFilter. Without names it allows PassthroughOptions.
func NewStrictFilter(allowed ...string) StrictFilter {
	return StrictFilter{allowed: allowedSet(allowed)}
}

// FilterOptions returns a copy of extra, or an error listing every unsupported key.
func (f StrictFilter) FilterOptions(extra map[string]any) (map[string]any, error) {
	var result *multierror.Error
	for _, key := range sortedKeys(extra) {
		if _, ok := f.allowed[key]; !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnsupportedOption, key))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return maps.Clone(extra), nil
}

// LenientFilter drops options outside its allowed set and logs them.
type LenientFilter struct {
	allowed map[string]struct{}
	logger  *slog.Logger
}

// NewLenientFilter creates a LenientFilter. Without names it allows PassthroughOptions.
func NewLenientFilter(logger *slog.Logger, allowed ...string) LenientFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return LenientFilter{allowed: allowedSet(allowed), logger: logger}
}

// FilterOptions returns extra without unsupported keys.
func (f LenientFilter) FilterOptions(extra map[string]any) (map[string]any, error) {
	if extra == nil {
		return nil, nil
	}
	out := make(map[string]any, len(extra))
	for _, key := range sortedKeys(extra) {
		if _, ok := f.allowed[key]; !ok {
			f.logger.Warn("dropping unsupported option", "option", key)
			continue
		}
		out[key] = extra[key]
	}
	return out, nil
}

// Option policies.
const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
	PolicyLenient    = "lenient"
)

// FilterForPolicy returns the OptionFilter for a policy name. Names in extra
// are accepted in addition to PassthroughOptions.
func FilterForPolicy(policy string, logger *slog.Logger, extra ...string) (OptionFilter, error) {
	var allowed []string
	if len(extra) > 0 {
		allowed = append(slices.Clone(PassthroughOptions), extra...)
	}

	switch strings.ToLower(policy) {
	case "", PolicyPermissive:
		return PermissiveFilter{}, nil
	case PolicyStrict:
		return NewStrictFilter(allowed...), nil
	case PolicyLenient:
		return NewLenientFilter(logger, allowed...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

func allowedSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		names = PassthroughOptions
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
