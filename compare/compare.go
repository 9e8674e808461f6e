// Package compare tests filters for structural equality.
package compare

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	nt "joinfilter/entity"
)

// Option adjusts a comparison.
type Option func(*options)

type options struct {
	ignore map[string]bool
}

// Ignore names volatile fields to skip, at any depth.
func Ignore(fields ...string) Option {
	return func(opts *options) {
		for _, field := range fields {
			opts.ignore[field] = true
		}
	}
}

func newOptions(opts []Option) *options {

	o := &options{ignore: map[string]bool{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) cmpOptions() []cmp.Option {

	if len(o.ignore) == 0 {
		return nil
	}
	return []cmp.Option{
		cmpopts.IgnoreMapEntries(func(key string, _ any) bool {
			return o.ignore[key]
		}),
	}
}

// Equals reports whether a and b are deep-equal once ignored fields are dropped.
// Nil filters equal only each other.
func Equals(a, b nt.Filter, opts ...Option) bool {
	return equals(a, b, newOptions(opts).cmpOptions())
}

func equals(a, b nt.Filter, cmpOpts []cmp.Option) (equal bool) {

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// cmp panics on values it cannot inspect, e.g. structs with unexported fields
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	return cmp.Equal(map[string]any(a), map[string]any(b), cmpOpts...)
}

// ArrayEquals reports whether a and b have the same length and every filter in b
// has an equal counterpart in a.
// Order is ignored, duplicates are not counted.
func ArrayEquals(a, b nt.Filters, opts ...Option) bool {

	if len(a) != len(b) {
		return false
	}
	cmpOpts := newOptions(opts).cmpOptions()

	for _, fb := range b {
		found := false
		for _, fa := range a {
			if equals(fa, fb, cmpOpts) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
