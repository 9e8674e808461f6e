package entity

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Strategy names the fetch strategy a request is dispatched with.
type Strategy string

// Source is the data source a request fetches for, an index pattern or saved search say.
// Once disabled, responses for it are to be discarded.
type Source struct {
	ID       string
	disabled atomic.Bool
}

// NewSource creates an enabled source.
func NewSource(id string) *Source {
	return &Source{ID: id}
}

// Disable marks the source inactive.
func (src *Source) Disable() {
	src.disabled.Store(true)
}

// Disabled reports whether the source has been marked inactive.
func (src *Source) Disabled() bool {
	if src == nil {
		return false
	}
	return src.disabled.Load()
}

// Request is a pending fetch.
type Request struct {
	ID       string
	Source   *Source
	Strategy Strategy
	Started  bool
	// CanStart gates dispatch, nil means always.
	CanStart func() bool
}

// NewRequest creates a request with a fresh id.
func NewRequest(src *Source, strategy Strategy) *Request {
	return &Request{
		ID:       uuid.NewString(),
		Source:   src,
		Strategy: strategy,
	}
}

// Stale reports whether the request's response should be ignored.
func (req *Request) Stale() bool {
	return req.Source.Disabled()
}

func (req *Request) canStart() bool {
	if req.CanStart == nil {
		return true
	}
	return req.CanStart()
}

// Ready reports whether the request may be dispatched now.
func (req *Request) Ready() bool {
	return req.canStart() && !req.Source.Disabled()
}
