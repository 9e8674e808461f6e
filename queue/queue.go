// Package queue holds pending fetch requests and drops those whose source goes away.
//
// Invalidation is advisory: a request already in flight is not aborted, its
// source is disabled and the fetch layer discards the response on arrival.
package queue

import (
	"slices"
	"sync"

	nt "joinfilter/entity"
)

// Queue is a pending request queue shared by the fetch and source lifecycle sides.
type Queue struct {
	mu       sync.Mutex
	requests []*nt.Request
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues requests.
func (qu *Queue) Push(reqs ...*nt.Request) {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	qu.requests = append(qu.requests, reqs...)
}

// Remove dequeues a request, typically once it has been dispatched.
func (qu *Queue) Remove(req *nt.Request) {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	qu.requests = slices.DeleteFunc(qu.requests, func(queued *nt.Request) bool {
		return queued == req
	})
}

// Start marks a request as dispatched.
func (qu *Queue) Start(req *nt.Request) {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	req.Started = true
}

// Len returns the number of queued requests.
func (qu *Queue) Len() int {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	return len(qu.requests)
}

// GetInactive returns requests not yet started whose source is still enabled,
// limited to the given strategies when any are given.
func (qu *Queue) GetInactive(strategies ...nt.Strategy) []*nt.Request {

	return qu.filter(strategies, func(req *nt.Request) bool {
		return !req.Started && !req.Source.Disabled()
	})
}

// Get returns requests that may start now, limited to the given strategies when
// any are given.
// CanStart is called with the queue locked and must not call back into it.
func (qu *Queue) Get(strategies ...nt.Strategy) []*nt.Request {

	return qu.filter(strategies, func(req *nt.Request) bool {
		return req.Ready()
	})
}

// MarkSourceInactive disables the source of, and removes, every request fetching
// for sourceID and returns how many were removed.
func (qu *Queue) MarkSourceInactive(sourceID string) (count int) {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	// back to front so removal does not skip the next entry
	for i := len(qu.requests) - 1; i >= 0; i-- {
		req := qu.requests[i]
		if req.Source == nil || req.Source.ID != sourceID {
			continue
		}

		req.Source.Disable()
		qu.requests = append(qu.requests[:i], qu.requests[i+1:]...)
		count++
	}
	return
}

func (qu *Queue) filter(strategies []nt.Strategy, keep func(*nt.Request) bool) (reqs []*nt.Request) {

	qu.mu.Lock()
	defer qu.mu.Unlock()

	for _, req := range qu.requests {
		if len(strategies) > 0 && !slices.Contains(strategies, req.Strategy) {
			continue
		}
		if keep(req) {
			reqs = append(reqs, req)
		}
	}
	return
}
