// Package merge keeps a filter array down to one join and one join_set filter.
//
// The two mergers are deliberately separate functions; join and join_set
// filters are never conflated.
package merge

import (
	nt "joinfilter/entity"
)

// JoinFilter replaces the first join filter in filters with candidate, or appends
// candidate when there is none.
// Any further join filters are dropped so exactly one survives.
// A nil filters or candidate is ignored, and with stripMeta candidate's meta is removed first.
func JoinFilter(filters *nt.Filters, candidate nt.Filter, stripMeta bool) {

	if filters == nil || candidate == nil {
		return
	}
	if stripMeta {
		candidate.StripMeta()
	}

	replaced := false
	kept := (*filters)[:0]
	for _, flt := range *filters {
		if flt.Kind() != nt.Join {
			kept = append(kept, flt)
			continue
		}
		if !replaced {
			kept = append(kept, candidate)
			replaced = true
		}
	}

	if !replaced {
		kept = append(kept, candidate)
	}
	*filters = kept
}

// JoinSetFilter replaces the first join_set filter in filters with candidate, or
// appends candidate when there is none.
// Any further join_set filters are dropped so exactly one survives.
// A nil filters or candidate is ignored, and with stripMeta candidate's meta is removed first.
func JoinSetFilter(filters *nt.Filters, candidate nt.Filter, stripMeta bool) {

	if filters == nil || candidate == nil {
		return
	}
	if stripMeta {
		candidate.StripMeta()
	}

	replaced := false
	kept := (*filters)[:0]
	for _, flt := range *filters {
		if flt.Kind() != nt.JoinSet {
			kept = append(kept, flt)
			continue
		}
		if !replaced {
			kept = append(kept, candidate)
			replaced = true
		}
	}

	if !replaced {
		kept = append(kept, candidate)
	}
	*filters = kept
}
