package filterbar

import nt "joinfilter/entity"

// AnnotatedMsg carries freshly annotated filters and the edit generation they were taken from
type AnnotatedMsg struct {
	Filters    nt.Filters
	Generation int
}

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}
