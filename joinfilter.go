// Package joinfilter reconciles dashboard filter arrays around relational join filters.
package joinfilter

import (
	"context"

	"joinfilter/annotate"
	"joinfilter/compare"
	nt "joinfilter/entity"
	"joinfilter/merge"
)

// Config specifies how a Reconciler behaves.
type Config struct {
	// Page is the class of page filters are shown on: dashboard, visualize or other
	Page string `yaml:"page"`
	// StripMeta removes meta from join and join_set candidates before merging
	StripMeta bool `yaml:"strip_meta"`
	// Ignore names volatile fields skipped when comparing filters
	Ignore []string `yaml:"ignore,omitempty"`
}

// Reconciler keeps a caller's filters consistent and annotated.
type Reconciler struct {
	annotator *annotate.Annotator
	page      annotate.Page
	stripMeta bool
	ignore    []string
	logger    nt.Logger
}

// New creates a Reconciler from config.
func (cfg *Config) New(store annotate.QueryStore, lgr nt.Logger) *Reconciler {

	return &Reconciler{
		annotator: annotate.New(store, lgr),
		page:      ParsePage(cfg.Page),
		stripMeta: cfg.StripMeta,
		ignore:    cfg.Ignore,
		logger:    lgr,
	}
}

// ParsePage maps a page name to its class.
func ParsePage(name string) annotate.Page {

	switch name {
	case "dashboard":
		return annotate.PageDashboard
	case "visualize":
		return annotate.PageVisualize
	}
	return annotate.PageOther
}

// Apply merges candidate into filters.
// Join and join_set candidates replace their one counterpart, anything else is
// appended unless an equal filter is already present.
func (rc *Reconciler) Apply(ctx context.Context, filters *nt.Filters, candidate nt.Filter) {

	if filters == nil || candidate == nil {
		return
	}

	kind := candidate.Kind()
	switch kind {
	case nt.Join:
		merge.JoinFilter(filters, candidate, rc.stripMeta)
	case nt.JoinSet:
		merge.JoinSetFilter(filters, candidate, rc.stripMeta)
	default:
		for _, flt := range *filters {
			if compare.Equals(flt, candidate, compare.Ignore(rc.ignore...)) {
				rc.logger.Info(ctx, "skipping duplicate filter", "kind", kind, "label", candidate.Label())
				return
			}
		}
		*filters = append(*filters, candidate)
	}

	rc.logger.Info(ctx, "applied filter", "kind", kind, "count", len(*filters))
}

// Annotate marks filters depending on the selected entity.
func (rc *Reconciler) Annotate(ctx context.Context, filters nt.Filters, sel annotate.Selection) (nt.Filters, error) {

	annotated, err := rc.annotator.Annotate(ctx, filters, sel, rc.page)
	if err != nil {
		return nil, err
	}

	rc.logger.Info(ctx, "annotated filters", "count", len(annotated), "page", rc.page, "entity", sel.URI)
	return annotated, nil
}

// Changed reports whether two filter arrays differ, ignoring order and volatile fields.
func (rc *Reconciler) Changed(a, b nt.Filters) bool {
	return !compare.ArrayEquals(a, b, compare.Ignore(rc.ignore...))
}
