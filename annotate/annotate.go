// Package annotate marks filters whose saved queries depend on the selected entity.
package annotate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	nt "joinfilter/entity"
)

// QueryStore finds saved queries.
type QueryStore interface {
	Find(ctx context.Context) (hits nt.QueryHits, err error)
}

// Page is the class of page the filters are shown on.
type Page int

const (
	PageOther Page = iota
	PageDashboard
	PageVisualize
)

// marking is only meaningful where entity-dependent filters are rendered
func (pg Page) marks() bool {
	return pg == PageDashboard || pg == PageVisualize
}

func (pg Page) String() string {
	switch pg {
	case PageDashboard:
		return "dashboard"
	case PageVisualize:
		return "visualize"
	}
	return "other"
}

// Selection is the currently selected entity, URI is empty when nothing is selected.
type Selection struct {
	URI      string
	Disabled bool
}

// MissingQueriesError lists query ids referenced by filters but absent from the store.
type MissingQueriesError struct {
	IDs []string
}

func (err *MissingQueriesError) Error() string {
	return fmt.Sprintf("unable to find queries: [%s]", strings.Join(err.IDs, ", "))
}

// Annotator decorates filters with entity dependency hints.
type Annotator struct {
	store  QueryStore
	logger nt.Logger
}

// New creates an Annotator.
func New(store QueryStore, lgr nt.Logger) *Annotator {
	return &Annotator{
		store:  store,
		logger: lgr,
	}
}

type lookup struct {
	depends bool
	missing string
}

// Annotate sets dependsOnSelectedEntities, dependsOnSelectedEntitiesDisabled and
// markDependOnSelectedEntities on every filter's meta and returns filters.
// Saved queries are fetched once and db filters resolved against them concurrently;
// filters are only written once all lookups succeed, so on error none are touched.
func (an *Annotator) Annotate(ctx context.Context, filters nt.Filters, sel Selection, page Page) (nt.Filters, error) {

	results := make([]lookup, len(filters))

	byID := map[string]nt.SavedQuery{}
	if referencesQueries(filters) {
		hits, err := an.store.Find(ctx)
		if err != nil {
			return nil, err
		}
		byID = hits.ByID()
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	for i, flt := range filters {
		if flt.Kind() != nt.DBFilter || flt.QueryID() == "" {
			continue
		}

		grp.Go(func() error {
			err := grpCtx.Err()
			if err != nil {
				return err
			}
			results[i] = an.resolve(grpCtx, byID, flt.QueryID())
			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return nil, err
	}

	err = missing(results)
	if err != nil {
		an.logger.Error(ctx, "filters reference missing queries", err)
		return nil, err
	}

	mark := sel.URI != "" && page.marks()
	for i, flt := range filters {
		if flt == nil {
			continue
		}
		depends := results[i].depends

		flt.SetMeta(nt.MetaDependsOnSelectedEntities, depends)
		flt.SetMeta(nt.MetaDependsOnSelectedEntitiesDisabled, depends && sel.Disabled)
		flt.SetMeta(nt.MetaMarkDependOnSelectedEntities, mark)
	}

	return filters, nil
}

func referencesQueries(filters nt.Filters) bool {

	for _, flt := range filters {
		if flt.Kind() == nt.DBFilter && flt.QueryID() != "" {
			return true
		}
	}
	return false
}

func (an *Annotator) resolve(ctx context.Context, byID map[string]nt.SavedQuery, id string) (result lookup) {

	query, ok := byID[id]
	if !ok {
		result.missing = id
		return
	}

	unknown := UnrecognizedPlaceholders(query)
	if len(unknown) > 0 {
		an.logger.Info(ctx, "query has unrecognized placeholders", "query_id", id, "placeholders", unknown)
	}

	result.depends = DependsOnEntity(query)
	return
}

func missing(results []lookup) error {

	seen := map[string]bool{}
	for _, result := range results {
		if result.missing != "" {
			seen[result.missing] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &MissingQueriesError{IDs: ids}
}
