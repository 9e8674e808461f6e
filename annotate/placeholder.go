package annotate

import (
	"regexp"
	"sort"

	nt "joinfilter/entity"
)

var (
	// @doc[_source][id]@ style references into the selected document
	docPattern = regexp.MustCompile(`@doc(\[[^\]@]+\])+@`)
	// legacy rest-era markers
	legacyPattern = regexp.MustCompile(`@(URI|TABLE|PKVALUE|VAR[0-9]+)@`)
	// anything shaped like a marker, used to flag syntax neither of the above knows
	markerPattern = regexp.MustCompile(`@[A-Za-z_][A-Za-z0-9_]*(\[[^\]@]*\])*@`)
)

func fields(query nt.SavedQuery) []string {

	vals := []string{query.ActivationQuery, query.ResultQuery}
	for _, param := range query.RestParams {
		vals = append(vals, param.Value)
	}
	for _, header := range query.RestHeaders {
		vals = append(vals, header.Value)
	}
	return vals
}

// DependsOnEntity reports whether any of the query's templated fields reference
// the selected entity, in either placeholder syntax.
func DependsOnEntity(query nt.SavedQuery) bool {

	for _, val := range fields(query) {
		if docPattern.MatchString(val) || legacyPattern.MatchString(val) {
			return true
		}
	}
	return false
}

// UnrecognizedPlaceholders returns marker-like tokens matching neither syntax.
func UnrecognizedPlaceholders(query nt.SavedQuery) []string {

	seen := map[string]bool{}
	for _, val := range fields(query) {
		for _, token := range markerPattern.FindAllString(val, -1) {
			if docPattern.MatchString(token) || legacyPattern.MatchString(token) {
				continue
			}
			seen[token] = true
		}
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
