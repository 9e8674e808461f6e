package entity

// Param is a named rest parameter or header of a saved query.
type Param struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// SavedQuery is the read-only view of a stored query needed to decide
// whether it depends on the selected entity.
type SavedQuery struct {
	ID              string  `yaml:"id"`
	Title           string  `yaml:"title,omitempty"`
	ActivationQuery string  `yaml:"activation_query,omitempty"`
	ResultQuery     string  `yaml:"result_query,omitempty"`
	RestParams      []Param `yaml:"rest_params,omitempty"`
	RestHeaders     []Param `yaml:"rest_headers,omitempty"`
}

// QueryHits is what a query store finds.
type QueryHits struct {
	Total int
	Hits  []SavedQuery
}

// ByID indexes hits by query id.
func (qh QueryHits) ByID() map[string]SavedQuery {

	byID := make(map[string]SavedQuery, len(qh.Hits))
	for _, query := range qh.Hits {
		byID[query.ID] = query
	}
	return byID
}
