package entity

// Kind tags a filter by the top-level key that carries its restriction.
type Kind string

const (
	Plain    Kind = "plain"
	Join     Kind = "join"
	JoinSet  Kind = "join_set"
	DBFilter Kind = "db_filter"
)

// Meta keys written or read by the engine.
const (
	MetaKey      = "meta"
	MetaIndex    = "index"
	MetaLabel    = "key"
	MetaValue    = "value"
	MetaDisabled = "disabled"

	MetaDependsOnSelectedEntities         = "dependsOnSelectedEntities"
	MetaDependsOnSelectedEntitiesDisabled = "dependsOnSelectedEntitiesDisabled"
	MetaMarkDependOnSelectedEntities      = "markDependOnSelectedEntities"
)

// Filter is one search restriction as decoded from json or yaml.
// The engine treats everything but the kind key and meta as opaque.
type Filter map[string]any

// Filters is an ordered, caller-owned filter array.
type Filters []Filter

// Kind returns the filter's kind, join winning over join_set over dbfilter.
func (flt Filter) Kind() Kind {

	switch {
	case flt.has("join"):
		return Join
	case flt.has("join_set"):
		return JoinSet
	case flt.has("dbfilter"):
		return DBFilter
	}
	return Plain
}

func (flt Filter) has(key string) bool {
	if flt == nil {
		return false
	}
	_, ok := flt[key]
	return ok
}

// Meta returns the metadata bag or nil when there is none.
func (flt Filter) Meta() map[string]any {

	meta, ok := flt[MetaKey].(map[string]any)
	if !ok {
		return nil
	}
	return meta
}

// SetMeta sets a metadata value, creating the bag if needed.
func (flt Filter) SetMeta(key string, val any) {

	meta := flt.Meta()
	if meta == nil {
		meta = map[string]any{}
		flt[MetaKey] = meta
	}
	meta[key] = val
}

// MetaValue returns a metadata value, Raw is nil when absent.
func (flt Filter) MetaValue(key string) Value {

	meta := flt.Meta()
	if meta == nil {
		return Value{}
	}
	return Value{Raw: meta[key]}
}

// StripMeta removes the metadata bag.
func (flt Filter) StripMeta() {
	delete(flt, MetaKey)
}

// Disabled reports meta.disabled, false when unset or not a bool.
func (flt Filter) Disabled() bool {
	disabled, _ := flt.MetaValue(MetaDisabled).Bool()
	return disabled
}

// QueryID returns dbfilter.queryid, empty for other kinds.
func (flt Filter) QueryID() string {

	dbf, ok := flt["dbfilter"].(map[string]any)
	if !ok {
		return ""
	}
	return Value{Raw: dbf["queryid"]}.String()
}

// Label returns a short human label from meta key and value.
func (flt Filter) Label() string {

	key := flt.MetaValue(MetaLabel).String()
	val := flt.MetaValue(MetaValue).String()

	switch {
	case key != "" && val != "":
		return key + ": " + val
	case key != "":
		return key
	case val != "":
		return val
	}
	return string(flt.Kind())
}

// Count returns how many filters are of the given kind.
func (fs Filters) Count(kind Kind) (count int) {

	for _, flt := range fs {
		if flt.Kind() == kind {
			count++
		}
	}
	return
}

// Clone returns a deep copy of the filter, nil stays nil.
func (flt Filter) Clone() Filter {

	if flt == nil {
		return nil
	}
	return Filter(cloneMap(flt))
}

// Clone returns a deep copy of the array.
func (fs Filters) Clone() Filters {

	if fs == nil {
		return nil
	}
	cloned := make(Filters, len(fs))
	for i, flt := range fs {
		cloned[i] = flt.Clone()
	}
	return cloned
}

func cloneMap(src map[string]any) map[string]any {

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {

	switch val := val.(type) {
	case map[string]any:
		return cloneMap(val)
	case Filter:
		return val.Clone()
	case []any:
		cloned := make([]any, len(val))
		for i, elem := range val {
			cloned[i] = cloneValue(elem)
		}
		return cloned
	}
	return val
}
