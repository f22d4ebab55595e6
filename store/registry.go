package store

// RelationCast is the name under which the cast relation is registered.
const RelationCast = "cast"

// Relation describes a related table joined to a movie by key.
type Relation struct {
	// Name is the field the joined rows are exposed under (e.g., "cast").
	Name string

	// TableName is the DynamoDB table holding the related rows.
	TableName string

	// IndexName is the optional GSI queried instead of the base table.
	IndexName string

	// KeyAttr is the attribute in the related rows that references the movie (e.g., "movieId").
	KeyAttr string
}

// Registry holds the known relations by name.
type Registry struct {
	byName map[string]Relation
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Relation)}
}

// Register adds a relation, replacing any earlier one with the same name.
func (r *Registry) Register(rel Relation) {
	r.byName[rel.Name] = rel
}

// Lookup returns the relation registered under name.
func (r *Registry) Lookup(name string) (Relation, bool) {
	rel, ok := r.byName[name]
	return rel, ok
}
