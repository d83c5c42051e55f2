package entity

// Field names read by the labels block.
const (
	// ProjectIDField carries the hub project identifier of a node.
	ProjectIDField = "field_tk_project_id"

	// ExternalURIField is the link field on taxonomy terms compared by the term predicate.
	ExternalURIField = "field_external_uri"
)

// Entity type identifiers.
const (
	EntityTypeNode = "node"
	EntityTypeTerm = "taxonomy_term"
)

// FieldItem is one value (delta) of a multi-valued field.
// URI is only populated for link fields.
type FieldItem struct {
	Value string `json:"value,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// Fields maps a field machine name to its ordered values.
type Fields map[string][]FieldItem

// Has reports whether the field is defined, even when it holds no values.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Get returns the ordered values of a field, or nil when it is not defined.
func (f Fields) Get(name string) []FieldItem {
	return f[name]
}

// IsEmpty reports whether the field is undefined or holds no non-blank item.
func (f Fields) IsEmpty(name string) bool {
	for _, item := range f[name] {
		if item.Value != "" || item.URI != "" {
			return false
		}
	}
	return true
}

// Referenceable is an entity that can be the target of a node reference.
type Referenceable interface {
	EntityTypeID() string
	HasField(name string) bool
	Field(name string) []FieldItem
	FieldIsEmpty(name string) bool
}

// Node is a content entity rendered by the block.
type Node struct {
	ID         int64
	Type       string
	Title      string
	Fields     Fields
	References []Referenceable
}

// EntityTypeID returns the entity type of nodes.
func (n *Node) EntityTypeID() string { return EntityTypeNode }

// HasField reports whether the node defines the named field.
func (n *Node) HasField(name string) bool { return n.Fields.Has(name) }

// Field returns the values of the named field.
func (n *Node) Field(name string) []FieldItem { return n.Fields.Get(name) }

// FieldIsEmpty reports whether the named field is missing or blank.
func (n *Node) FieldIsEmpty(name string) bool { return n.Fields.IsEmpty(name) }

// ReferencedEntities returns the entities this node points at, in field order.
func (n *Node) ReferencedEntities() []Referenceable {
	return n.References
}

// Term is a taxonomy term that nodes reference.
type Term struct {
	ID         int64
	Vocabulary string
	Name       string
	Fields     Fields
}

// EntityTypeID returns the entity type of taxonomy terms.
func (t *Term) EntityTypeID() string { return EntityTypeTerm }

// HasField reports whether the term defines the named field.
func (t *Term) HasField(name string) bool { return t.Fields.Has(name) }

// Field returns the values of the named field.
func (t *Term) Field(name string) []FieldItem { return t.Fields.Get(name) }

// FieldIsEmpty reports whether the named field is missing or blank.
func (t *Term) FieldIsEmpty(name string) bool { return t.Fields.IsEmpty(name) }
