package schema

import (
	"github.com/simon-lentz/yasdl/location"
)

// ImportKind distinguishes the two import statements recognized by the
// loader. Both resolve and load the target the same way; they differ only in
// how phase 5 propagates realization (spec §4.1, §4.6 step 1): `require`
// propagates realized-ness from an already-realized importer, `use` never
// does.
type ImportKind uint8

const (
	ImportUse ImportKind = iota
	ImportRequire
)

// String returns the keyword spelling.
func (k ImportKind) String() string {
	if k == ImportRequire {
		return "require"
	}
	return "use"
}

// Import represents a `use` or `require` statement in a schema.
type Import struct {
	kind             ImportKind
	path             string // the dotted name or URI as written
	alias            string // explicit or derived alias used for qualification
	resolvedSourceID location.SourceID
	schema           *Schema // resolved schema, set after loading
	span             location.Span
	sealed           bool
}

// NewImport creates an Import. Used by the Loader while parsing import
// statements, before resolution.
func NewImport(kind ImportKind, path, alias string, span location.Span) *Import {
	return &Import{kind: kind, path: path, alias: alias, span: span}
}

// Kind returns whether this is a `use` or `require` import.
func (i *Import) Kind() ImportKind { return i.kind }

// Path returns the import target exactly as written (dotted name or URI).
func (i *Import) Path() string { return i.path }

// Alias returns the alias used to qualify names from the imported schema.
func (i *Import) Alias() string { return i.alias }

// ResolvedSourceID returns the resolved canonical source identity of the
// target schema.
func (i *Import) ResolvedSourceID() location.SourceID { return i.resolvedSourceID }

// Schema returns the resolved target schema, or nil before resolution.
func (i *Import) Schema() *Schema { return i.schema }

// Span returns the source location of the import statement.
func (i *Import) Span() location.Span { return i.span }

// SetResolvedSourceID installs the resolved source identity. Called by the
// Loader during phase 0 step 3.
func (i *Import) SetResolvedSourceID(id location.SourceID) {
	if i.sealed {
		panic("schema: cannot mutate sealed import")
	}
	i.resolvedSourceID = id
}

// SetSchema installs the resolved target schema.
func (i *Import) SetSchema(s *Schema) {
	if i.sealed {
		panic("schema: cannot mutate sealed import")
	}
	i.schema = s
}

// Seal prevents further mutation of the import.
func (i *Import) Seal() { i.sealed = true }

// IsSealed reports whether the import has been sealed.
func (i *Import) IsSealed() bool { return i.sealed }
