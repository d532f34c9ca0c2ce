package schema

import (
	"iter"
	"slices"

	"github.com/simon-lentz/yasdl/location"
)

// Schema is a top-level package loaded from one source document or URI
// (spec §3 "Schema"). Schemas own their outermost definitions; they are
// created by the Loader, never moved, and exist for the compiler's lifetime.
type Schema struct {
	name     string // canonical package name, dot-separated lowercase
	sourceID location.SourceID
	span     location.Span
	doc      string

	language string // ISO-style tag, default "en" (phase 7 step 9)
	guid     string

	root *Definition // the schema's own TagSchema Definition

	outermost     []*Definition // ordered outermost definitions
	outermostByName map[string]*Definition

	imports       []*Import
	importByAlias map[string]*Import

	sources *Sources

	sealed bool
}

// NewSchema creates a Schema. Used by the Loader once an AST has been
// translated into the Definition arena.
func NewSchema(name string, sourceID location.SourceID, span location.Span, doc string, root *Definition) *Schema {
	return &Schema{
		name:            name,
		sourceID:        sourceID,
		span:            span,
		doc:             doc,
		language:        "en",
		root:            root,
		outermostByName: make(map[string]*Definition),
		importByAlias:   make(map[string]*Import),
	}
}

// Name returns the canonical package name.
func (s *Schema) Name() string { return s.name }

// SourceID returns the canonical source identity: a local canonical path or
// a URI string (stored as a synthetic identifier — see location.SourceID).
func (s *Schema) SourceID() location.SourceID { return s.sourceID }

// Span returns the source location of the schema declaration.
func (s *Schema) Span() location.Span { return s.span }

// Documentation returns the attached doc comment, if any.
func (s *Schema) Documentation() string { return s.doc }

// Root returns the schema's own TagSchema Definition, the static parent of
// every outermost definition.
func (s *Schema) Root() *Definition { return s.root }

// Language returns the schema's language tag, defaulting to "en" per phase 7
// step 9 when no `language` property was declared.
func (s *Schema) Language() string { return s.language }

// SetLanguage installs the resolved language tag.
func (s *Schema) SetLanguage(lang string) {
	if s.sealed {
		panic("schema: cannot mutate sealed schema")
	}
	s.language = lang
}

// GUID returns the schema's GUID, mandatory per phase 7 step 7.
func (s *Schema) GUID() string { return s.guid }

// SetGUID installs the schema's GUID.
func (s *Schema) SetGUID(guid string) {
	if s.sealed {
		panic("schema: cannot mutate sealed schema")
	}
	s.guid = guid
}

// Outermost returns the definition with the given simple name among this
// schema's outermost definitions.
func (s *Schema) Outermost(name string) (*Definition, bool) {
	d, ok := s.outermostByName[name]
	return d, ok
}

// OutermostDefinitions returns an iterator over the schema's outermost
// definitions, in source order.
func (s *Schema) OutermostDefinitions() iter.Seq[*Definition] {
	return func(yield func(*Definition) bool) {
		for _, d := range s.outermost {
			if !yield(d) {
				return
			}
		}
	}
}

// OutermostSlice returns a defensive copy of the outermost definition list.
func (s *Schema) OutermostSlice() []*Definition { return slices.Clone(s.outermost) }

// SetOutermost installs the ordered outermost definition list. Called by the
// Loader once parsing of a document completes.
func (s *Schema) SetOutermost(defs []*Definition) {
	if s.sealed {
		panic("schema: cannot mutate sealed schema")
	}
	s.outermost = defs
	clear(s.outermostByName)
	for _, d := range defs {
		s.outermostByName[d.Name()] = d
	}
}

// Imports returns an iterator over this schema's `use`/`require` import
// declarations.
func (s *Schema) Imports() iter.Seq[*Import] {
	return func(yield func(*Import) bool) {
		for _, i := range s.imports {
			if !yield(i) {
				return
			}
		}
	}
}

// ImportsSlice returns a defensive copy of the import list.
func (s *Schema) ImportsSlice() []*Import { return slices.Clone(s.imports) }

// ImportByAlias returns the import declared under the given alias.
func (s *Schema) ImportByAlias(alias string) (*Import, bool) {
	i, ok := s.importByAlias[alias]
	return i, ok
}

// SetImports installs the import list. Called by the Loader once import
// statements are parsed, before resolution (phase 0 step 3-4).
func (s *Schema) SetImports(imports []*Import) {
	if s.sealed {
		panic("schema: cannot mutate sealed schema")
	}
	s.imports = imports
	clear(s.importByAlias)
	for _, i := range imports {
		s.importByAlias[i.alias] = i
	}
}

// Sources returns the source content registry used for diagnostic rendering.
// May be nil for programmatically built schemas.
func (s *Schema) Sources() *Sources { return s.sources }

// SetSources installs the source registry.
func (s *Schema) SetSources(sources *Sources) {
	if s.sealed {
		panic("schema: cannot mutate sealed schema")
	}
	s.sources = sources
}

// Seal marks the schema immutable. Called once phase 7 completes for every
// reachable schema.
func (s *Schema) Seal() { s.sealed = true }

// IsSealed reports whether the schema has been sealed.
func (s *Schema) IsSealed() bool { return s.sealed }
