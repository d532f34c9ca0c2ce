// Package build provides a fluent builder API for programmatically
// constructing schemas without parsing from text sources, for use in tests
// and embedded schema generation. It assembles the same Definition arena
// schema/load's translate step builds from a parsed document (document-order
// DefinitionIDs, explicit static-parent wiring), but driven by closures
// instead of an AST.
//
// # Basic usage
//
//	s, result := build.NewBuilder().
//	    WithName("person").
//	    AddFieldset("person", func(fs *build.DefBuilder) {
//	        fs.WithModifiers(schema.ModRequired)
//	        fs.AddField("name", func(f *build.DefBuilder) {
//	            f.WithProperty("type", schema.NewStringArg("text", location.Span{}))
//	        })
//	    }).
//	    Build()
//
// A built schema has not been run through schema/internal/complete or
// realize; it carries only the static structure a caller assembled, exactly
// as a freshly translated (but not yet checked) schema would.
package build

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// seqAllocator hands out document-order sequence numbers for DefinitionID,
// scoped to one schema (mirrors schema/load/translate.go).
type seqAllocator struct{ next int }

func (a *seqAllocator) take() int {
	n := a.next
	a.next++
	return n
}

// Builder assembles a *schema.Schema definition-by-definition.
type Builder struct {
	name          string
	sourceID      location.SourceID
	documentation string
	language      string
	guid          string
	registry      *schema.Registry
	imports       []*schema.Import
	seq           *seqAllocator
	outermost     []*schema.Definition
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	// Sequence number 0 is reserved for the schema root, as in translate.go.
	return &Builder{seq: &seqAllocator{next: 1}, language: "en"}
}

// WithName sets the schema's canonical package name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithSourceID sets the schema's source identity. If never called, Build
// synthesizes one from the schema name. Definitions take the source identity
// in effect when they are added; one synthesized by Build applies to the
// schema and its root definition only.
func (b *Builder) WithSourceID(id location.SourceID) *Builder {
	b.sourceID = id
	return b
}

// WithDocumentation attaches a doc comment to the schema itself.
func (b *Builder) WithDocumentation(doc string) *Builder {
	b.documentation = doc
	return b
}

// WithLanguage sets the schema's language tag (default "en").
func (b *Builder) WithLanguage(lang string) *Builder {
	b.language = lang
	return b
}

// WithGUID sets the schema's mandatory GUID (spec §4.7 step 7).
func (b *Builder) WithGUID(guid string) *Builder {
	b.guid = guid
	return b
}

// WithRegistry registers the built schema with r once Build succeeds.
func (b *Builder) WithRegistry(r *schema.Registry) *Builder {
	b.registry = r
	return b
}

// AddImport appends a `use` or `require` import.
func (b *Builder) AddImport(kind schema.ImportKind, path, alias string) *Builder {
	b.imports = append(b.imports, schema.NewImport(kind, path, alias, location.Span{}))
	return b
}

// AddFieldset appends an outermost fieldset definition. configure, if
// non-nil, populates its properties and nested body via a DefBuilder.
func (b *Builder) AddFieldset(name string, configure func(*DefBuilder)) *Builder {
	b.outermost = append(b.outermost, b.newOutermost(schema.TagFieldset, name, configure))
	return b
}

// AddField appends an outermost field definition (spec §4.7.2 warns against
// `required` on these, but the shape is otherwise legal).
func (b *Builder) AddField(name string, configure func(*DefBuilder)) *Builder {
	b.outermost = append(b.outermost, b.newOutermost(schema.TagField, name, configure))
	return b
}

func (b *Builder) newOutermost(tag schema.Tag, name string, configure func(*DefBuilder)) *schema.Definition {
	d := b.newDef(tag, name)
	if configure != nil {
		configure(&DefBuilder{b: b, def: d})
	}
	return d
}

func (b *Builder) newDef(tag schema.Tag, name string) *schema.Definition {
	d := schema.NewDefinition(tag, name, name, b.sourceID, location.Span{}, "")
	d.SetID(schema.NewDefinitionID(b.sourceID, b.seq.take()))
	return d
}

// Build finalizes the schema. If WithSourceID was never called, a synthetic
// source identity is derived from the schema name. If WithRegistry was
// called, the schema is registered before being returned; a registration
// failure (e.g. a name collision) is reported as a fatal diagnostic.
func (b *Builder) Build() (*schema.Schema, diag.Result) {
	collector := diag.NewCollectorUnlimited()

	if b.name == "" {
		collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL, "build: WithName is required").Build())
		return nil, collector.Result()
	}
	if b.sourceID.IsZero() {
		b.sourceID = location.NewSourceID("build://" + b.name)
	}

	root := schema.NewDefinition(schema.TagSchema, b.name, b.name, b.sourceID, location.Span{}, b.documentation)
	root.SetID(schema.NewDefinitionID(b.sourceID, 0))
	for _, d := range b.outermost {
		d.SetStaticParent(root)
	}
	root.SetBody(b.outermost)

	s := schema.NewSchema(b.name, b.sourceID, location.Span{}, b.documentation, root)
	s.SetLanguage(b.language)
	if b.guid != "" {
		s.SetGUID(b.guid)
	}
	s.SetOutermost(b.outermost)
	s.SetImports(b.imports)

	if b.registry != nil {
		if err := b.registry.Register(s); err != nil {
			collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL, err.Error()).Build())
			return nil, collector.Result()
		}
	}

	return s, collector.Result()
}

// DefBuilder configures one definition (fieldset, field, index, or
// constraint) while it is being assembled. Its Add* methods append further
// nested definitions, calling SetBody after every append so the parent's
// body reflects whatever has been added so far.
type DefBuilder struct {
	b        *Builder
	def      *schema.Definition
	children []*schema.Definition
}

// WithModifiers installs the definition's modifier bitset.
func (db *DefBuilder) WithModifiers(m schema.Modifiers) *DefBuilder {
	db.def.SetModifiers(m)
	return db
}

// WithProperty appends a property with the given arguments.
func (db *DefBuilder) WithProperty(name string, args ...schema.Argument) *DefBuilder {
	db.def.AddProperty(schema.NewProperty(name, location.Span{}, "", args))
	return db
}

// WithAncestor desugars a colon-shorthand ancestor into an `ancestors`
// property, matching schema/load/translate.go's treatment of `fieldset b :
// a` (spec §3).
func (db *DefBuilder) WithAncestor(name *schema.DottedName) *DefBuilder {
	return db.WithProperty("ancestors", schema.NewNameArg(name))
}

func (db *DefBuilder) addChild(child *schema.Definition) {
	child.SetStaticParent(db.def)
	db.children = append(db.children, child)
	db.def.SetBody(db.children)
}

// AddFieldset appends a nested fieldset.
func (db *DefBuilder) AddFieldset(name string, configure func(*DefBuilder)) *DefBuilder {
	child := db.b.newDef(schema.TagFieldset, name)
	if configure != nil {
		configure(&DefBuilder{b: db.b, def: child})
	}
	db.addChild(child)
	return db
}

// AddField appends a nested field.
func (db *DefBuilder) AddField(name string, configure func(*DefBuilder)) *DefBuilder {
	child := db.b.newDef(schema.TagField, name)
	if configure != nil {
		configure(&DefBuilder{b: db.b, def: child})
	}
	db.addChild(child)
	return db
}

// AddIndex appends a nested index.
func (db *DefBuilder) AddIndex(name string, configure func(*DefBuilder)) *DefBuilder {
	child := db.b.newDef(schema.TagIndex, name)
	if configure != nil {
		configure(&DefBuilder{b: db.b, def: child})
	}
	db.addChild(child)
	return db
}

// AddConstraint appends a nested constraint.
func (db *DefBuilder) AddConstraint(name string, configure func(*DefBuilder)) *DefBuilder {
	child := db.b.newDef(schema.TagConstraint, name)
	if configure != nil {
		configure(&DefBuilder{b: db.b, def: child})
	}
	db.addChild(child)
	return db
}

// AddDeletion appends a `delete` statement targeting the named sibling.
func (db *DefBuilder) AddDeletion(target string) *DefBuilder {
	child := db.b.newDef(schema.TagDeletion, "")
	child.SetDeleteTarget(target)
	db.addChild(child)
	return db
}
