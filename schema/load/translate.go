package load

import (
	"strings"

	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/internal/parse"
)

// seqAllocator hands out document-order sequence numbers for DefinitionID,
// scoped to one schema (spec §9 "node graph with back-references").
type seqAllocator struct{ next int }

func (a *seqAllocator) take() int {
	n := a.next
	a.next++
	return n
}

// translate converts one parsed Document into a *schema.Schema: it builds
// the Definition arena (assigning DefinitionIDs in document order), wires
// the static body tree, and installs the schema's import table. No semantic
// checking happens here — that is schema/internal/complete's job, starting
// at phase 1.
func translate(doc *parse.Document, sourceID location.SourceID) *schema.Schema {
	seq := &seqAllocator{}

	root := schema.NewDefinition(schema.TagSchema, canonicalName(doc.PackageName), strings.Join(doc.PackageName, "."), sourceID, doc.Span, doc.Doc)
	root.SetID(schema.NewDefinitionID(sourceID, seq.take()))
	root.SetNameSpan(doc.NameSpan)

	outermost := make([]*schema.Definition, 0, len(doc.Members))
	for _, m := range doc.Members {
		if m.Kind != parse.MemberDefinitionKind {
			// A bare property or delete statement at schema level has no
			// enclosing fieldset/field to attach to; phase 1 rejects this
			// shape as a syntax-level misuse rather than translate.go
			// silently dropping it.
			continue
		}
		outermost = append(outermost, translateDefinition(m.Definition, sourceID, root, seq))
	}
	root.SetBody(outermost)

	s := schema.NewSchema(canonicalName(doc.PackageName), sourceID, doc.Span, doc.Doc, root)
	s.SetOutermost(outermost)
	s.SetImports(translateImports(doc.Imports))
	return s
}

func canonicalName(segments []string) string {
	lower := make([]string, len(segments))
	for i, seg := range segments {
		lower[i] = strings.ToLower(seg)
	}
	return strings.Join(lower, ".")
}

func translateImports(decls []*parse.ImportDecl) []*schema.Import {
	out := make([]*schema.Import, 0, len(decls))
	for _, d := range decls {
		out = append(out, schema.NewImport(d.Kind, d.Target, d.Alias, d.Span))
	}
	return out
}

// translateDefinition converts one parsed DefinitionDecl (and its subtree)
// into a *schema.Definition. Colon-shorthand ancestors (`fieldset b : a`) are
// desugared here into an ordinary `ancestors` property, since spec §3
// treats `ancestors` as a syntactically ordinary property name throughout
// every later phase.
func translateDefinition(decl *parse.DefinitionDecl, sourceID location.SourceID, parent *schema.Definition, seq *seqAllocator) *schema.Definition {
	d := schema.NewDefinition(decl.Tag, strings.ToLower(decl.Name), decl.Name, sourceID, decl.Span, decl.Doc)
	d.SetID(schema.NewDefinitionID(sourceID, seq.take()))
	d.SetNameSpan(decl.NameSpan)
	d.SetStaticParent(parent)
	d.SetModifiers(decl.Modifiers)

	if decl.Ancestor != nil {
		d.AddProperty(schema.NewProperty("ancestors", decl.Ancestor.Span, "", []schema.Argument{
			schema.NewNameArg(decl.Ancestor.ToSchemaDottedName()),
		}))
	}

	body := make([]*schema.Definition, 0, len(decl.Members))
	for _, m := range decl.Members {
		switch m.Kind {
		case parse.MemberDefinitionKind:
			body = append(body, translateDefinition(m.Definition, sourceID, d, seq))
		case parse.MemberPropertyKind:
			d.AddProperty(translateProperty(m.Property))
		case parse.MemberDeletionKind:
			body = append(body, translateDeletion(m.Deletion, sourceID, d, seq))
		}
	}
	d.SetBody(body)
	return d
}

func translateDeletion(decl *parse.DeletionDecl, sourceID location.SourceID, parent *schema.Definition, seq *seqAllocator) *schema.Definition {
	d := schema.NewDefinition(schema.TagDeletion, "", "", sourceID, decl.Span, "")
	d.SetID(schema.NewDefinitionID(sourceID, seq.take()))
	d.SetStaticParent(parent)
	d.SetDeleteTarget(strings.ToLower(decl.Target))
	return d
}

func translateProperty(decl *parse.PropertyDecl) *schema.Property {
	args := make([]schema.Argument, len(decl.Args))
	for i, a := range decl.Args {
		args[i] = a.ToSchemaArgument()
	}
	return schema.NewProperty(strings.ToLower(decl.Name), decl.Span, decl.Doc, args)
}
