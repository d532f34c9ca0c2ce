package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/internal/alias"
)

// SyntaxError reports a parse error at a precise source location.
type SyntaxError struct {
	Message string
	Span    location.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Parse scans and parses a complete YASDL source file.
//
// A document begins with a `schema <dotted-name>;` header declaring the
// package's canonical name, followed by a flat sequence of `use`/`require`
// import statements and outermost fieldset/field/index/constraint
// definitions (spec §3 "Schema": "ordered sequence of outermost
// definitions"; §6: source files are UTF-8 text using the reserved words
// and literal forms listed there). There is no enclosing block for the file
// itself — only nested definitions open a `{ ... }` body.
func Parse(sourceID location.SourceID, src string) (*Document, error) {
	p := &parser{lex: NewLexer(sourceID, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseDocument()
}

type parser struct {
	lex *Lexer
	tok Token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) at(kind TokenKind) bool { return p.tok.Kind == kind }

func (p *parser) atKeyword(word string) bool {
	return p.tok.Kind == TokIdent && strings.EqualFold(p.tok.Text, word)
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, &SyntaxError{
			Message: fmt.Sprintf("expected %s, found %s %q", kind, p.tok.Kind, p.tok.Text),
			Span:    p.tok.Span,
		}
	}
	return p.advanceTok()
}

func (p *parser) expectKeyword(word string) (Token, error) {
	if !p.atKeyword(word) {
		return Token{}, &SyntaxError{
			Message: fmt.Sprintf("expected %q, found %q", word, p.tok.Text),
			Span:    p.tok.Span,
		}
	}
	return p.advanceTok()
}

// advanceTok consumes the current token and returns it.
func (p *parser) advanceTok() (Token, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) parseDocument() (*Document, error) {
	start := p.tok.Span
	doc := p.tok.Doc
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	name, nameSpan, err := p.parseSimpleDottedName()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(TokSemi)
	if err != nil {
		return nil, err
	}

	d := &Document{PackageName: name, Doc: doc, NameSpan: nameSpan}
	end := semi.Span

	for !p.at(TokEOF) {
		switch {
		case p.atKeyword("use") || p.atKeyword("require"):
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			d.Imports = append(d.Imports, imp)
			end = imp.Span
		default:
			m, err := p.parseMember()
			if err != nil {
				return nil, err
			}
			d.Members = append(d.Members, m)
			end = memberSpan(m)
		}
	}
	d.Span = spanBetween(start, end)
	return d, nil
}

// parseSimpleDottedName parses a bare dot-separated identifier sequence,
// with no `schema.`/`=` prefix or bracketed suffix — used for the file
// header and import targets, which per spec §4.1 are always plain dotted
// names (never imp-names or min_classes-qualified).
func (p *parser) parseSimpleDottedName() ([]string, location.Span, error) {
	first, err := p.expect(TokIdent)
	if err != nil {
		return nil, location.Span{}, err
	}
	segs := []string{first.Text}
	sp := first.Span
	for p.at(TokDot) {
		if _, err := p.advanceTok(); err != nil {
			return nil, location.Span{}, err
		}
		seg, err := p.expect(TokIdent)
		if err != nil {
			return nil, location.Span{}, err
		}
		segs = append(segs, seg.Text)
		sp = spanBetween(sp, seg.Span)
	}
	return segs, sp, nil
}

// parseImport parses `use`/`require` <target> [`as` alias]`;`. The target is
// either a dotted name or a quoted URI string (spec §4.1: http/https/ftp
// fetch targets always require an explicit alias).
func (p *parser) parseImport() (*ImportDecl, error) {
	start := p.tok.Span
	kind := schema.ImportUse
	if p.atKeyword("require") {
		kind = schema.ImportRequire
	}
	if _, err := p.advanceTok(); err != nil {
		return nil, err
	}

	imp := &ImportDecl{Kind: kind}
	if p.at(TokString) {
		tok, err := p.advanceTok()
		if err != nil {
			return nil, err
		}
		imp.Target = tok.Text
		imp.IsURI = true
	} else {
		segs, _, err := p.parseSimpleDottedName()
		if err != nil {
			return nil, err
		}
		imp.Target = strings.Join(segs, ".")
	}

	if p.atKeyword("as") {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		aliasTok, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		imp.Alias = aliasTok.Text
		imp.HasAlias = true
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return nil, err
	}
	imp.Span = spanBetween(start, end.Span)
	return imp, nil
}

// modifierKeywords are the modifier keywords legal before a tag keyword.
var modifierKeywords = map[string]schema.Modifiers{
	"abstract": schema.ModAbstract,
	"final":    schema.ModFinal,
	"required": schema.ModRequired,
	"fallback": schema.ModFallback,
}

var tagKeywords = map[string]schema.Tag{
	"fieldset":   schema.TagFieldset,
	"field":      schema.TagField,
	"index":      schema.TagIndex,
	"constraint": schema.TagConstraint,
}

func memberSpan(m *Member) location.Span {
	switch m.Kind {
	case MemberDefinitionKind:
		return m.Definition.Span
	case MemberPropertyKind:
		return m.Property.Span
	default:
		return m.Deletion.Span
	}
}

// parseMember parses one statement inside a body (or at the top of a
// document): a modifier-prefixed definition, a `delete` statement, or a
// property statement.
func (p *parser) parseMember() (*Member, error) {
	if p.atKeyword("delete") {
		del, err := p.parseDeletion()
		if err != nil {
			return nil, err
		}
		return &Member{Kind: MemberDeletionKind, Deletion: del}, nil
	}

	if p.tok.Kind == TokIdent {
		lower := strings.ToLower(p.tok.Text)
		if _, ok := modifierKeywords[lower]; ok {
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			return &Member{Kind: MemberDefinitionKind, Definition: def}, nil
		}
		if _, ok := tagKeywords[lower]; ok {
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			return &Member{Kind: MemberDefinitionKind, Definition: def}, nil
		}
	}

	prop, err := p.parseProperty()
	if err != nil {
		return nil, err
	}
	return &Member{Kind: MemberPropertyKind, Property: prop}, nil
}

func (p *parser) parseDeletion() (*DeletionDecl, error) {
	start := p.tok.Span
	if _, err := p.expectKeyword("delete"); err != nil {
		return nil, err
	}
	target, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(TokSemi)
	if err != nil {
		return nil, err
	}
	return &DeletionDecl{
		Target:     strings.ToLower(target.Text),
		TargetSpan: target.Span,
		Span:       spanBetween(start, end.Span),
	}, nil
}

// parseDefinition parses `<modifiers> <tag-keyword> name [: ancestor] ( { member* } | ; )`.
func (p *parser) parseDefinition() (*DefinitionDecl, error) {
	start := p.tok.Span
	doc := p.tok.Doc

	var mods schema.Modifiers
	for p.tok.Kind == TokIdent {
		m, ok := modifierKeywords[strings.ToLower(p.tok.Text)]
		if !ok {
			break
		}
		mods |= m
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
	}

	tagWord := strings.ToLower(p.tok.Text)
	tag, ok := tagKeywords[tagWord]
	if !ok {
		return nil, &SyntaxError{
			Message: fmt.Sprintf("expected fieldset, field, index, or constraint, found %q", p.tok.Text),
			Span:    p.tok.Span,
		}
	}
	if _, err := p.advanceTok(); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if alias.IsReservedWord(nameTok.Text) {
		return nil, &SyntaxError{
			Message: fmt.Sprintf("%q is a reserved word and cannot be used as a definition name", nameTok.Text),
			Span:    nameTok.Span,
		}
	}

	def := &DefinitionDecl{
		Tag:       tag,
		Modifiers: mods,
		Name:      strings.ToLower(nameTok.Text),
		NameSpan:  nameTok.Span,
		Doc:       doc,
	}

	if p.at(TokColon) {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		ancestor, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		def.Ancestor = ancestor
	}

	switch {
	case p.at(TokSemi):
		end, err := p.advanceTok()
		if err != nil {
			return nil, err
		}
		def.Span = spanBetween(start, end.Span)
	case p.at(TokLBrace):
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		for !p.at(TokRBrace) {
			if p.at(TokEOF) {
				return nil, &SyntaxError{Message: "unterminated definition body", Span: p.tok.Span}
			}
			m, err := p.parseMember()
			if err != nil {
				return nil, err
			}
			def.Members = append(def.Members, m)
		}
		end, err := p.expect(TokRBrace)
		if err != nil {
			return nil, err
		}
		def.Span = spanBetween(start, end.Span)
	default:
		return nil, &SyntaxError{
			Message: fmt.Sprintf("expected ';' or '{', found %q", p.tok.Text),
			Span:    p.tok.Span,
		}
	}
	return def, nil
}

// parseProperty parses `name arg (, arg)* ;` (spec §3: "an ordered argument
// list"), including the well-known `ancestors`/`implements`/`references`
// properties, which are syntactically ordinary properties.
func (p *parser) parseProperty() (*PropertyDecl, error) {
	start := p.tok.Span
	doc := p.tok.Doc
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}

	prop := &PropertyDecl{Name: strings.ToLower(nameTok.Text), NameSpan: nameTok.Span, Doc: doc}

	if !p.at(TokSemi) {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			prop.Args = append(prop.Args, arg)
			if !p.at(TokComma) {
				break
			}
			if _, err := p.advanceTok(); err != nil {
				return nil, err
			}
		}
	}

	end, err := p.expect(TokSemi)
	if err != nil {
		return nil, err
	}
	prop.Span = spanBetween(start, end.Span)
	return prop, nil
}

// parseArg parses one property argument: a literal or a dotted name.
func (p *parser) parseArg() (*ArgLit, error) {
	switch p.tok.Kind {
	case TokString:
		tok, err := p.advanceTok()
		if err != nil {
			return nil, err
		}
		return &ArgLit{Kind: ArgKindString, StringVal: tok.Text, Span: tok.Span}, nil
	case TokInt:
		tok, err := p.advanceTok()
		if err != nil {
			return nil, err
		}
		v, perr := strconv.ParseInt(tok.Text, 10, 64)
		if perr != nil {
			return nil, &SyntaxError{Message: fmt.Sprintf("invalid integer literal %q: %v", tok.Text, perr), Span: tok.Span}
		}
		return &ArgLit{Kind: ArgKindInt, IntVal: v, Span: tok.Span}, nil
	case TokFloat:
		tok, err := p.advanceTok()
		if err != nil {
			return nil, err
		}
		v, perr := strconv.ParseFloat(tok.Text, 64)
		if perr != nil {
			return nil, &SyntaxError{Message: fmt.Sprintf("invalid float literal %q: %v", tok.Text, perr), Span: tok.Span}
		}
		return &ArgLit{Kind: ArgKindFloat, FloatVal: v, Span: tok.Span}, nil
	case TokIdent:
		switch strings.ToLower(p.tok.Text) {
		case "true", "false":
			tok, err := p.advanceTok()
			if err != nil {
				return nil, err
			}
			return &ArgLit{Kind: ArgKindBool, BoolVal: strings.EqualFold(tok.Text, "true"), Span: tok.Span}, nil
		case "none":
			tok, err := p.advanceTok()
			if err != nil {
				return nil, err
			}
			return &ArgLit{Kind: ArgKindNone, Span: tok.Span}, nil
		case "all":
			tok, err := p.advanceTok()
			if err != nil {
				return nil, err
			}
			return &ArgLit{Kind: ArgKindAll, Span: tok.Span}, nil
		default:
			name, err := p.parseDottedName()
			if err != nil {
				return nil, err
			}
			return &ArgLit{Kind: ArgKindName, Name: name, Span: name.Span}, nil
		}
	case TokEquals:
		name, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		return &ArgLit{Kind: ArgKindName, Name: name, Span: name.Span}, nil
	default:
		return nil, &SyntaxError{
			Message: fmt.Sprintf("expected an argument, found %s %q", p.tok.Kind, p.tok.Text),
			Span:    p.tok.Span,
		}
	}
}

// parseDottedName parses a full dotted name with its optional `=` imp-name
// prefix, `schema.` absolute prefix, and bracketed min_classes suffix (spec
// §3 "Dotted name").
func (p *parser) parseDottedName() (*DottedNameLit, error) {
	start := p.tok.Span
	impName := false
	if p.at(TokEquals) {
		impName = true
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
	}

	absolute := false
	first, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	segs := []string{strings.ToLower(first.Text)}
	end := first.Span
	if strings.EqualFold(first.Text, "schema") && p.at(TokDot) {
		absolute = true
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		seg, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		segs = []string{strings.ToLower(seg.Text)}
		end = seg.Span
	}
	for p.at(TokDot) {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		seg, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		segs = append(segs, strings.ToLower(seg.Text))
		end = seg.Span
	}

	var minClasses []schema.Tag
	if p.at(TokLBracket) {
		if _, err := p.advanceTok(); err != nil {
			return nil, err
		}
		for {
			tagTok, err := p.expect(TokIdent)
			if err != nil {
				return nil, err
			}
			tag, ok := tagKeywords[strings.ToLower(tagTok.Text)]
			if !ok {
				return nil, &SyntaxError{
					Message: fmt.Sprintf("%q is not a valid min_classes tag", tagTok.Text),
					Span:    tagTok.Span,
				}
			}
			minClasses = append(minClasses, tag)
			if !p.at(TokPipe) {
				break
			}
			if _, err := p.advanceTok(); err != nil {
				return nil, err
			}
		}
		closeTok, err := p.expect(TokRBracket)
		if err != nil {
			return nil, err
		}
		end = closeTok.Span
	}

	return &DottedNameLit{
		Segments:   segs,
		Absolute:   absolute,
		ImpName:    impName,
		MinClasses: minClasses,
		Span:       spanBetween(start, end),
	}, nil
}

func spanBetween(start, end location.Span) location.Span {
	return location.RangeWithBytes(start.Source,
		start.Start.Line, start.Start.Column, start.Start.Byte,
		end.End.Line, end.End.Column, end.End.Byte)
}
