// Package alias holds the reserved-word and special-property-name tables
// consulted by phase 1's identifier-legality check (spec §4.2 step 2), plus
// the default-alias derivation rule used by the loader when an import
// statement omits an explicit `as` clause.
package alias

import (
	"maps"
	"regexp"
	"strings"
)

// validAliasRE matches identifiers legal per the grammar: a letter followed
// by letters, digits, or underscores.
var validAliasRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// reservedWords are the keywords listed in spec §4.2 step 2; a definition,
// property, or import alias may not use one as its name.
var reservedWords = map[string]bool{
	"schema":   true,
	"fieldset": true,
	"field":    true,
	"index":    true,
	"fields":   true,
	"modifiers": true,
	"abstract": true,
	"final":    true,
	"fallback": true,
	"required": true,
	"use":      true,
	"require":  true,
	"as":       true,
	"rename":   true,
	"delete":   true,
	"none":     true,
	"true":     true,
	"false":    true,
	"all":      true,
	"any":      true,
	"id":       true,
}

// specialPropertyNames are names reserved for well-known properties (spec
// §4.2 step 2): using one of these as the name of a non-property child
// definition is rejected.
var specialPropertyNames = map[string]bool{
	"ancestors":  true,
	"references": true,
	"implements": true,
	"unique":     true,
	"fields":     true,
	"index":      true,
	"property":   true,
}

// ReservedWords returns a copy of the reserved-word table.
func ReservedWords() map[string]bool {
	return maps.Clone(reservedWords)
}

// IsReservedWord reports whether name is a reserved word (spec §4.2 step 2).
func IsReservedWord(name string) bool {
	return reservedWords[strings.ToLower(name)]
}

// SpecialPropertyNames returns a copy of the special-property-name table.
func SpecialPropertyNames() map[string]bool {
	return maps.Clone(specialPropertyNames)
}

// IsSpecialPropertyName reports whether name is reserved for a well-known
// property.
func IsSpecialPropertyName(name string) bool {
	return specialPropertyNames[strings.ToLower(name)]
}

// IsValidAlias reports whether alias is a syntactically legal identifier,
// independent of whether it collides with a reserved word.
func IsValidAlias(alias string) bool {
	return validAliasRE.MatchString(alias)
}

// DeriveAliasFromPath computes the default import alias for a dotted import
// path or URI when no explicit `as` clause is present (legal only when the
// dotted name is a single simple segment, per spec §4.1 step 3; URIs always
// require an explicit alias, but DeriveAliasFromPath still offers a
// best-effort fallback for tooling that wants to suggest one).
//
// Rules: take the final path segment, strip a trailing ".yasdl" extension,
// replace any character outside [A-Za-z0-9_] with '_', and prepend "n" if
// the result doesn't start with a letter.
func DeriveAliasFromPath(path string) string {
	path = strings.TrimRight(path, "/")
	segment := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		segment = path[i+1:]
	}
	segment = strings.TrimSuffix(segment, ".yasdl")

	var sanitized strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sanitized.WriteRune(r)
		default:
			sanitized.WriteRune('_')
		}
	}
	segment = sanitized.String()

	if segment == "" {
		return "n"
	}
	first := segment[0]
	isLetter := (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')
	if !isLetter {
		segment = "n" + segment
	}
	return segment
}
