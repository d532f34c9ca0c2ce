// Package span builds [location.Span] values for the YASDL lexer and
// parser. The lexer tracks line, column, and byte offset directly as it
// scans UTF-8 source text, so Builder only joins two already-resolved
// positions into a Span; no rune-to-byte conversion is needed.
//
// This is an internal package; its API may change without notice.
package span
