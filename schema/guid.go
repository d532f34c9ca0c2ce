package schema

import (
	"strings"

	"github.com/google/uuid"
)

// ValidGUID reports whether s is acceptable as a `guid` property argument
// (phase 7 step 7: "single non-empty string; globally unique across the
// compilation"). The source format does not mandate RFC 4122 syntax, so any
// non-empty, non-whitespace string is accepted; when s does parse as a UUID
// it is additionally available in canonical form via CanonicalGUID.
func ValidGUID(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NewGUID generates a new random RFC 4122 (v4) GUID in canonical string
// form, for callers building schemas programmatically via schema/build that
// want a guaranteed-unique identifier rather than a hand-assigned one.
func NewGUID() string {
	return uuid.NewString()
}

// CanonicalGUID returns s normalized to RFC 4122 canonical lowercase form if
// it parses as a UUID, and s unchanged (with surrounding whitespace
// trimmed) otherwise. Used by the GUID-uniqueness check in phase 7 so that
// "AAAA-BBBB-..." and "aaaa-bbbb-..." collide.
func CanonicalGUID(s string) string {
	trimmed := strings.TrimSpace(s)
	if id, err := uuid.Parse(trimmed); err == nil {
		return id.String()
	}
	return trimmed
}
