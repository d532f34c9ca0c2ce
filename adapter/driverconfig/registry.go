package driverconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/simon-lentz/yasdl/schema/load"
)

// Registry is a driver type registry loaded from a JSONC document, mapping
// declared `type` property values to their storage-kind classification. It
// implements load.DriverTypeRegistry and is passed to load.Load via
// load.WithDriverTypeRegistry.
type Registry struct {
	kinds map[string]load.DriverTypeKind
}

// Lookup implements load.DriverTypeRegistry.
func (r *Registry) Lookup(typeName string) (load.DriverTypeKind, bool) {
	k, ok := r.kinds[typeName]
	return k, ok
}

// rawEntry is the on-disk shape of one configuration entry.
type rawEntry struct {
	Kind string `json:"kind"`
}

// ParseFile reads and parses a JSONC driver-config file at path.
func ParseFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driverconfig: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a JSONC-encoded driver-config document. Two shapes are
// accepted per entry: a bare kind string ("uuid": "fixed_size") or an object
// carrying a "kind" field ("uuid": {"kind": "fixed_size"}); the object form
// leaves room for future per-type metadata without breaking the simple
// shape that will cover most configs.
func Parse(data []byte) (*Registry, error) {
	stripped := jsonc.ToJSON(data)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return nil, fmt.Errorf("driverconfig: parse: %w", err)
	}

	kinds := make(map[string]load.DriverTypeKind, len(raw))
	for typeName, value := range raw {
		if typeName == "" {
			return nil, ErrEmptyTypeName
		}
		kindName, err := decodeKindName(value)
		if err != nil {
			return nil, fmt.Errorf("driverconfig: %q: %w", typeName, err)
		}
		kind, ok := parseKind(kindName)
		if !ok {
			return nil, fmt.Errorf("driverconfig: %q: unknown kind %q", typeName, kindName)
		}
		kinds[typeName] = kind
	}

	return &Registry{kinds: kinds}, nil
}

func decodeKindName(value json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(value, &asString); err == nil {
		return asString, nil
	}
	var asEntry rawEntry
	if err := json.Unmarshal(value, &asEntry); err != nil {
		return "", fmt.Errorf("entry must be a string or an object with a kind field: %w", err)
	}
	return asEntry.Kind, nil
}

func parseKind(name string) (load.DriverTypeKind, bool) {
	switch name {
	case "fixed_size":
		return load.DriverTypeFixedSize, true
	case "requires_size":
		return load.DriverTypeRequiresSize, true
	case "requires_precision":
		return load.DriverTypeRequiresPrecision, true
	case "identifier_compatible":
		return load.DriverTypeIdentifierCompatible, true
	default:
		return 0, false
	}
}
