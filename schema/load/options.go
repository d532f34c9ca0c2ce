package load

import (
	"errors"
	"log/slog"

	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// ErrSourceStoreNotSupported is returned when WithSourceRegistry is called
// with a SourceStore implementation that is not *source.Registry.
//
// The current implementation requires *source.Registry for full functionality.
// Custom SourceStore implementations may be supported in future versions.
// Use source.NewRegistry() for compatibility.
var ErrSourceStoreNotSupported = errors.New("custom SourceStore implementation not supported; use *source.Registry")

// Option configures the behavior of Load functions.
type Option func(*config)

// config holds configuration for schema loading.
type config struct {
	registry           *schema.Registry
	moduleRoot         string
	searchPath         []string
	issueLimit         int
	sourceRegistry     SourceStore
	logger             *slog.Logger
	disallowImports    bool
	fetcher            Fetcher
	driverTypeRegistry DriverTypeRegistry
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{
		issueLimit: 100,
		fetcher:    defaultFetcher,
	}
}

// applyOptions applies all options to the config.
func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithRegistry provides a schema registry for cross-schema type resolution.
// Schemas loaded via imports will be registered automatically.
// If nil, a new registry is created for the load operation.
func WithRegistry(r *schema.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithModuleRoot sets the root directory for module-style imports.
// This option is only meaningful for Load() which operates on filesystem paths.
// For LoadString() and LoadSources(), the module root is inferred or provided directly.
func WithModuleRoot(root string) Option {
	return func(c *config) {
		c.moduleRoot = root
	}
}

// WithSearchPath appends directories consulted, in order, when a dotted-name
// import does not resolve relative to the module root (spec §4.1 step 3:
// "the search path is the current directory followed by entries from the
// environment/configuration"). Each directory is tried in the given order
// after the module root itself.
//
// Parsing `~/.yasdlrc` is the CLI's responsibility, not this package's;
// WithSearchPath is how a caller feeds this loader the paths such a config
// file resolved to. See also LoadEnvSearchPath for a YAML-based helper.
func WithSearchPath(dirs ...string) Option {
	return func(c *config) {
		c.searchPath = append(c.searchPath, dirs...)
	}
}

// WithIssueLimit sets the maximum number of diagnostic issues to collect.
// When the limit is reached, loading continues but additional issues are dropped.
// Set to 0 for unlimited. Default is 100.
func WithIssueLimit(limit int) Option {
	return func(c *config) {
		c.issueLimit = limit
	}
}

// SourceStore provides source content and position information.
// This interface abstracts the source registry for testability and LSP integration.
// The interface is designed to be compatible with *source.Registry.
type SourceStore interface {
	// Register adds source content for a file. Implementations should handle
	// re-registration gracefully (e.g., return error or no-op if already registered).
	Register(sourceID location.SourceID, content []byte) error
	// PositionAt converts a byte offset to a position.
	// Returns a zero Position if the source or offset is invalid.
	// Use Position.IsZero() to check for "not found".
	PositionAt(sourceID location.SourceID, byteOffset int) location.Position
	// RuneToByteOffset converts a rune offset to a byte offset.
	// Returns (offset, false) if the source or rune offset is invalid.
	RuneToByteOffset(sourceID location.SourceID, runeOffset int) (int, bool)
}

// WithSourceRegistry provides a custom source registry for position tracking.
// If not provided, a new source registry is created for the load operation.
//
// IMPORTANT: Currently only *source.Registry is supported. Passing a custom
// SourceStore implementation will cause Load/LoadSources/LoadString to return
// ErrSourceStoreNotSupported. This limitation exists because the internal
// implementation requires source.Registry-specific functionality.
//
// For compatibility, use source.NewRegistry() to create the store.
func WithSourceRegistry(store SourceStore) Option {
	return func(c *config) {
		c.sourceRegistry = store
	}
}

// WithDisallowImports prevents import declarations from being processed.
// When enabled, any import statements in the source produce an
// E_IMPORT_NOT_ALLOWED diagnostic. Used by LoadString (unconditionally)
// and by the LSP markdown analysis path (isolated blocks).
func WithDisallowImports() Option {
	return func(c *config) {
		c.disallowImports = true
	}
}

// WithLogger provides a structured logger for load operation diagnostics.
// If not provided, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithFetcher injects the URI fetch collaborator used to resolve `use`/
// `require` imports written as `http`/`https`/`ftp` URIs (spec §4.1 step 3,
// §6 "Fetcher"). If not provided, defaultFetcher is used.
func WithFetcher(f Fetcher) Option {
	return func(c *config) {
		c.fetcher = f
	}
}

// WithDriverTypeRegistry supplies the optional phase-8 collaborator (spec §6
// "Type registry"): a mapping from declared `type` property values to their
// storage-kind classification, consulted when resolving driver-specific
// field types beyond the built-in primitives. See adapter/driverconfig for
// a JSONC-backed implementation.
func WithDriverTypeRegistry(r DriverTypeRegistry) Option {
	return func(c *config) {
		c.driverTypeRegistry = r
	}
}

// DriverTypeKind classifies a driver-specific type name for phase-8 use
// (spec §6): whether it carries a fixed size, requires a `size` or
// `precision` argument, or is compatible as a field's `type` when the field
// is realized as an identifier reference (invariant 10).
type DriverTypeKind uint8

const (
	DriverTypeFixedSize DriverTypeKind = iota
	DriverTypeRequiresSize
	DriverTypeRequiresPrecision
	DriverTypeIdentifierCompatible
)

// DriverTypeRegistry is the optional phase-8 collaborator consulted when a
// field's `type` property names something other than a built-in primitive
// (spec §6 "Type registry (optional, for phase 8)").
type DriverTypeRegistry interface {
	Lookup(typeName string) (DriverTypeKind, bool)
}
