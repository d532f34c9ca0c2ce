// Package yammm is the root of the YASDL schema compiler module.
//
// The module loads schemas written in the YASDL definition language, checks
// them in a series of numbered phases, and realizes their definitions into a
// result that downstream collaborators (such as database drivers) consume.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//	  - immutable: Read-only wrappers for safe data sharing
//
//	Core library tier:
//	  - schema: Definitions, the schema registry, and schema loading
//	  - realize: Realization fixpoint and the requirement and global checks
//
//	Adapter tier:
//	  - adapter/driverconfig: Driver type registry parsed from JSONC
//
// # Entry Points
//
// Schema loading:
//
//	import "github.com/simon-lentz/yasdl/schema/load"
//
//	schema, result, err := load.Load(ctx, "path/to/schema.yammm")
//	if err != nil {
//	    // I/O or internal error
//	}
//	if result.HasErrors() {
//	    // Schema compilation errors
//	}
//
// Realization: [github.com/simon-lentz/yasdl/realize.Realize] runs the
// realization fixpoint over the schemas held in a schema registry, and
// [github.com/simon-lentz/yasdl/realize.Check] runs the requirement and
// global checks on its result. Both report issues to a [diag.Collector]
// and return false when errors were found.
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/simon-lentz/yasdl/diag]: Structured diagnostics
//   - [github.com/simon-lentz/yasdl/location]: Source location tracking
//   - [github.com/simon-lentz/yasdl/immutable]: Read-only data wrappers
//   - [github.com/simon-lentz/yasdl/schema]: Schema types and constraints
//   - [github.com/simon-lentz/yasdl/schema/load]: Schema file loading
//   - [github.com/simon-lentz/yasdl/schema/build]: Programmatic schema building
//   - [github.com/simon-lentz/yasdl/realize]: Realization and final checks
//   - [github.com/simon-lentz/yasdl/adapter/driverconfig]: Driver type registry
package yammm
