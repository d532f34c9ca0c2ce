package complete

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/schema"
)

// Run executes phases 1 through 4 over every schema in registry, in strict
// sequence (spec §4.2-§4.5): the Local Semantic Checker, the
// Implementation-Tree Builder, the Inheritance-Graph Builder, and the Full
// Name Binder. Each phase batches every violation of its own rules into
// collector before Run decides whether to continue to the next; a phase
// that leaves collector holding any error stops the pipeline there.
//
// Run reports, via its bool result, whether every schema is eligible to
// proceed to phase 5 (realization). It never clears or resets collector.
func Run(registry *schema.Registry, collector *diag.Collector) bool {
	schemas := registry.All()

	if !runPhase1(schemas, collector) {
		return false
	}
	if !runPhase2(schemas, collector) {
		return false
	}
	if !runPhase3(schemas, collector) {
		return false
	}
	return runPhase4(schemas, collector)
}
