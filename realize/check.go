package realize

import (
	"github.com/simon-lentz/yasdl/diag"
)

// Check runs phases 6 and 7 (spec §4.7) over a Realize result: the
// requirement checker first, then the global checker. It reports whether
// the whole pipeline succeeded; Check never runs phase 7 if phase 6 left
// collector holding an error, since phase 7's checks assume a consistent
// realized set.
func Check(res *Result, collector *diag.Collector) bool {
	checkRequiredMembers(res, collector)
	if collector.HasErrors() {
		return false
	}
	checkGlobal(res, collector)
	return !collector.HasErrors()
}
