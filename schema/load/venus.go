package load

import (
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/internal/parse"
)

// venusSourceID is the synthetic source identity of the built-in venus
// package (spec §4.1 step 4: "implicitly prepended to the search path and
// implicitly required by every top schema"). It is never a file on disk, so
// it is given a synthetic URI-style SourceID rather than a canonical path.
var venusSourceID = location.NewSourceID("builtin://venus")

// venusSource is the built-in venus package. The spec names it only as an
// implicit dependency of every schema, without describing its members;
// absent an original_source reference for its contents, venus is kept
// minimal: an empty package that exists solely to anchor the implicit
// `require`, leaving room for a future release to grow real primitives
// without another loader change.
const venusSource = "schema venus;\n"

// loadVenus parses and registers the built-in venus package exactly once per
// loader, returning its already-loaded schema on subsequent calls.
func (l *loader) loadVenus() (*schema.Schema, error) {
	l.mu.Lock()
	if s, ok := l.loadedSchemas[venusSourceID]; ok {
		l.mu.Unlock()
		return s, nil
	}
	l.mu.Unlock()

	doc, err := parse.Parse(venusSourceID, venusSource)
	if err != nil {
		return nil, err // a syntax error in the built-in source is an internal bug
	}

	s := translate(doc, venusSourceID)
	s.SetSources(schema.NewSources(l.sourceRegistry))
	s.Seal()

	if err := l.sourceRegistry.Register(venusSourceID, []byte(venusSource)); err != nil {
		return nil, err
	}
	if err := l.registry.Register(s); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.loadedSchemas[venusSourceID] = s
	l.mu.Unlock()

	return s, nil
}

// implicitVenusImport builds the synthetic `require venus;` import attached
// to every top schema load, distinct from any import a schema wrote itself.
func implicitVenusImport(venus *schema.Schema) *schema.Import {
	imp := schema.NewImport(schema.ImportRequire, "venus", "venus", location.Span{})
	imp.SetResolvedSourceID(venusSourceID)
	imp.SetSchema(venus)
	imp.Seal()
	return imp
}
