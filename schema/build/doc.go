// Package build provides a fluent, closure-based builder for assembling
// *schema.Schema values in Go code rather than parsing them from source
// text. It is the programmatic counterpart to schema/load: where Load
// parses a document into a Definition arena, Builder lets a caller build
// the same arena directly, which is useful for tests covering
// schema/internal/complete and realize without round-tripping through the
// parser.
//
// Nesting is expressed via closures rather than a Done()-style call stack:
// AddFieldset and friends take a configure func(*DefBuilder) that receives
// the child definition's own builder, so there is never any ambiguity about
// which builder a call returns to.
//
//	s, result := build.NewBuilder().
//	    WithName("person").
//	    AddFieldset("person", func(fs *build.DefBuilder) {
//	        fs.AddField("name", func(f *build.DefBuilder) {
//	            f.WithProperty("type", schema.NewStringArg("text", location.Span{}))
//	        })
//	        fs.AddField("manager", func(f *build.DefBuilder) {
//	            f.WithProperty("references", schema.NewNameArg(ref))
//	        })
//	    }).
//	    Build()
//
// Definition.Documentation is fixed at construction time, so a DefBuilder
// cannot retroactively attach a doc comment to a definition after it has
// been created; callers who need documented output definitions should
// continue to use schema/load instead.
//
// A built schema is unchecked: it has the static shape a caller assembled,
// but has not been run through schema/internal/complete.Run or
// realize.Realize.
package build
