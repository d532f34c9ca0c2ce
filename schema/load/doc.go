// Package load implements phase 0 of the compiler pipeline: parsing a YASDL
// schema, recursively resolving its `use`/`require` imports (including the
// implicit built-in venus package), and registering every reached schema
// into a shared Registry.
//
// No semantic checking happens here beyond what phase 0 itself owns (import
// legality, alias rules, package-name/path correspondence); later phases
// live in schema/internal/complete (phases 1-4) and realize (phases 5-7).
//
// # Basic Usage
//
//	s, result, err := load.Load(ctx, "path/to/schema.yasdl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.HasErrors() {
//	    for issue := range result.Issues() {
//	        fmt.Println(issue)
//	    }
//	}
//
// # String Loading
//
// For testing, use LoadString. Import declarations are rejected, since a
// string source has no module root to resolve them against:
//
//	s, result, err := load.LoadString(ctx, source, "test.yasdl")
//
// # In-Memory Sources
//
// For test scenarios with imports, without touching the filesystem:
//
//	sources := map[string][]byte{
//	    "main.yasdl":   mainContent,
//	    "common.yasdl": commonContent,
//	}
//	s, result, err := load.LoadSources(ctx, sources, "/project")
//
// # Options
//
// Customize loading behavior with options:
//
//	s, result, err := load.Load(ctx, path,
//	    load.WithRegistry(registry),
//	    load.WithModuleRoot("/project"),
//	    load.WithSearchPath("/usr/local/share/yasdl"),
//	    load.WithFetcher(myFetcher),
//	    load.WithIssueLimit(50),
//	)
package load
