package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/internal/source"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/internal/alias"
	"github.com/simon-lentz/yasdl/schema/internal/parse"
)

// rootLoader provides sandboxed file access for imports using os.Root.
// This uses kernel-level file access controls rather than string-based
// path validation, eliminating TOCTOU race conditions.
type rootLoader struct {
	root     *os.Root
	rootPath string // Canonical absolute path for SourceID construction
}

// newRootLoader creates a rootLoader for sandboxed import file access.
func newRootLoader(moduleRoot string) (*rootLoader, error) {
	root, err := os.OpenRoot(moduleRoot)
	if err != nil {
		return nil, fmt.Errorf("open module root %q: %w", moduleRoot, err)
	}
	canonicalRoot, err := makeCanonicalPath(moduleRoot)
	if err != nil {
		_ = root.Close() // best-effort cleanup; primary error is canonicalization failure
		return nil, fmt.Errorf("canonicalize module root %q: %w", moduleRoot, err)
	}
	return &rootLoader{root: root, rootPath: canonicalRoot}, nil
}

// openFile opens a file relative to the module root with sandboxed access.
// Returns a *pathEscapeError if the path would escape the module root.
func (rl *rootLoader) openFile(relativePath string) (*os.File, error) {
	cleanPath := filepath.Clean(relativePath)
	f, err := rl.root.Open(cleanPath)
	if err != nil {
		return nil, rl.handleOpenError(err, relativePath)
	}
	return f, nil
}

// readFile reads a file relative to the module root with sandboxed access,
// returning the SourceID the file's canonical absolute path maps to.
func (rl *rootLoader) readFile(relativePath string) ([]byte, location.SourceID, error) {
	f, err := rl.openFile(relativePath)
	if err != nil {
		return nil, location.SourceID{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, location.SourceID{}, fmt.Errorf("read import %q: %w", relativePath, err)
	}

	cleanPath := filepath.Clean(relativePath)
	absPath := filepath.Join(rl.rootPath, cleanPath)
	sourceID, err := location.SourceIDFromAbsolutePath(absPath)
	if err != nil {
		return nil, location.SourceID{}, fmt.Errorf("create source ID for %q: %w", relativePath, err)
	}

	return content, sourceID, nil
}

// handleOpenError converts os.Root errors to appropriate domain errors.
func (rl *rootLoader) handleOpenError(err error, requestedPath string) error {
	if errors.Is(err, fs.ErrInvalid) {
		return &pathEscapeError{path: requestedPath}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if pathErr.Err != nil && strings.Contains(pathErr.Err.Error(), "escapes") {
			return &pathEscapeError{path: requestedPath}
		}
	}

	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("import file %q not found", requestedPath)
	}
	return fmt.Errorf("open import file %q: %w", requestedPath, err)
}

// Close releases the underlying os.Root handle.
func (rl *rootLoader) Close() error {
	if err := rl.root.Close(); err != nil {
		return fmt.Errorf("close module root: %w", err)
	}
	return nil
}

// pathEscapeError indicates an import path attempted to escape the module root.
type pathEscapeError struct {
	path string
}

func (e *pathEscapeError) Error() string {
	return fmt.Sprintf("import path %q escapes module root", e.path)
}

// Load loads a schema from a file path, recursively resolving every
// `use`/`require` import it reaches, including the implicit `venus` import
// attached to every top schema (spec §4.1).
//
// The path must be an absolute or relative path to a .yasdl file. Imports
// are resolved relative to the module root (WithModuleRoot) and any
// directories supplied via WithSearchPath.
//
// ctx must not be nil. Passing nil will panic.
// On error, Schema is nil but diag.Result may contain useful diagnostics.
func Load(ctx context.Context, path string, opts ...Option) (*schema.Schema, diag.Result, error) {
	if ctx == nil {
		panic("load.Load: context must not be nil")
	}

	cfg := defaultConfig()
	applyOptions(cfg, opts)

	absPath, err := makeCanonicalPath(path)
	if err != nil {
		return nil, diag.Result{}, fmt.Errorf("resolve path %q: %w", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, diag.Result{}, fmt.Errorf("read %q: %w", absPath, err)
	}

	moduleRoot := cfg.moduleRoot
	if moduleRoot == "" {
		moduleRoot = filepath.Dir(absPath)
	} else {
		moduleRoot, err = makeCanonicalPath(moduleRoot)
		if err != nil {
			return nil, diag.Result{}, fmt.Errorf("invalid module root %q: %w", cfg.moduleRoot, err)
		}
	}

	ldr, err := newLoader(cfg, moduleRoot)
	if err != nil {
		return nil, diag.Result{}, err
	}
	defer ldr.Close()

	return ldr.loadFile(ctx, absPath, content)
}

// LoadString loads a schema from a string source.
//
// The sourceName is used as the display path in diagnostics. Import
// declarations are rejected (E_IMPORT_NOT_ALLOWED): a string source has no
// module root to resolve dotted-name imports against.
//
// ctx must not be nil. Passing nil will panic.
// On error, Schema is nil but diag.Result may contain useful diagnostics.
func LoadString(ctx context.Context, sourceCode, sourceName string, opts ...Option) (*schema.Schema, diag.Result, error) {
	if ctx == nil {
		panic("load.LoadString: context must not be nil")
	}

	cfg := defaultConfig()
	applyOptions(cfg, opts)
	cfg.disallowImports = true

	sourceID := location.NewSourceID("string://" + sourceName)

	ldr, err := newLoader(cfg, "")
	if err != nil {
		return nil, diag.Result{}, err
	}
	defer ldr.Close()

	return ldr.loadSource(ctx, sourceID, []byte(sourceCode))
}

// LoadSources loads a schema from in-memory sources.
//
// The sources map keys are paths relative to moduleRoot, and values are
// the file contents. The entry point is the lexicographically smallest key.
// Use LoadSourcesWithEntry to specify the entry point explicitly.
//
// ctx must not be nil. Passing nil will panic.
// On error, Schema is nil but diag.Result may contain useful diagnostics.
func LoadSources(ctx context.Context, sources map[string][]byte, moduleRoot string, opts ...Option) (*schema.Schema, diag.Result, error) {
	if ctx == nil {
		panic("load.LoadSources: context must not be nil")
	}
	return LoadSourcesWithEntry(ctx, sources, "", moduleRoot, opts...)
}

// LoadSourcesWithEntry loads a schema from in-memory sources with an explicit
// entry point.
//
// The sources map keys are paths relative to moduleRoot (or absolute paths),
// and values are the file contents. If entryPath is empty, the
// lexicographically smallest key is used, matching LoadSources.
//
// ctx must not be nil. Passing nil will panic.
// On error, Schema is nil but diag.Result may contain useful diagnostics.
func LoadSourcesWithEntry(ctx context.Context, sources map[string][]byte, entryPath string, moduleRoot string, opts ...Option) (*schema.Schema, diag.Result, error) {
	if ctx == nil {
		panic("load.LoadSourcesWithEntry: context must not be nil")
	}
	if len(sources) == 0 {
		return nil, diag.Result{}, errors.New("no sources provided")
	}

	cfg := defaultConfig()
	applyOptions(cfg, opts)

	if moduleRoot != "" {
		var err error
		moduleRoot, err = makeCanonicalPath(moduleRoot)
		if err != nil {
			return nil, diag.Result{}, fmt.Errorf("invalid module root %q: %w", moduleRoot, err)
		}
	}

	ldr, err := newLoader(cfg, moduleRoot)
	if err != nil {
		return nil, diag.Result{}, err
	}
	defer ldr.Close()

	resolvePath := func(path string) (string, error) {
		if filepath.IsAbs(path) {
			return makeCanonicalPath(path)
		}
		return makeCanonicalPath(filepath.Join(moduleRoot, path))
	}

	for path, content := range sources {
		absPath, err := resolvePath(path)
		if err != nil {
			return nil, diag.Result{}, fmt.Errorf("canonicalize path %q: %w", path, err)
		}
		sourceID, err := location.SourceIDFromAbsolutePath(absPath)
		if err != nil {
			return nil, diag.Result{}, fmt.Errorf("invalid path %q: %w", path, err)
		}
		if err := ldr.sourceRegistry.Register(sourceID, content); err != nil {
			return nil, diag.Result{}, fmt.Errorf("register source %q: %w", path, err)
		}
		ldr.sourceContent[sourceID] = content
	}

	selectedEntry := entryPath
	if selectedEntry == "" {
		for path := range sources {
			if selectedEntry == "" || path < selectedEntry {
				selectedEntry = path
			}
		}
	}

	entryAbsPath, err := resolvePath(selectedEntry)
	if err != nil {
		return nil, diag.Result{}, fmt.Errorf("canonicalize entry path %q: %w", selectedEntry, err)
	}
	sourceID, err := location.SourceIDFromAbsolutePath(entryAbsPath)
	if err != nil {
		return nil, diag.Result{}, fmt.Errorf("invalid entry path %q: %w", entryAbsPath, err)
	}
	content, ok := ldr.sourceContent[sourceID]
	if !ok {
		return nil, diag.Result{}, fmt.Errorf("entry path %q not found in sources", selectedEntry)
	}

	return ldr.loadSource(ctx, sourceID, content)
}

// loader drives one Load/LoadString/LoadSources invocation, translating and
// resolving every schema it reaches (spec §4.1 "Loader & Schema Registry").
type loader struct {
	cfg            *config
	moduleRoot     string
	rootLoader     *rootLoader // sandboxed file access under moduleRoot; nil until first needed
	registry       *schema.Registry
	sourceRegistry *source.Registry
	collector      *diag.Collector
	logger         *slog.Logger

	mu            sync.Mutex
	sourceContent map[location.SourceID][]byte
	loadedSchemas map[location.SourceID]*schema.Schema
}

// newLoader creates a new loader with the given configuration.
// Returns ErrSourceStoreNotSupported if a custom SourceStore implementation
// is provided that is not *source.Registry.
func newLoader(cfg *config, moduleRoot string) (*loader, error) {
	registry := cfg.registry
	if registry == nil {
		registry = schema.NewRegistry()
	}

	var sourceReg *source.Registry
	if cfg.sourceRegistry != nil {
		sr, ok := cfg.sourceRegistry.(*source.Registry)
		if !ok {
			return nil, ErrSourceStoreNotSupported
		}
		sourceReg = sr
	}
	if sourceReg == nil {
		sourceReg = source.NewRegistry()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &loader{
		cfg:            cfg,
		moduleRoot:     moduleRoot,
		registry:       registry,
		sourceRegistry: sourceReg,
		collector:      diag.NewCollector(cfg.issueLimit),
		logger:         logger,
		sourceContent:  make(map[location.SourceID][]byte),
		loadedSchemas:  make(map[location.SourceID]*schema.Schema),
	}, nil
}

// ensureRootLoader lazily creates the rootLoader the first time a
// filesystem-relative import needs sandboxed access.
func (l *loader) ensureRootLoader() error {
	if l.rootLoader != nil || l.moduleRoot == "" {
		return nil
	}
	rl, err := newRootLoader(l.moduleRoot)
	if err != nil {
		return err
	}
	l.rootLoader = rl
	return nil
}

// Close releases any resources held by the loader.
func (l *loader) Close() error {
	if l.rootLoader != nil {
		return l.rootLoader.Close()
	}
	return nil
}

// loadFile loads a schema from a file path already read into content.
func (l *loader) loadFile(ctx context.Context, absPath string, content []byte) (*schema.Schema, diag.Result, error) {
	sourceID, err := location.SourceIDFromAbsolutePath(absPath)
	if err != nil {
		l.collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL,
			fmt.Sprintf("invalid source path %q: %v", absPath, err)).Build())
		return nil, l.collector.Result(), nil
	}

	l.sourceContent[sourceID] = content

	return l.loadSource(ctx, sourceID, content)
}

// loadSource parses, translates, and resolves the imports of one schema
// (spec §4.1). It recurses into loadImport for every `use`/`require`
// statement plus the implicit `venus` requirement attached to every top
// schema, and is itself re-entrant: a schema reached twice via distinct
// `use`/`require` cycles (legal per spec §4.1) returns its already-loaded
// form rather than re-translating it.
func (l *loader) loadSource(ctx context.Context, sourceID location.SourceID, content []byte) (*schema.Schema, diag.Result, error) {
	l.mu.Lock()
	if s, ok := l.loadedSchemas[sourceID]; ok {
		l.mu.Unlock()
		return s, l.collector.Result(), nil
	}
	l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, l.collector.Result(), fmt.Errorf("load cancelled: %w", err)
	}

	l.logger.Debug("loading schema", "source", sourceID.String())

	if _, ok := l.sourceContent[sourceID]; !ok {
		l.sourceContent[sourceID] = content
	}
	if err := l.sourceRegistry.Register(sourceID, content); err != nil {
		l.collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL,
			fmt.Sprintf("register source %s: %v", sourceID, err)).Build())
		return nil, l.collector.Result(), nil
	}

	doc, err := parse.Parse(sourceID, string(content))
	if err != nil {
		var syn *parse.SyntaxError
		if errors.As(err, &syn) {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_SYNTAX, syn.Message).
				WithSpan(syn.Span).Build())
		} else {
			l.collector.Collect(diag.NewIssue(diag.Fatal, diag.E_IO,
				fmt.Sprintf("read %s: %v", sourceID, err)).Build())
		}
		return nil, l.collector.Result(), nil
	}

	if !l.validateImports(sourceID, doc) {
		return nil, l.collector.Result(), nil
	}

	s := translate(doc, sourceID)

	// Register the translated (but not yet import-resolved) schema before
	// recursing into its own imports, so a `use`/`require` cycle among
	// distinct schemas (permitted per spec §4.1) can obtain a reference to
	// it instead of looping back into this function.
	l.mu.Lock()
	l.loadedSchemas[sourceID] = s
	l.mu.Unlock()

	imports, ok, err := l.resolveImports(ctx, sourceID, doc.Imports)
	if err != nil {
		return nil, l.collector.Result(), err
	}
	if !ok {
		l.forgetSchema(sourceID)
		return nil, l.collector.Result(), nil
	}
	s.SetImports(imports)
	for _, imp := range imports {
		imp.Seal()
	}

	if !l.checkPackageName(sourceID, s) {
		l.forgetSchema(sourceID)
		return nil, l.collector.Result(), nil
	}

	if l.collector.HasErrors() {
		l.forgetSchema(sourceID)
		return nil, l.collector.Result(), nil
	}

	s.SetSources(schema.NewSources(l.sourceRegistry))
	s.Seal()

	if err := l.registry.Register(s); err != nil {
		var regErr *schema.RegistryError
		if errors.As(err, &regErr) && regErr.Kind == schema.DuplicateName {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_PACKAGE_NAME,
				fmt.Sprintf("package %q is already loaded from a different source", s.Name())).
				WithSpan(s.Span()).
				WithDetail(diag.DetailKeyName, s.Name()).Build())
		} else {
			l.collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL,
				fmt.Sprintf("register schema: %v", err)).Build())
		}
		l.forgetSchema(sourceID)
		return nil, l.collector.Result(), nil
	}

	l.logger.Debug("schema loaded",
		"source", sourceID.String(),
		"name", s.Name(),
		"outermost", len(s.OutermostSlice()),
		"imports", len(s.ImportsSlice()))

	return s, l.collector.Result(), nil
}

// forgetSchema removes a failed schema from loadedSchemas so its presence
// does not mask the failure from a sibling import that reaches it again.
func (l *loader) forgetSchema(sourceID location.SourceID) {
	l.mu.Lock()
	delete(l.loadedSchemas, sourceID)
	l.mu.Unlock()
}

// validateImports checks for self-import, duplicate imports, and malformed
// aliases ahead of translation (spec §4.1 step 3, §4.2 step 1).
func (l *loader) validateImports(sourceID location.SourceID, doc *parse.Document) bool {
	if l.cfg.disallowImports && len(doc.Imports) > 0 {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPORT_NOT_ALLOWED,
			"import declarations are not permitted in this context").
			WithSpan(doc.Imports[0].Span).
			WithDetail(diag.DetailKeyImportCount, strconv.Itoa(len(doc.Imports))).Build())
		return false
	}

	ownName := canonicalName(doc.PackageName)

	seenTargets := make(map[string]*parse.ImportDecl)
	seenAliases := make(map[string]*parse.ImportDecl)

	for _, imp := range doc.Imports {
		target := imp.Target
		if !imp.IsURI {
			target = strings.ToLower(target)
		}

		if !imp.IsURI && target == ownName {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPORT_CYCLE,
				fmt.Sprintf("schema %q cannot import itself", ownName)).
				WithSpan(imp.Span).Build())
			return false
		}

		if existing, ok := seenTargets[target]; ok {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_IMPORT,
				fmt.Sprintf("duplicate import of %q", imp.Target)).
				WithSpan(imp.Span).
				WithRelated(location.RelatedInfo{Span: existing.Span, Message: location.MsgImportedFrom}).Build())
			return false
		}
		seenTargets[target] = imp

		if imp.HasAlias {
			if !alias.IsValidAlias(imp.Alias) {
				l.collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ALIAS,
					fmt.Sprintf("import alias %q is not a valid identifier", imp.Alias)).
					WithSpan(imp.Span).
					WithDetail(diag.DetailKeyAlias, imp.Alias).Build())
				return false
			}
			if alias.IsReservedWord(imp.Alias) {
				l.collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_ALIAS,
					fmt.Sprintf("import alias %q is a reserved word", imp.Alias)).
					WithSpan(imp.Span).
					WithDetail(diag.DetailKeyAlias, imp.Alias).Build())
				return false
			}
		} else if imp.IsURI || !isSimpleDottedName(imp.Target) {
			// spec §4.1 step 3: "an alias is mandatory unless the dotted
			// name is a single simple name", and always mandatory for URIs.
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_ALIAS_REQUIRED,
				fmt.Sprintf("import of %q requires an explicit alias", imp.Target)).
				WithSpan(imp.Span).
				WithDetail(diag.DetailKeyImportPath, imp.Target).Build())
			return false
		}

		effectiveAlias := imp.Alias
		if effectiveAlias == "" {
			effectiveAlias = imp.Target // mandatory-alias exemption only applies to single simple segments
		}
		if existing, ok := seenAliases[effectiveAlias]; ok {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPORT_ALIAS_COLLISION,
				fmt.Sprintf("import alias %q is used more than once", effectiveAlias)).
				WithSpan(imp.Span).
				WithRelated(location.RelatedInfo{Span: existing.Span, Message: location.MsgDeclaredHere}).Build())
			return false
		}
		seenAliases[effectiveAlias] = imp

		if effectiveAlias == "venus" {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPORT_ALIAS_COLLISION,
				`import alias "venus" is reserved for the implicit built-in import`).
				WithSpan(imp.Span).Build())
			return false
		}
	}

	return true
}

// isSimpleDottedName reports whether a dotted import target (a '.'-joined
// string at the syntax level, see parse.ImportDecl.Target) is a single
// unqualified segment.
func isSimpleDottedName(target string) bool {
	return target != "" && !strings.Contains(target, ".")
}

// resolveImports resolves every import in decls, plus the implicit venus
// requirement, recursing into loadSource for each. venus is prepended
// (spec §4.1 step 4: "implicitly prepended to the search path").
func (l *loader) resolveImports(ctx context.Context, sourceID location.SourceID, decls []*parse.ImportDecl) ([]*schema.Import, bool, error) {
	venus, err := l.loadVenus()
	if err != nil {
		l.collector.Collect(diag.NewIssue(diag.Fatal, diag.E_IO,
			fmt.Sprintf("load built-in venus package: %v", err)).Build())
		return nil, false, nil
	}

	imports := make([]*schema.Import, 0, len(decls)+1)
	imports = append(imports, implicitVenusImport(venus))

	for _, decl := range decls {
		if err := ctx.Err(); err != nil {
			return nil, false, fmt.Errorf("load cancelled: %w", err)
		}

		resolvedSourceID, s, ok, err := l.loadImport(ctx, sourceID, decl)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}

		importAlias := decl.Alias
		if importAlias == "" {
			importAlias = decl.Target
		}
		imp := schema.NewImport(decl.Kind, decl.Target, importAlias, decl.Span)
		imp.SetResolvedSourceID(resolvedSourceID)
		imp.SetSchema(s)
		imports = append(imports, imp)
	}

	return imports, true, nil
}

// loadImport resolves and recursively loads one `use`/`require` target.
func (l *loader) loadImport(ctx context.Context, sourceID location.SourceID, decl *parse.ImportDecl) (location.SourceID, *schema.Schema, bool, error) {
	l.logger.Debug("loading import", "target", decl.Target, "is_uri", decl.IsURI, "alias", decl.Alias)

	if decl.IsURI {
		return l.loadURIImport(ctx, decl)
	}
	return l.loadModuleImport(ctx, sourceID, decl)
}

// loadURIImport fetches and loads a `use`/`require "http://..."` target
// (spec §4.1 step 3: URIs load over http/https/ftp with no authentication).
func (l *loader) loadURIImport(ctx context.Context, decl *parse.ImportDecl) (location.SourceID, *schema.Schema, bool, error) {
	targetSourceID := location.NewSourceID(decl.Target)

	l.mu.Lock()
	if s, ok := l.loadedSchemas[targetSourceID]; ok {
		l.mu.Unlock()
		return targetSourceID, s, true, nil
	}
	l.mu.Unlock()

	content, err := l.cfg.fetcher(ctx, decl.Target)
	if err != nil {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IO,
			fmt.Sprintf("fetch import %q: %v", decl.Target, err)).
			WithSpan(decl.Span).
			WithDetail(diag.DetailKeyImportPath, decl.Target).Build())
		return location.SourceID{}, nil, false, nil
	}

	s, _, err := l.loadSource(ctx, targetSourceID, content)
	if err != nil {
		return location.SourceID{}, nil, false, err
	}
	if s == nil {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_UPSTREAM_FAIL,
			fmt.Sprintf("import %q failed to compile", decl.Target)).
			WithSpan(decl.Span).
			WithDetail(diag.DetailKeyImportPath, decl.Target).Build())
		return location.SourceID{}, nil, false, nil
	}

	return targetSourceID, s, true, nil
}

// loadModuleImport resolves a dotted-name import to a file under the module
// root or one of the configured search-path directories (spec §4.1 step 3).
func (l *loader) loadModuleImport(ctx context.Context, _ location.SourceID, decl *parse.ImportDecl) (location.SourceID, *schema.Schema, bool, error) {
	relativePath := dottedNameToFilePath(decl.Target)

	content, targetSourceID, err := l.readModuleFile(relativePath)
	if err != nil {
		var escapeErr *pathEscapeError
		if errors.As(err, &escapeErr) {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_PATH_ESCAPE,
				fmt.Sprintf("import %q escapes module root", decl.Target)).
				WithSpan(decl.Span).
				WithDetail(diag.DetailKeyImportPath, decl.Target).Build())
			return location.SourceID{}, nil, false, nil
		}
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPORT_RESOLVE,
			fmt.Sprintf("cannot resolve import %q: %v", decl.Target, err)).
			WithSpan(decl.Span).
			WithDetail(diag.DetailKeyImportPath, decl.Target).Build())
		return location.SourceID{}, nil, false, nil
	}

	l.mu.Lock()
	if s, ok := l.loadedSchemas[targetSourceID]; ok {
		l.mu.Unlock()
		return targetSourceID, s, true, nil
	}
	l.mu.Unlock()

	s, _, err := l.loadSource(ctx, targetSourceID, content)
	if err != nil {
		return location.SourceID{}, nil, false, err
	}
	if s == nil {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_UPSTREAM_FAIL,
			fmt.Sprintf("import %q failed to compile", decl.Target)).
			WithSpan(decl.Span).
			WithDetail(diag.DetailKeyImportPath, decl.Target).Build())
		return location.SourceID{}, nil, false, nil
	}

	return targetSourceID, s, true, nil
}

// dottedNameToFilePath converts a dotted import target into the relative
// file path the spec describes: each non-final segment is a directory, the
// final segment is a file with the .yasdl extension (spec §4.1 step 3).
func dottedNameToFilePath(target string) string {
	segs := strings.Split(target, ".")
	return filepath.Join(segs...) + ".yasdl"
}

// readModuleFile locates relativePath, trying in order: a source
// pre-registered via LoadSources, the module root (sandboxed via
// rootLoader), then each WithSearchPath directory (spec §4.1 step 3: "the
// search path is the current directory followed by entries from the
// environment/configuration").
func (l *loader) readModuleFile(relativePath string) ([]byte, location.SourceID, error) {
	if candidateID, ok := l.inMemoryCandidateID(relativePath); ok {
		if content, ok := l.sourceContent[candidateID]; ok {
			return content, candidateID, nil
		}
	}

	if err := l.ensureRootLoader(); err != nil {
		return nil, location.SourceID{}, fmt.Errorf("initialize sandboxed loader: %w", err)
	}

	if l.rootLoader != nil {
		content, sourceID, err := l.rootLoader.readFile(relativePath)
		if err == nil {
			return content, sourceID, nil
		}
		var escapeErr *pathEscapeError
		if errors.As(err, &escapeErr) {
			return nil, location.SourceID{}, err
		}
	}

	var lastErr error
	for _, dir := range l.cfg.searchPath {
		if filepath.IsAbs(dir) {
			candidate := filepath.Join(dir, relativePath)
			content, err := os.ReadFile(candidate)
			if err != nil {
				lastErr = err
				continue
			}
			sourceID, err := location.SourceIDFromAbsolutePath(candidate)
			if err != nil {
				return nil, location.SourceID{}, fmt.Errorf("create source ID for %q: %w", candidate, err)
			}
			return content, sourceID, nil
		}

		if l.rootLoader == nil {
			continue
		}
		candidate := filepath.Join(dir, relativePath)
		content, sourceID, err := l.rootLoader.readFile(candidate)
		if err == nil {
			return content, sourceID, nil
		}
		var escapeErr *pathEscapeError
		if errors.As(err, &escapeErr) {
			return nil, location.SourceID{}, err
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, location.SourceID{}, lastErr
	}
	return nil, location.SourceID{}, fmt.Errorf("import file %q not found", relativePath)
}

// inMemoryCandidateID computes the SourceID an in-memory LoadSources entry
// would have been registered under for relativePath.
func (l *loader) inMemoryCandidateID(relativePath string) (location.SourceID, bool) {
	if l.moduleRoot == "" {
		return location.SourceID{}, false
	}
	absPath := filepath.Join(l.moduleRoot, relativePath)
	id, err := location.SourceIDFromAbsolutePath(absPath)
	if err != nil {
		return location.SourceID{}, false
	}
	return id, true
}

// checkPackageName enforces spec §4.1 step 5: a locally loaded schema's
// declared package name must exactly match the dotted path used to reach
// it, and a URI-loaded schema's package name must start with the
// reverse-DNS of its host ("www." optional on either side).
func (l *loader) checkPackageName(sourceID location.SourceID, s *schema.Schema) bool {
	cp, isFile := sourceID.CanonicalPath()
	if isFile {
		if l.moduleRoot == "" {
			return true // entry point loaded directly by path; no dotted name to compare against
		}
		rel, err := filepath.Rel(l.moduleRoot, cp.String())
		if err != nil || strings.HasPrefix(rel, "..") {
			return true // outside the module root (e.g. the initial Load path); nothing to compare
		}
		rel = strings.TrimSuffix(rel, ".yasdl")
		expected := strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
		if expected != s.Name() {
			l.collector.Collect(diag.NewIssue(diag.Error, diag.E_PACKAGE_NAME_MISMATCH,
				fmt.Sprintf("package name %q does not match its path %q", s.Name(), expected)).
				WithSpan(s.Span()).
				WithExpectedGot(expected, s.Name()).Build())
			return false
		}
		return true
	}

	host, isURI := uriHost(sourceID.String())
	if !isURI {
		return true // string-loaded or otherwise synthetic; no reverse-DNS constraint applies
	}
	expectedPrefix := reverseDNS(host)
	name := s.Name()
	if !strings.HasPrefix(name, expectedPrefix) {
		l.collector.Collect(diag.NewIssue(diag.Error, diag.E_PACKAGE_NAME_MISMATCH,
			fmt.Sprintf("package name %q does not start with the reverse-DNS of host %q", name, host)).
			WithSpan(s.Span()).
			WithExpectedGot(expectedPrefix+"...", name).Build())
		return false
	}
	return true
}

// uriHost extracts the host from a URI string, for the reverse-DNS check.
func uriHost(rawURI string) (string, bool) {
	for _, scheme := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(rawURI, scheme) {
			rest := rawURI[len(scheme):]
			if i := strings.IndexAny(rest, "/:"); i >= 0 {
				rest = rest[:i]
			}
			return rest, rest != ""
		}
	}
	return "", false
}

// reverseDNS computes the reverse-DNS form of a host for the package-name
// prefix check (spec §4.1 step 5). The "www." label is dropped first since
// it is optional on either side of the comparison.
func reverseDNS(host string) string {
	host = strings.TrimPrefix(host, "www.")
	segs := strings.Split(host, ".")
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, ".")
}

// makeCanonicalPath converts a path to absolute, cleaned, symlink-resolved
// form, used for trusted entry-point paths (not imports, which go through
// rootLoader's sandboxed access instead).
//
// If filepath.EvalSymlinks fails (e.g. the path doesn't exist yet, or
// permission issues in LSP scenarios), the function falls back to the
// cleaned absolute path without symlink resolution, so the loader can still
// proceed with non-existent paths for better error reporting downstream.
func makeCanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	cleaned := filepath.Clean(abs)

	if resolved, err := filepath.EvalSymlinks(cleaned); err == nil {
		return resolved, nil
	}
	return cleaned, nil
}
