// Package loader implements the context/module loader: Id chains rooted at
// mod/dep resolve to filesystem paths under configured roots; files are
// read, parsed, CC-filtered, and cached by absolute path exactly once.
package loader

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/module"

	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/ccfilter"
	ooerr "github.com/oo-lang/oofront/error"
	"github.com/oo-lang/oofront/parser"
)

// Config configures a Context: where mod:: and dep:: chains are rooted on
// disk, and which cc features are enabled for every file this Context loads.
type Config struct {
	ModsRoot string
	DepsRoot string
	Features map[string]struct{}
}

// Context is the single stateful object a front-end run carries: the
// mods/deps roots, the enabled feature set, and a cache keyed by absolute
// file path. Nothing else is global.
type Context struct {
	modsRoot string
	depsRoot string
	features ccfilter.Features

	cache map[string]*ast.File
}

// New constructs a Context. No file is touched until Load or LoadPath is
// called.
func New(cfg Config) *Context {
	return &Context{
		modsRoot: cfg.ModsRoot,
		depsRoot: cfg.DepsRoot,
		features: ccfilter.Features(cfg.Features),
		cache:    make(map[string]*ast.File),
	}
}

// ResolvePath turns an Id chain rooted at mod or dep into a filesystem path.
// magic:: is rejected here too (decided in DESIGN.md): it parses as a valid
// Id but never resolves.
func (c *Context) ResolvePath(id *ast.Id) (string, error) {
	switch id.Root {
	case ast.RootMagic:
		return "", ooerr.New(ooerr.KindImport, ooerr.ErrImportMagic, id.Span.Start, id.Span.Length)
	case ast.RootMod, ast.RootDep:
	default:
		return "", ooerr.New(ooerr.KindImport, ooerr.ErrImportTooShort, id.Span.Start, id.Span.Length)
	}
	if len(id.Segments) < 1 {
		return "", ooerr.New(ooerr.KindImport, ooerr.ErrImportTooShort, id.Span.Start, id.Span.Length)
	}
	for _, seg := range id.Segments {
		if err := module.CheckImportPath(seg); err != nil {
			return "", ooerr.New(ooerr.KindImport, ooerr.ErrImportBadSegment, id.Span.Start, id.Span.Length).WithDetail(seg)
		}
	}

	if id.Root == ast.RootMod {
		return joinChain(c.modsRoot, id.Segments), nil
	}
	pkg, rest := id.Segments[0], id.Segments[1:]
	if len(rest) == 0 {
		return filepath.Join(c.depsRoot, pkg, "lib.oo"), nil
	}
	return joinChain(filepath.Join(c.depsRoot, pkg), rest), nil
}

// joinChain resolves a non-empty segment chain to `<root>/s1/.../sk.oo`.
func joinChain(root string, segments []string) string {
	dirs := append([]string{root}, segments[:len(segments)-1]...)
	dirs = append(dirs, segments[len(segments)-1]+".oo")
	return filepath.Join(dirs...)
}

// Load resolves id, then loads the file it names.
func (c *Context) Load(id *ast.Id) (*ast.File, error) {
	path, err := c.ResolvePath(id)
	if err != nil {
		return nil, err
	}
	return c.LoadPath(path)
}

// LoadPath loads a file by absolute or relative path directly, the entry
// point used for a compilation's root file, which has no importing Id of
// its own. A cache hit short-circuits reading, parsing, and CC-filtering:
// each file is paid for at most once per Context.
func (c *Context) LoadPath(path string) (*ast.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ooerr.New(ooerr.KindFile, err, 0, 0).WithFile(path)
	}
	if f, ok := c.cache[abs]; ok {
		return f, nil
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, ooerr.New(ooerr.KindFile, err, 0, 0).WithFile(abs)
	}

	f, err := parser.Parse(abs, src)
	if err != nil {
		return nil, err
	}
	ccfilter.Filter(f, c.features)

	c.cache[abs] = f
	return f, nil
}

// Features returns the Context's enabled feature set.
func (c *Context) Features() ccfilter.Features {
	return c.features
}
