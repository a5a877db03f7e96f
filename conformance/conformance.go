// Package conformance drives every file under a testdata directory through
// the front-end's ordered phases (parse, CC-filter, bind, kind-check,
// coarse-type) and reports a pass/fail result per fixture, the way
// tester.ListTestCases/Tester.Run walks a directory of grammar test cases
// and runs each through the compiled grammar. There is no compiled artifact
// to run here — the "test" is simply that every phase returns cleanly (or
// fails with the expected kind), so Result carries the raw error rather
// than a tree-diff list.
package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/binder"
	"github.com/oo-lang/oofront/ccfilter"
	"github.com/oo-lang/oofront/kind"
	"github.com/oo-lang/oofront/parser"
)

// Result is one fixture's outcome.
type Result struct {
	Path  string
	File  *ast.File // nil if parsing itself failed
	Error error
}

func (r *Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("FAIL %s: %v", r.Path, r.Error)
	}
	return fmt.Sprintf("PASS %s", r.Path)
}

// noImports is a binder.Loader that rejects every `use`, for fixtures that
// are meant to stand alone — every fixture under testdata/ today is
// single-file, so no real loader.Context is needed to drive them.
type noImports struct{}

func (noImports) Load(id *ast.Id) (*ast.File, error) {
	return nil, fmt.Errorf("conformance: fixture used mod::/dep:: import %v, but no loader is configured", id.Segments)
}

// RunFixture runs the ordered phases over the single file at path with the
// given enabled cc feature set, stopping at the first error exactly as a
// real front-end run would.
func RunFixture(path string, features map[string]struct{}) *Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return &Result{Path: path, Error: err}
	}
	f, err := parser.Parse(path, src)
	if err != nil {
		return &Result{Path: path, Error: err}
	}
	ccfilter.Filter(f, ccfilter.Features(features))
	if err := binder.Bind(f, noImports{}); err != nil {
		return &Result{Path: path, File: f, Error: err}
	}
	if err := kind.Check(f, kind.LookupFromFile(f)); err != nil {
		return &Result{Path: path, File: f, Error: err}
	}
	for _, it := range f.Items {
		kind.ResolveItem(it)
	}
	return &Result{Path: path, File: f}
}

// ListFixtures returns every `.oo` file under root, sorted, the way
// tester.ListTestCases recurses a test directory.
func ListFixtures(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".oo" {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// RunAll runs every fixture under root with the given feature set.
func RunAll(root string, features map[string]struct{}) ([]*Result, error) {
	paths, err := ListFixtures(root)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(paths))
	for i, p := range paths {
		results[i] = RunFixture(p, features)
	}
	return results, nil
}
