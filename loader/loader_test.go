package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oo-lang/oofront/ast"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func idMod(segs ...string) *ast.Id {
	return &ast.Id{Root: ast.RootMod, Segments: segs}
}

func idDep(segs ...string) *ast.Id {
	return &ast.Id{Root: ast.RootDep, Segments: segs}
}

func TestResolvePathMod(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	path, err := c.ResolvePath(idMod("s1", "s2", "s3"))
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	want := filepath.Join("/mods", "s1", "s2", "s3.oo")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestResolvePathDepRoot(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	path, err := c.ResolvePath(idDep("pkg"))
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	want := filepath.Join("/deps", "pkg", "lib.oo")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestResolvePathDepSubmodule(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	path, err := c.ResolvePath(idDep("pkg", "sub", "leaf"))
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	want := filepath.Join("/deps", "pkg", "sub", "leaf.oo")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestResolvePathMagicRejected(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	_, err := c.ResolvePath(&ast.Id{Root: ast.RootMagic, Segments: []string{"builtin"}})
	if err == nil {
		t.Fatal("expected an import error for magic::")
	}
}

func TestResolvePathTooShort(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	if _, err := c.ResolvePath(&ast.Id{Root: ast.RootMod, Segments: nil}); err == nil {
		t.Fatal("expected an import error for a rootless/empty chain")
	}
	if _, err := c.ResolvePath(&ast.Id{Root: ast.RootNone, Segments: []string{"a"}}); err == nil {
		t.Fatal("expected an import error for a local id passed to ResolvePath")
	}
}

func TestResolvePathRejectsTraversal(t *testing.T) {
	c := New(Config{ModsRoot: "/mods", DepsRoot: "/deps"})
	if _, err := c.ResolvePath(idMod("..", "etc")); err == nil {
		t.Fatal("expected an import error for a .. segment")
	}
}

func TestLoadPathParsesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.oo")
	writeFile(t, path, "val mut c = 0")

	c := New(Config{ModsRoot: dir, DepsRoot: dir})
	f1, err := c.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if len(f1.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(f1.Items))
	}

	f2, err := c.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() second call error = %v", err)
	}
	if f1 != f2 {
		t.Fatalf("expected the cached *ast.File on a repeat LoadPath")
	}
}

func TestLoadPathCcFilters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.oo")
	writeFile(t, path, `#[cc="dev"]val mut c = 0 #[cc="prod"]val mut c = 1`)

	c := New(Config{ModsRoot: dir, DepsRoot: dir, Features: map[string]struct{}{"prod": {}}})
	f, err := c.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if len(f.Items) != 1 {
		t.Fatalf("got %d items after CC filtering, want 1", len(f.Items))
	}
}

func TestLoadModResolvesThroughModsRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pkg", "leaf.oo"), "val mut c = 0")

	c := New(Config{ModsRoot: dir, DepsRoot: dir})
	f, err := c.Load(idMod("pkg", "leaf"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(f.Items))
	}
}

func TestLoadMissingFileSurfacesAsFileKind(t *testing.T) {
	dir := t.TempDir()
	c := New(Config{ModsRoot: dir, DepsRoot: dir})
	_, err := c.Load(idMod("nope"))
	if err == nil {
		t.Fatal("expected a file error for a missing mod file")
	}
}
