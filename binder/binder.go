// Package binder implements the binding-table phase: per-file items_by_sid /
// pub_items_by_sid construction, and `use` resolution across files. It runs
// after the conditional-compilation filter and before the kind checker, per
// the context's phase-ordering guarantee.
package binder

import (
	"github.com/oo-lang/oofront/ast"
	ooerr "github.com/oo-lang/oofront/error"
)

// Loader is the subset of loader.Context the binder needs: resolving a
// mod::/dep:: Id chain to the file it names. Declared as an interface here
// so this package never imports package loader (which imports ccfilter and
// parser, not binder) — avoiding a cycle and letting tests substitute a
// fake.
type Loader interface {
	Load(id *ast.Id) (*ast.File, error)
}

// Bind populates f.ItemsBySid and f.PubItemsBySid by iterating f.Items once,
// in order. l must return files whose own binding tables are already
// populated when this file's `use` items reference them. loader.Context
// alone does not do this (its Load only parses and CC-filters); cmd/oo's
// boundLoader wraps it and binds each file the first time it is loaded.
func Bind(f *ast.File, l Loader) error {
	f.ItemsBySid = make(map[string]*ast.Item, len(f.Items))
	f.PubItemsBySid = make(map[string]*ast.Item)

	for _, it := range f.Items {
		if use, ok := it.Data.(*ast.ItemUse); ok {
			if err := bindUseTree(f, use.Tree, l); err != nil {
				return err
			}
			continue
		}
		sid, ok := it.Sid()
		if !ok {
			continue // ffi_include binds nothing
		}
		if err := checkProductFieldUniqueness(it); err != nil {
			return err
		}
		if err := declare(f, it, sid); err != nil {
			return err
		}
	}
	return nil
}

func declare(f *ast.File, it *ast.Item, sid string) error {
	if _, dup := f.ItemsBySid[sid]; dup {
		return ooerr.New(ooerr.KindDupID, ooerr.ErrDuplicateID, it.Span.Start, it.Span.Length).WithDetail(sid)
	}
	f.ItemsBySid[sid] = it
	if it.Pub {
		f.PubItemsBySid[sid] = it
	}
	return nil
}

// bindUseTree resolves one `use` item's tree. The root node's Sid is the
// mod/dep/magic keyword itself (parser.parseUseTree), which never
// contributes a path segment; every node below it does, until a leaf is
// reached whose own Sid (or Rename target) is the name being imported, not
// a path segment.
func bindUseTree(f *ast.File, tree *ast.UseTree, l Loader) error {
	root, ok := rootOf(tree.Sid)
	if !ok {
		return ooerr.New(ooerr.KindImport, ooerr.ErrImportTooShort, tree.Span.Start, tree.Span.Length).WithDetail(tree.Sid)
	}
	switch {
	case tree.Branch != nil:
		for _, child := range tree.Branch {
			if err := bindUsePath(f, child, root, nil, l); err != nil {
				return err
			}
		}
		return nil
	case tree.Next != nil:
		return bindUsePath(f, tree.Next, root, nil, l)
	default:
		return ooerr.New(ooerr.KindImport, ooerr.ErrImportTooShort, tree.Span.Start, tree.Span.Length).WithDetail(tree.Sid)
	}
}

func rootOf(sid string) (ast.IdRoot, bool) {
	switch sid {
	case "mod":
		return ast.RootMod, true
	case "dep":
		return ast.RootDep, true
	case "magic":
		return ast.RootMagic, true
	}
	return ast.RootNone, false
}

// bindUsePath walks the chain past the root keyword. A node with further
// nesting (Next or Branch) contributes its own Sid as a path segment before
// recursing; a leaf node's Sid is the item name, resolved against the file
// the accumulated path names.
func bindUsePath(f *ast.File, node *ast.UseTree, root ast.IdRoot, path []string, l Loader) error {
	switch {
	case node.Branch != nil:
		branchPath := append(append([]string{}, path...), node.Sid)
		for _, child := range node.Branch {
			if err := bindUsePath(f, child, root, branchPath, l); err != nil {
				return err
			}
		}
		return nil
	case node.Next != nil:
		return bindUsePath(f, node.Next, root, append(path, node.Sid), l)
	default:
		id := &ast.Id{Span: node.Span, Root: root, Segments: path}
		imported, err := l.Load(id)
		if err != nil {
			return err
		}
		item, ok := imported.PubItemsBySid[node.Sid]
		if !ok {
			cause, kind := ooerr.ErrBindingUnresolved, ooerr.KindImport
			if _, exists := imported.ItemsBySid[node.Sid]; exists {
				cause, kind = ooerr.ErrBindingNotPub, ooerr.KindBindingNotPub
			}
			return ooerr.New(kind, cause, node.Span.Start, node.Span.Length).WithDetail(node.Sid)
		}
		return declare(f, item, node.BoundName())
	}
}
