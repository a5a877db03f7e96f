// Package ccfilter implements the conditional-compilation pass: a top-down
// walk of a parsed file that drops items and block expressions whose `cc`
// attributes name a feature outside the enabled set. It runs once per file,
// after parsing and before the binder populates its tables.
package ccfilter

import "github.com/oo-lang/oofront/ast"

// Features is the enabled feature set a context was constructed with.
type Features map[string]struct{}

// Enabled reports whether name is a member of the set.
func (f Features) Enabled(name string) bool {
	_, ok := f[name]
	return ok
}

// Filter walks f top-down in place: surviving items keep their position and
// relative order, filtered items (and their attribute-list counterpart) are
// dropped together, and every surviving expression-bearing field is
// recursed into exactly once.
func Filter(f *ast.File, features Features) {
	items := f.Items[:0]
	attrs := f.ItemAttrs[:0]
	for i, it := range f.Items {
		a := f.ItemAttrs[i]
		if !shouldStay(a, features) {
			continue
		}
		filterItem(it, features)
		items = append(items, it)
		attrs = append(attrs, a)
	}
	f.Items = items
	f.ItemAttrs = attrs
}

// shouldStay implements the filtering rule: a `cc = "name"` attribute
// filters out its host iff name is not enabled; absence of any cc attribute
// always keeps the host; multiple cc attributes are AND-joined.
func shouldStay(attrs []*ast.Meta, features Features) bool {
	for _, m := range attrs {
		if m.Name != "cc" {
			continue
		}
		unary, ok := m.Data.(*ast.MetaUnary)
		if !ok {
			continue
		}
		if !features.Enabled(unary.Literal.Str) {
			return false
		}
	}
	return true
}

func filterItem(it *ast.Item, features Features) {
	switch d := it.Data.(type) {
	case *ast.ItemVal:
		filterExpr(d.Value, features)
	case *ast.ItemFun:
		filterExpr(d.Body, features)
	}
}

func filterBlock(b *ast.ExprBlock, features Features) {
	items := b.Items[:0]
	for _, bi := range b.Items {
		if !shouldStay(bi.Attrs, features) {
			continue
		}
		filterExpr(bi.Expr, features)
		items = append(items, bi)
	}
	b.Items = items
}

// filterExpr recurses into every expression-bearing field of e, covering
// each exactly once. e may be nil (optional fields such as ExprReturn.Value
// or ExprIf.Else).
func filterExpr(e *ast.Expr, features Features) {
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case *ast.ExprBlock:
		filterBlock(d, features)
	case *ast.ExprRef:
		filterExpr(d.Operand, features)
	case *ast.ExprRefMut:
		filterExpr(d.Operand, features)
	case *ast.ExprDeref:
		filterExpr(d.Operand, features)
	case *ast.ExprDerefMut:
		filterExpr(d.Operand, features)
	case *ast.ExprArray:
		for _, el := range d.Elems {
			filterExpr(el, features)
		}
	case *ast.ExprArrayIndex:
		filterExpr(d.Array, features)
		filterExpr(d.Index, features)
	case *ast.ExprProductRepeated:
		filterExpr(d.Elem, features)
	case *ast.ExprProductAnon:
		for _, el := range d.Elems {
			filterExpr(el, features)
		}
	case *ast.ExprProductNamed:
		for _, fld := range d.Fields {
			filterExpr(fld.Value, features)
		}
	case *ast.ExprProductAccessAnon:
		filterExpr(d.Operand, features)
	case *ast.ExprProductAccessNamed:
		filterExpr(d.Operand, features)
	case *ast.ExprFunAppAnon:
		filterExpr(d.Callee, features)
		for _, a := range d.Args {
			filterExpr(a, features)
		}
	case *ast.ExprFunAppNamed:
		filterExpr(d.Callee, features)
		for _, a := range d.Args {
			filterExpr(a.Value, features)
		}
	case *ast.ExprCast:
		filterExpr(d.Operand, features)
	case *ast.ExprNot:
		filterExpr(d.Operand, features)
	case *ast.ExprNegate:
		filterExpr(d.Operand, features)
	case *ast.ExprBinOp:
		filterExpr(d.Left, features)
		filterExpr(d.Right, features)
	case *ast.ExprAssign:
		filterExpr(d.Target, features)
		filterExpr(d.Value, features)
	case *ast.ExprVal:
		filterExpr(d.Value, features)
	case *ast.ExprValAssign:
		filterExpr(d.Value, features)
	case *ast.ExprIf:
		filterExpr(d.Cond, features)
		filterExpr(d.Then, features)
		filterExpr(d.Else, features)
	case *ast.ExprCase:
		filterExpr(d.Scrutinee, features)
		for i := range d.Arms {
			filterExpr(d.Arms[i].Guard, features)
			filterExpr(d.Arms[i].Body, features)
		}
	case *ast.ExprWhile:
		filterExpr(d.Cond, features)
		filterExpr(d.Body, features)
	case *ast.ExprLoop:
		filterExpr(d.Body, features)
	case *ast.ExprReturn:
		filterExpr(d.Value, features)
	case *ast.ExprLabel:
		filterExpr(d.Body, features)
		// ExprID, ExprMacro, ExprLiteral, ExprSizeOf, ExprAlignOf, ExprBreak,
		// ExprGoto carry no Expr-typed children.
	}
}
