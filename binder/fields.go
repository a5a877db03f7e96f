package binder

import (
	"github.com/oo-lang/oofront/ast"
	ooerr "github.com/oo-lang/oofront/error"
)

// checkProductFieldUniqueness walks every type reachable from a declared
// item — its own type, argument/return types, and (for val/fn) the types
// and patterns reachable through its body — rejecting a named product,
// named function, named application, or named summand with a repeated
// field name. Whether this is a parse-time or semantic-phase check is left
// open by the grammar; this front-end decided on the binding phase (see
// DESIGN.md).
func checkProductFieldUniqueness(it *ast.Item) error {
	switch d := it.Data.(type) {
	case *ast.ItemType:
		return checkType(d.Type)
	case *ast.ItemFfiVal:
		return checkType(d.Type)
	case *ast.ItemFun:
		for _, a := range d.Args {
			if err := checkType(a.Type); err != nil {
				return err
			}
		}
		if err := checkType(d.Ret); err != nil {
			return err
		}
		return checkExpr(d.Body)
	case *ast.ItemVal:
		return checkExpr(d.Value)
	}
	return nil
}

func dupField(fields []ast.Field, span ast.Span) error {
	seen := make(map[string]struct{}, len(fields))
	for _, fld := range fields {
		if _, ok := seen[fld.Sid]; ok {
			return ooerr.New(ooerr.KindSyntax, ooerr.ErrDuplicateSidInProduct, span.Start, span.Length).WithDetail(fld.Sid)
		}
		seen[fld.Sid] = struct{}{}
	}
	return nil
}

func dupPatternField(fields []ast.PatternField, span ast.Span) error {
	seen := make(map[string]struct{}, len(fields))
	for _, fld := range fields {
		if _, ok := seen[fld.Sid]; ok {
			return ooerr.New(ooerr.KindSyntax, ooerr.ErrDuplicateSidInProduct, span.Start, span.Length).WithDetail(fld.Sid)
		}
		seen[fld.Sid] = struct{}{}
	}
	return nil
}

func checkType(t *ast.Type) error {
	if t == nil {
		return nil
	}
	switch d := t.Data.(type) {
	case *ast.TypeProductNamed:
		if err := dupField(d.Fields, t.Span); err != nil {
			return err
		}
		for _, fld := range d.Fields {
			if err := checkType(fld.Type); err != nil {
				return err
			}
		}
	case *ast.TypeFunNamed:
		if err := dupField(d.Args, t.Span); err != nil {
			return err
		}
		for _, fld := range d.Args {
			if err := checkType(fld.Type); err != nil {
				return err
			}
		}
		return checkType(d.Ret)
	case *ast.TypeAppNamed:
		if err := dupField(d.Args, t.Span); err != nil {
			return err
		}
		if err := checkType(d.Fn); err != nil {
			return err
		}
		for _, fld := range d.Args {
			if err := checkType(fld.Type); err != nil {
				return err
			}
		}
	case *ast.TypeSum:
		for _, s := range d.Summands {
			if err := dupField(s.Named, s.Span); err != nil {
				return err
			}
			for _, fld := range s.Named {
				if err := checkType(fld.Type); err != nil {
					return err
				}
			}
			for _, a := range s.Anon {
				if err := checkType(a); err != nil {
					return err
				}
			}
		}
	case *ast.TypeProductAnon:
		for _, el := range d.Elems {
			if err := checkType(el); err != nil {
				return err
			}
		}
	case *ast.TypeFunAnon:
		for _, el := range d.Args {
			if err := checkType(el); err != nil {
				return err
			}
		}
		return checkType(d.Ret)
	case *ast.TypeAppAnon:
		if err := checkType(d.Fn); err != nil {
			return err
		}
		for _, el := range d.Args {
			if err := checkType(el); err != nil {
				return err
			}
		}
	case *ast.TypeArray:
		return checkType(d.Elem)
	case *ast.TypeProductRepeated:
		return checkType(d.Elem)
	case *ast.TypePtr:
		return checkType(d.Elem)
	case *ast.TypePtrMut:
		return checkType(d.Elem)
	case *ast.TypeGeneric:
		return checkType(d.Body)
	}
	return nil
}

func checkExpr(e *ast.Expr) error {
	if e == nil {
		return nil
	}
	switch d := e.Data.(type) {
	case *ast.ExprBlock:
		for _, bi := range d.Items {
			if err := checkExpr(bi.Expr); err != nil {
				return err
			}
		}
	case *ast.ExprCast:
		if err := checkExpr(d.Operand); err != nil {
			return err
		}
		return checkType(d.Type)
	case *ast.ExprSizeOf:
		return checkType(d.Type)
	case *ast.ExprAlignOf:
		return checkType(d.Type)
	case *ast.ExprRef:
		return checkExpr(d.Operand)
	case *ast.ExprRefMut:
		return checkExpr(d.Operand)
	case *ast.ExprDeref:
		return checkExpr(d.Operand)
	case *ast.ExprDerefMut:
		return checkExpr(d.Operand)
	case *ast.ExprArray:
		for _, el := range d.Elems {
			if err := checkExpr(el); err != nil {
				return err
			}
		}
	case *ast.ExprArrayIndex:
		if err := checkExpr(d.Array); err != nil {
			return err
		}
		return checkExpr(d.Index)
	case *ast.ExprProductRepeated:
		return checkExpr(d.Elem)
	case *ast.ExprProductAnon:
		for _, el := range d.Elems {
			if err := checkExpr(el); err != nil {
				return err
			}
		}
	case *ast.ExprProductNamed:
		for _, fld := range d.Fields {
			if err := checkExpr(fld.Value); err != nil {
				return err
			}
		}
	case *ast.ExprProductAccessAnon:
		return checkExpr(d.Operand)
	case *ast.ExprProductAccessNamed:
		return checkExpr(d.Operand)
	case *ast.ExprFunAppAnon:
		if err := checkExpr(d.Callee); err != nil {
			return err
		}
		for _, a := range d.Args {
			if err := checkExpr(a); err != nil {
				return err
			}
		}
	case *ast.ExprFunAppNamed:
		if err := checkExpr(d.Callee); err != nil {
			return err
		}
		for _, a := range d.Args {
			if err := checkExpr(a.Value); err != nil {
				return err
			}
		}
	case *ast.ExprNot:
		return checkExpr(d.Operand)
	case *ast.ExprNegate:
		return checkExpr(d.Operand)
	case *ast.ExprBinOp:
		if err := checkExpr(d.Left); err != nil {
			return err
		}
		return checkExpr(d.Right)
	case *ast.ExprAssign:
		if err := checkExpr(d.Target); err != nil {
			return err
		}
		return checkExpr(d.Value)
	case *ast.ExprVal:
		return checkExpr(d.Value)
	case *ast.ExprValAssign:
		if err := checkPattern(d.Pattern); err != nil {
			return err
		}
		return checkExpr(d.Value)
	case *ast.ExprIf:
		if err := checkExpr(d.Cond); err != nil {
			return err
		}
		if err := checkExpr(d.Then); err != nil {
			return err
		}
		return checkExpr(d.Else)
	case *ast.ExprCase:
		if err := checkExpr(d.Scrutinee); err != nil {
			return err
		}
		for i := range d.Arms {
			if err := checkPattern(d.Arms[i].Pattern); err != nil {
				return err
			}
			if err := checkExpr(d.Arms[i].Guard); err != nil {
				return err
			}
			if err := checkExpr(d.Arms[i].Body); err != nil {
				return err
			}
		}
	case *ast.ExprWhile:
		if err := checkExpr(d.Cond); err != nil {
			return err
		}
		return checkExpr(d.Body)
	case *ast.ExprLoop:
		return checkExpr(d.Body)
	case *ast.ExprReturn:
		return checkExpr(d.Value)
	case *ast.ExprLabel:
		return checkExpr(d.Body)
	}
	return nil
}

func checkPattern(p *ast.Pattern) error {
	if p == nil {
		return nil
	}
	switch d := p.Data.(type) {
	case *ast.PatternID:
		return checkType(d.Type)
	case *ast.PatternPtr:
		return checkPattern(d.Elem)
	case *ast.PatternProductAnon:
		for _, el := range d.Elems {
			if err := checkPattern(el); err != nil {
				return err
			}
		}
	case *ast.PatternProductNamed:
		if err := dupPatternField(d.Fields, p.Span); err != nil {
			return err
		}
		for _, fld := range d.Fields {
			if err := checkPattern(fld.Pattern); err != nil {
				return err
			}
		}
	case *ast.PatternSummandAnon:
		for _, el := range d.Elems {
			if err := checkPattern(el); err != nil {
				return err
			}
		}
	case *ast.PatternSummandNamed:
		if err := dupPatternField(d.Fields, p.Span); err != nil {
			return err
		}
		for _, fld := range d.Fields {
			if err := checkPattern(fld.Pattern); err != nil {
				return err
			}
		}
	}
	return nil
}
