package ccfilter

import (
	"testing"

	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/parser"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.Parse("test.oo", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func TestFilterKeepsItemWithNoCcAttribute(t *testing.T) {
	f := mustParse(t, "val mut c = 0")
	Filter(f, Features{})
	if len(f.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(f.Items))
	}
}

func TestFilterDropsItemWhoseFeatureIsDisabled(t *testing.T) {
	f := mustParse(t, `#[cc="dev"]val mut c = 0 #[cc="prod"]val mut c = 1`)
	Filter(f, Features{"prod": {}})
	if len(f.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(f.Items))
	}
	v := f.Items[0].Data.(*ast.ItemVal)
	lit := v.Value.Data.(*ast.ExprLiteral)
	if lit.Value.Int != 1 {
		t.Errorf("surviving val = %v, want the prod variant (1)", lit.Value.Int)
	}
}

func TestFilterAndJoinsMultipleCcAttributes(t *testing.T) {
	f := mustParse(t, `#[cc="a"]#[cc="b"]val mut c = 0`)
	Filter(f, Features{"a": {}})
	if len(f.Items) != 0 {
		t.Fatalf("got %d items, want 0 (only one of two cc features enabled)", len(f.Items))
	}

	f = mustParse(t, `#[cc="a"]#[cc="b"]val mut c = 0`)
	Filter(f, Features{"a": {}, "b": {}})
	if len(f.Items) != 1 {
		t.Fatalf("got %d items, want 1 (both cc features enabled)", len(f.Items))
	}
}

func TestFilterMonotonicity(t *testing.T) {
	// Filtering with S then S' subset-of S must equal filtering once with S'.
	src := `#[cc="a"]val mut c = 0 #[cc="b"]val mut c = 1 val mut d = 2`

	f1 := mustParse(t, src)
	Filter(f1, Features{"a": {}, "b": {}})
	Filter(f1, Features{"a": {}})

	f2 := mustParse(t, src)
	Filter(f2, Features{"a": {}})

	if len(f1.Items) != len(f2.Items) {
		t.Fatalf("two-step filter kept %d items, one-step kept %d", len(f1.Items), len(f2.Items))
	}
	for i := range f1.Items {
		sid1, _ := f1.Items[i].Sid()
		sid2, _ := f2.Items[i].Sid()
		if sid1 != sid2 {
			t.Errorf("item %d: sid %q != %q", i, sid1, sid2)
		}
	}
}

func TestFilterRecursesIntoNestedBlockExpressions(t *testing.T) {
	// An enclosing fn survives, its body's cc="b" expression is pruned,
	// leaving an empty block.
	f := mustParse(t, `fn f() { #[cc="b"] x; }`)
	Filter(f, Features{"a": {}})

	fn := f.Items[0].Data.(*ast.ItemFun)
	block := fn.Body.Data.(*ast.ExprBlock)
	if len(block.Items) != 0 {
		t.Fatalf("got %d block items, want 0 after pruning cc=\"b\"", len(block.Items))
	}
}

func TestFilterKeepsNestedBlockItemWhenFeatureEnabled(t *testing.T) {
	f := mustParse(t, `fn f() { #[cc="b"] x; }`)
	Filter(f, Features{"b": {}})

	fn := f.Items[0].Data.(*ast.ItemFun)
	block := fn.Body.Data.(*ast.ExprBlock)
	if len(block.Items) != 1 {
		t.Fatalf("got %d block items, want 1 when cc=\"b\" is enabled", len(block.Items))
	}
}

func TestFilterRecursesThroughIfBranches(t *testing.T) {
	f := mustParse(t, `fn f() { if true { #[cc="b"] x; } else { #[cc="b"] y; } }`)
	Filter(f, Features{})

	fn := f.Items[0].Data.(*ast.ItemFun)
	block := fn.Body.Data.(*ast.ExprBlock)
	ifExpr := block.Items[0].Expr.Data.(*ast.ExprIf)

	then := ifExpr.Then.Data.(*ast.ExprBlock)
	if len(then.Items) != 0 {
		t.Errorf("then-branch kept %d items, want 0", len(then.Items))
	}
	els := ifExpr.Else.Data.(*ast.ExprBlock)
	if len(els.Items) != 0 {
		t.Errorf("else-branch kept %d items, want 0", len(els.Items))
	}
}

func TestFilterEmptyFile(t *testing.T) {
	f := mustParse(t, "")
	Filter(f, Features{})
	if len(f.Items) != 0 {
		t.Fatalf("got %d items, want 0", len(f.Items))
	}
}
