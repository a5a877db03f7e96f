package kind

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
	f.ItemsBySid = make(map[string]*ast.Item, len(f.Items))
	for _, it := range f.Items {
		if sid, ok := it.Sid(); ok {
			f.ItemsBySid[sid] = it
		}
	}
	return f
}

// Applying a two-parameter generic with only one argument is a kind
// mismatch.
func TestKindMismatchTooFewArgs(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)\ntype X = Pair<I32>")
	if err := Check(f, LookupFromFile(f)); err == nil {
		t.Fatal("expected WrongTypeArgs for Pair<I32>")
	}
}

func TestKindMismatchCorrectArity(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)\ntype X = Pair<I32, I32>")
	if err := Check(f, LookupFromFile(f)); err != nil {
		t.Fatalf("Check() error = %v, want success", err)
	}
}

func TestKindGroundTypeHasZeroArity(t *testing.T) {
	f := mustParse(t, "type X = I32")
	if got := ArityOf(f.Items[0].Data.(*ast.ItemType).Type); got != 0 {
		t.Errorf("ArityOf(I32) = %d, want 0", got)
	}
}

func TestKindGenericArityMatchesParamCount(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)")
	if got := ArityOf(f.Items[0].Data.(*ast.ItemType).Type); got != 2 {
		t.Errorf("ArityOf(Pair) = %d, want 2", got)
	}
}

func TestHigherOrderTypeArgRejected(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)\ntype X = Pair<Pair, I32>")
	err := Check(f, LookupFromFile(f))
	if err == nil {
		t.Fatal("expected HigherOrderTypeArg for Pair<Pair, I32>")
	}
}

func TestNamedTypeAppSidMismatch(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)\ntype X = Pair<z = I32, b = I32>")
	err := Check(f, LookupFromFile(f))
	if err == nil {
		t.Fatal("expected NamedTypeAppSid mismatch for z != a")
	}
}

func TestNamedTypeAppSidMatches(t *testing.T) {
	f := mustParse(t, "type Pair = <a, b> => (a, b)\ntype X = Pair<a = I32, b = I64>")
	if err := Check(f, LookupFromFile(f)); err != nil {
		t.Fatalf("Check() error = %v, want success", err)
	}
}

func TestResolveItemAssemblesNamedFunType(t *testing.T) {
	f := mustParse(t, "fn add(a: I32, b: I32) -> I32 { a }")
	ot := ResolveItem(f.Items[0])
	fn, ok := ot.Data.(*OoFunNamed)
	if !ok {
		t.Fatalf("ResolveItem() = %T, want *OoFunNamed", ot.Data)
	}
	if len(fn.Args) != 2 || fn.Args[0].Sid != "a" || fn.Args[1].Sid != "b" {
		t.Errorf("ResolveItem() args = %+v", fn.Args)
	}
	ret, ok := fn.Ret.Data.(*OoNamed)
	if !ok || ret.Sid != "I32" {
		t.Errorf("ResolveItem() ret = %+v, want OoNamed{I32}", fn.Ret.Data)
	}
}

func TestResolveProductAnonStructurally(t *testing.T) {
	f := mustParse(t, "type P = (I32, I64)")
	ot := Resolve(f.Items[0].Data.(*ast.ItemType).Type)
	prod, ok := ot.Data.(*OoProductAnon)
	if !ok || len(prod.Elems) != 2 {
		t.Fatalf("Resolve() = %+v, want 2-element OoProductAnon", ot.Data)
	}
}
