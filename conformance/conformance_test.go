package conformance

import (
	"testing"

	"github.com/oo-lang/oofront/ast"
)

func TestOkFixturesSucceed(t *testing.T) {
	results, err := RunAll("testdata/ok", nil)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no fixtures found under testdata/ok")
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%v", r)
		}
	}
}

func TestErrFixturesFail(t *testing.T) {
	results, err := RunAll("testdata/err", nil)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no fixtures found under testdata/err")
	}
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("%s: expected a failure, got none", r.Path)
		}
	}
}

// CC pruning keeps the feature-matching variant and drops the rest: with
// feature "prod" enabled, exactly one `val c` item survives, and it is the
// prod variant.
func TestCCPruneLeavesWinningVariant(t *testing.T) {
	r := RunFixture("testdata/ok/cc_prune.oo", map[string]struct{}{"prod": {}})
	if r.Error != nil {
		t.Fatalf("RunFixture() error = %v", r)
	}
	item, ok := r.File.ItemsBySid["c"]
	if !ok {
		t.Fatal("ItemsBySid missing c after CC prune")
	}
	if len(r.File.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1 after CC prune", len(r.File.Items))
	}
	val, ok := item.Data.(*ast.ItemVal)
	if !ok {
		t.Fatalf("c.Data = %T, want *ast.ItemVal", item.Data)
	}
	lit, ok := val.Value.Data.(*ast.ExprLiteral)
	if !ok || lit.Value.Int != 1 {
		t.Errorf("c's value = %+v, want the prod variant's literal 1", val.Value.Data)
	}
}

// A `cc`-gated expression inside a surviving function's block is pruned
// away, leaving an empty block, while the function itself survives because
// its own `cc` names an enabled feature.
func TestCCNestedBlockEmptiesBody(t *testing.T) {
	r := RunFixture("testdata/ok/cc_nested_block.oo", map[string]struct{}{"a": {}})
	if r.Error != nil {
		t.Fatalf("RunFixture() error = %v", r)
	}
	if len(r.File.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1 (f survives)", len(r.File.Items))
	}
	fn, ok := r.File.Items[0].Data.(*ast.ItemFun)
	if !ok {
		t.Fatalf("Items[0].Data = %T, want *ast.ItemFun", r.File.Items[0].Data)
	}
	block, ok := fn.Body.Data.(*ast.ExprBlock)
	if !ok {
		t.Fatalf("Body.Data = %T, want *ast.ExprBlock", fn.Body.Data)
	}
	if len(block.Items) != 0 {
		t.Errorf("len(block.Items) = %d, want 0 after pruning cc=\"b\"", len(block.Items))
	}
}

// A deeply nested `::` chain still parses as a single Id.
func TestDeepIdChainParsesAsOneId(t *testing.T) {
	r := RunFixture("testdata/ok/deep_id_chain.oo", nil)
	if r.Error != nil {
		t.Fatalf("RunFixture() error = %v", r)
	}
	it, ok := r.File.Items[0].Data.(*ast.ItemType)
	if !ok {
		t.Fatalf("Items[0].Data = %T, want *ast.ItemType", r.File.Items[0].Data)
	}
	id, ok := it.Type.Data.(*ast.TypeID)
	if !ok || len(id.Id.Segments) != 8 {
		t.Errorf("X = %#v, want a single TypeID with 8 segments", it.Type.Data)
	}
}
