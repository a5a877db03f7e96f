package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oo-lang/oofront/ast"
	"github.com/oo-lang/oofront/binder"
	ooerr "github.com/oo-lang/oofront/error"
	"github.com/oo-lang/oofront/kind"
	"github.com/oo-lang/oofront/loader"
)

var checkFlags = struct {
	modsRoot *string
	depsRoot *string
	features *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Run every ordered phase over a source file and print the first diagnostic",
		Example: `  oo check --mods ./src main.oo`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	checkFlags.modsRoot = cmd.Flags().String("mods", ".", "mods root directory (mod::... resolves here)")
	checkFlags.depsRoot = cmd.Flags().String("deps", "deps", "deps root directory (dep::... resolves here)")
	checkFlags.features = cmd.Flags().String("features", "", "comma-separated list of enabled cc features")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	features := map[string]struct{}{}
	if *checkFlags.features != "" {
		for _, name := range strings.Split(*checkFlags.features, ",") {
			features[strings.TrimSpace(name)] = struct{}{}
		}
	}
	ctx := loader.New(loader.Config{
		ModsRoot: *checkFlags.modsRoot,
		DepsRoot: *checkFlags.depsRoot,
		Features: features,
	})

	f, err := ctx.LoadPath(args[0])
	if err != nil {
		return reportAndFail(nil, err)
	}

	bound := &boundLoader{ctx: ctx, seen: map[*ast.File]bool{}}
	if err := bound.bind(f); err != nil {
		return reportAndFail(f.Source, err)
	}

	if err := kind.Check(f, kind.LookupFromFile(f)); err != nil {
		return reportAndFail(f.Source, err)
	}
	for _, it := range f.Items {
		kind.ResolveItem(it)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d items)\n", args[0], len(f.Items))
	return nil
}

// boundLoader adapts loader.Context into binder.Loader, binding a file the
// first time anything asks to Load it — the ordering the context's own
// phase guarantee requires: a `use`-imported file must have its own
// binding table populated before the importer's Bind inspects it.
type boundLoader struct {
	ctx  *loader.Context
	seen map[*ast.File]bool
}

func (b *boundLoader) Load(id *ast.Id) (*ast.File, error) {
	f, err := b.ctx.Load(id)
	if err != nil {
		return nil, err
	}
	if err := b.bind(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (b *boundLoader) bind(f *ast.File) error {
	if b.seen[f] {
		return nil
	}
	b.seen[f] = true
	return binder.Bind(f, b)
}

func reportAndFail(src []byte, err error) error {
	se, ok := err.(*ooerr.SourceError)
	if !ok || src == nil {
		return err
	}
	line, col := ooerr.Locate(src, se.Start)
	return fmt.Errorf("%s:%d:%d: %v", se.FilePath, line, col, err)
}
