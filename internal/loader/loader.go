// Package loader parses multiple FSL source files concurrently and merges
// the results into one tree, deterministically in input order (spec.md §5:
// the core is single-threaded per tree, so each file gets its own tree and
// its own allocator; only the merge step touches shared state).
package loader

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/schemakit/fsl"
	"github.com/schemakit/fsl/internal/parser"
)

// LoadAll reads and parses every path in paths concurrently, then merges
// the resulting trees sequentially in the order paths were given — not the
// order goroutines finish in, since declaration order depends on it
// (spec.md §4.2 rule 1). On any read or parse error, every tree produced so
// far is disposed and the first error is returned.
func LoadAll(ctx context.Context, paths []string) (*fsl.SchemaTree, error) {
	trees := make([]*fsl.SchemaTree, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			tree, err := parser.Parse(path, string(src))
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, t := range trees {
			t.Dispose()
		}
		return nil, err
	}

	out := fsl.NewTree()
	for _, t := range trees {
		for _, d := range t.Decls {
			out.AddDecl(fsl.CloneDeclaration(out.Alloc, d))
		}
		for _, e := range t.Extras {
			out.AddExtra(e.Clone())
		}
		t.Dispose()
	}
	return out, nil
}
