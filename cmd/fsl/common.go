package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schemakit/fsl"
	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/loader"
)

// loadSchemaDir discovers every *.fsl file directly under dir, sorted by
// path, and loads them through internal/loader. Sorting gives every
// invocation of a command the same merged declaration order regardless of
// the filesystem's own directory-read order.
func loadSchemaDir(ctx context.Context, dir string) (*fsl.SchemaTree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cli.GeneralError(fmt.Sprintf("reading schema directory %s", dir), err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".fsl" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, cli.ConfigError(fmt.Sprintf("no .fsl files found in %s", dir), nil)
	}

	tree, err := loader.LoadAll(ctx, paths)
	if err != nil {
		return nil, cli.FromCoreError("loading schema", err)
	}
	return tree, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return cli.GeneralError("creating output directory", err)
	}
	return os.WriteFile(path, data, 0o644)
}
