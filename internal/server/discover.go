package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// schemaFilePaths lists every *.fsl file directly under dir, sorted by
// path so repeated requests against an unchanged directory always merge
// declarations in the same order.
func schemaFilePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory %s: %w", dir, err)
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
		return nil, fmt.Errorf("no .fsl files found in %s", dir)
	}
	return paths, nil
}
