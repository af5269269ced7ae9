package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/printer"
)

var (
	canonicalSchemasDir string
	canonicalOutput     string
	canonicalSort       bool
	canonicalSourceMap  string
	canonicalWatch      bool
)

var canonicalCmd = &cobra.Command{
	Use:   "canonical",
	Short: "Print the canonical form of a schema",
	Long:  `Parse every .fsl file in a directory and print the merged tree's canonical form.`,
	Example: `  # Print canonical form to stdout
  fsl canonical --schemas-dir schemas

  # Write canonical form with an inline source map appended, sorted
  fsl canonical --schemas-dir schemas --output schema.canonical.fsl --sort --source-map schema.canonical.fsl

  # Recompile on every source change
  fsl canonical --schemas-dir schemas --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(canonicalSchemasDir, cfg.SchemasDir)
		output := cfg.ResolvedOutput(canonicalOutput)

		if err := runCanonical(cmd.Context(), dir, output); err != nil {
			return err
		}
		if !canonicalWatch {
			return nil
		}
		return watchAndRecanonicalize(cmd.Context(), dir, output)
	},
}

func runCanonical(ctx context.Context, dir, output string) error {
	tree, err := loadSchemaDir(ctx, dir)
	if err != nil {
		return err
	}
	defer tree.Dispose()

	opts := printer.Options{Sort: canonicalSort}

	var out string
	if canonicalSourceMap != "" {
		out = printer.PrintWithSourceMap(tree, canonicalSourceMap, opts)
	} else {
		out = printer.Print(tree, opts)
	}

	if err := writeOutput(output, []byte(out)); err != nil {
		return cli.GeneralError("writing canonical output", err)
	}
	if !quiet && output != "" {
		fmt.Printf("Wrote %s\n", output)
	}
	return nil
}

// watchAndRecanonicalize re-runs runCanonical whenever a .fsl file under
// dir changes, until the command's context is cancelled.
func watchAndRecanonicalize(ctx context.Context, dir, output string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return cli.GeneralError("starting file watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return cli.GeneralError(fmt.Sprintf("watching %s", dir), err)
	}

	if !quiet {
		fmt.Printf("Watching %s for changes (Ctrl-C to stop)...\n", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".fsl" {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := runCanonical(ctx, dir, output); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			} else if !quiet {
				fmt.Println("Recompiled.")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "Watcher error:", err)
		}
	}
}

func init() {
	f := canonicalCmd.Flags()
	f.StringVar(&canonicalSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&canonicalOutput, "output", "", "output file path (default: stdout)")
	f.BoolVar(&canonicalSort, "sort", false, "sort declarations by kind then name")
	f.StringVar(&canonicalSourceMap, "source-map", "", "append an inline source map comment, recording this name as its file")
	f.BoolVar(&canonicalWatch, "watch", false, "recompile on source change")
}
