package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	cli "github.com/schemakit/fsl/internal/cliutil"
	"github.com/schemakit/fsl/internal/logging"
	"github.com/schemakit/fsl/internal/server"
)

var (
	serveSchemasDir string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local HTTP introspection server",
	Long: `Start a local HTTP server exposing /healthz, /metrics, /schema, and
/swagger/* for a schema directory, re-parsing it on every /schema request.`,
	Example: `  # Serve the configured schema directory on :8085
  fsl serve --schemas-dir schemas

  # Serve on a custom address
  fsl serve --schemas-dir schemas --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveString(serveSchemasDir, cfg.Serve.SchemasDir, cfg.SchemasDir)
		addr := resolveString(serveAddr, cfg.Serve.Addr)

		log := logging.New()
		srv := server.New(server.Config{SchemasDir: dir, Logger: log})

		if !quiet {
			fmt.Printf("Serving %s on %s\n", dir, addr)
		}

		httpServer := &http.Server{Addr: addr, Handler: srv.Router()}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return cli.GeneralError("serving", err)
		}
		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveSchemasDir, "schemas-dir", "", "directory containing .fsl files")
	f.StringVar(&serveAddr, "addr", "", "listen address (default: :8085)")
}
