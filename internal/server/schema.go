package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/schemakit/fsl/internal/linker"
	"github.com/schemakit/fsl/internal/loader"
	"github.com/schemakit/fsl/internal/printer"
	"github.com/schemakit/fsl/internal/rolemerge"
	"github.com/schemakit/fsl/internal/treeops"
)

// handleSchema godoc
// @Summary      Re-parse and inspect the configured schema directory
// @Description  Re-parses every .fsl file under the server's schema directory on each call. The op query parameter selects which view to return: list (default) for declarations JSON, canonical for the printed schema, link for the mangled-name map, or merge-roles for the role-merged canonical form.
// @Tags         schema
// @Produce      json,plain
// @Param        op    query     string  false  "list|canonical|link|merge-roles"
// @Success      200   {object}  object
// @Failure      500   {object}  object
// @Router       /schema [get]
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	dir, err := schemaFilePaths(s.schemasDir)
	if err != nil {
		httpError(w, err)
		return
	}

	tree, err := loader.LoadAll(r.Context(), dir)
	if err != nil {
		httpError(w, err)
		return
	}
	defer tree.Dispose()
	s.parseTotal.Inc()

	switch r.URL.Query().Get("op") {
	case "canonical":
		start := time.Now()
		out := printer.Print(tree, printer.Options{})
		s.printDuration.Observe(time.Since(start).Seconds())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(out))

	case "link":
		mangled, err := linker.Link(tree)
		s.linkTotal.Inc()
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, mangled)

	case "merge-roles":
		if err := rolemerge.Merge(tree); err != nil {
			s.mergeTotal.Inc()
			httpError(w, err)
			return
		}
		s.mergeTotal.Inc()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(printer.Print(tree, printer.Options{})))

	default:
		raw, err := treeops.ListDeclarations(tree)
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
