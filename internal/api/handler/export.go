package handler

import (
	"net/http"

	"github.com/bcnelson/netinventory/internal/export"
	"github.com/bcnelson/netinventory/internal/logger"
	"github.com/rs/zerolog"
)

// ExportHandler handles the /export endpoint.
type ExportHandler struct {
	exporter *export.Exporter
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter, log: logger.WithComponent("export")}
}

// Export writes every record as JSON (default) or CSV (?format=csv).
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	res, err := h.exporter.Export(r.Context(), format)
	if err != nil {
		handleError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	if format == export.FormatCSV {
		w.Header().Set("Content-Disposition", "attachment;filename="+res.Filename)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
}
