package interfaces

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apihttp "fleetdesk/internal/api/http"
	"fleetdesk/internal/observability/metrics"
)

// SummaryProvider supplies the current dashboard summary.
type SummaryProvider interface {
	Summary(ctx context.Context) (apihttp.Summary, error)
}

// ExportHandler serves budget report downloads under /api/v1/exports/.
type ExportHandler struct {
	provider SummaryProvider
	currency string
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(provider SummaryProvider, currency string) (*ExportHandler, error) {
	if provider == nil {
		return nil, errors.New("export handler: nil summary provider")
	}
	if currency == "" {
		currency = "RM"
	}
	return &ExportHandler{provider: provider, currency: currency}, nil
}

// ServeHTTP handles GET /api/v1/exports/budget.{csv,xlsx,pdf}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.provider == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	format := strings.TrimPrefix(r.URL.Path, "/api/v1/exports/budget.")
	start := time.Now()

	summary, err := h.provider.Summary(r.Context())
	if err != nil {
		metrics.ObserveExport(format, err, time.Since(start))
		http.Error(w, "compute summary error", http.StatusInternalServerError)
		return
	}

	var (
		payload     []byte
		contentType string
		filename    string
	)
	switch format {
	case "csv":
		payload, err = BuildBudgetCSV(summary.Totals, h.currency)
		contentType = "text/csv"
		filename = "budget.csv"
	case "xlsx":
		payload, err = BuildBudgetXLSX(summary.Totals, h.currency, summary.GeneratedAt)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "budget.xlsx"
	case "pdf":
		payload, err = BuildBudgetPDF(summary.Totals, h.currency, summary.GeneratedAt)
		contentType = "application/pdf"
		filename = "budget.pdf"
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		metrics.ObserveExport(format, err, time.Since(start))
		http.Error(w, "build export error", http.StatusInternalServerError)
		return
	}

	metrics.ObserveExport(format, nil, time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
