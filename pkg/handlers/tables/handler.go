package tables

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/de-tools/sheet-atlas/pkg/adapters"
	"github.com/de-tools/sheet-atlas/pkg/models/api"
	"github.com/de-tools/sheet-atlas/pkg/models/domain"
	"github.com/de-tools/sheet-atlas/pkg/services/reconstruct"
	tablesvc "github.com/de-tools/sheet-atlas/pkg/services/tables"
	"github.com/rs/zerolog"
)

const defaultHistoryLimit = 20

// HistoryLister returns recent reloads, newest first.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]domain.ReloadResult, error)
}

type Handler struct {
	svc          tablesvc.Service
	history      HistoryLister
	historyLimit int
}

// NewHandler wires the table routes. history may be nil; a non-positive
// historyLimit falls back to the default page size.
func NewHandler(svc tablesvc.Service, history HistoryLister, historyLimit int) *Handler {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Handler{
		svc:          svc,
		history:      history,
		historyLimit: historyLimit,
	}
}

var endpoints = []string{
	"/list_tables - Get list of all tables",
	"/get_table_details?table_name=<name> - Get row names for a table",
	"/row_sum?table_name=<name>&row_name=<name> - Get sum of values in a row",
	"/reload_data - Reload data from the workbook",
	"/reload_history - Recent reloads",
	"/debug - Loaded tables and detected sections",
	"/metrics - Prometheus metrics",
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot(r.Context())
	writeJSON(w, r, http.StatusOK, api.ServiceInfo{
		Message:         "Excel Processing API",
		Endpoints:       endpoints,
		AvailableTables: snap.Names,
		KnownTables:     reconstruct.TableNames(),
	})
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListTables(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.TablesResponse{Tables: names})
}

func (h *Handler) GetTableDetails(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table_name")
	if table == "" {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "query parameter table_name is required"})
		return
	}

	labels, err := h.svc.GetRowLabels(r.Context(), table)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.TableDetailsResponse{TableName: table, RowNames: labels})
}

func (h *Handler) RowSum(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	table := query.Get("table_name")
	row := query.Get("row_name")
	if table == "" || row == "" {
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{
			Error: "query parameters table_name and row_name are required",
		})
		return
	}

	sum, err := h.svc.SumRow(r.Context(), table, row)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapRowSumDomainToApi(*sum))
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Reload(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReloadDomainToApi(*result))
}

func (h *Handler) ReloadHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, r, http.StatusNotFound, api.ErrorResponse{Error: "reload history is not enabled"})
		return
	}

	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := h.history.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReloadHistoryDomainToApi(records))
}

func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot(r.Context())
	wd, _ := os.Getwd()

	writeJSON(w, r, http.StatusOK, api.DebugResponse{
		CurrentDirectory: wd,
		Location:         snap.Location,
		DataLoaded:       len(snap.Names) > 0,
		TableNames:       snap.Names,
		TableDetails:     snap.Tables,
		Sections:         adapters.MapSectionsDomainToApi(snap.Sections),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *tablesvc.NotFoundError
	switch {
	case errors.Is(err, tablesvc.ErrDataNotLoaded):
		writeJSON(w, r, http.StatusServiceUnavailable, api.ErrorResponse{Error: "Excel data not loaded"})
	case errors.As(err, &nf):
		writeJSON(w, r, http.StatusNotFound, api.ErrorResponse{Error: nf.Error(), Available: nf.Available})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("failed to encode response")
	}
}
