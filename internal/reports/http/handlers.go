// Package reporthttp exposes the reporting engine over HTTP. Handlers parse
// and validate filter state, dispatch one service call per user action, and
// reply with JSON view models; all rendering happens in the consumer.
package reporthttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stocklens/stocklens/internal/platform/httpx"
	"github.com/stocklens/stocklens/internal/reports"
	"github.com/stocklens/stocklens/internal/reports/export"
	"github.com/stocklens/stocklens/internal/reports/ui"
)

const requestTimeout = 10 * time.Second

// ReportService defines the engine contract used by the handler.
type ReportService interface {
	Reload(ctx context.Context) (*reports.Snapshot, error)
	Dashboard(ctx context.Context, filter reports.Filter, scale reports.Scale, dates reports.DateRange) (reports.DashboardData, error)
	SeriesForScale(ctx context.Context, scale reports.Scale) (reports.Series, error)
	Drilldown(ctx context.Context, scale reports.Scale, label string, filter reports.Filter) (reports.DateRange, []reports.TransactionRow, error)
}

// Handler coordinates HTTP requests for the reporting dashboard.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
	csvPool  sync.Pool
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	h := &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// filterQuery is the sanitized query-string state for one report request.
type filterQuery struct {
	ProductID   int64  `validate:"omitempty,gt=0"`
	WarehouseID int64  `validate:"omitempty,gt=0"`
	From        string `validate:"omitempty,datetime=2006-01-02"`
	To          string `validate:"omitempty,datetime=2006-01-02"`
	Scale       string `validate:"omitempty,oneof=month week day"`
	Label       string `validate:"omitempty,max=16"`
}

func (q filterQuery) filter() reports.Filter {
	var f reports.Filter
	if q.ProductID > 0 {
		id := q.ProductID
		f.ProductID = &id
	}
	if q.WarehouseID > 0 {
		id := q.WarehouseID
		f.WarehouseID = &id
	}
	return f
}

func (q filterQuery) dates() reports.DateRange {
	return reports.DateRange{From: q.From, To: q.To}
}

func (h *Handler) parseQuery(r *http.Request) (filterQuery, error) {
	var q filterQuery
	values := r.URL.Query()

	for _, field := range []struct {
		name string
		dest *int64
	}{
		{"product_id", &q.ProductID},
		{"warehouse_id", &q.WarehouseID},
	} {
		raw := strings.TrimSpace(values.Get(field.name))
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filterQuery{}, fmt.Errorf("%w: %s", httpx.ErrValidation, field.name)
		}
		*field.dest = parsed
	}

	q.From = strings.TrimSpace(values.Get("from"))
	q.To = strings.TrimSpace(values.Get("to"))
	q.Scale = strings.TrimSpace(values.Get("scale"))
	q.Label = strings.TrimSpace(values.Get("label"))

	if err := h.validate.Struct(q); err != nil {
		return filterQuery{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return q, nil
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	scale, err := reports.ParseScale(q.Scale)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.Dashboard(ctx, q.filter(), scale, q.dates())
	if err != nil {
		h.logError("load dashboard", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ui.FromDashboard(data, q.dates()))
}

func (h *Handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	scale, err := reports.ParseScale(q.Scale)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	series, err := h.service.SeriesForScale(ctx, scale)
	if err != nil {
		h.logError("load series", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ui.ToTimeSeries(series, scale))
}

func (h *Handler) handleDrilldown(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	scale, err := reports.ParseScale(q.Scale)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if q.Label == "" && scale != reports.ScaleWeek {
		httpx.RespondError(w, fmt.Errorf("%w: label required", httpx.ErrValidation))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	dates, txns, err := h.service.Drilldown(ctx, scale, q.Label, q.filter())
	if err != nil {
		if errors.Is(err, reports.ErrBadLabel) {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
			return
		}
		h.logError("drilldown", err)
		httpx.RespondError(w, err)
		return
	}

	vm := ui.DrilldownViewModel{
		DateFrom:     dates.From,
		DateTo:       dates.To,
		Transactions: ui.ToTransactionLines(txns),
	}
	vm.NoTransactions = len(vm.Transactions) == 0
	httpx.JSON(w, http.StatusOK, vm)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	snap, err := h.service.Reload(ctx)
	if err != nil {
		h.logError("reload", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"fetched_at": snap.FetchedAt.Format(time.RFC3339),
		"cur":        len(snap.Cur),
		"low":        len(snap.Low),
		"monthly":    len(snap.Monthly),
		"top":        len(snap.Top),
	})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	scale, err := reports.ParseScale(q.Scale)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.Dashboard(ctx, q.filter(), scale, q.dates())
	if err != nil {
		h.logError("load dashboard", err)
		httpx.RespondError(w, err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteKPICSV(buf, data.KPI); err != nil {
		h.logError("write kpi csv", err)
		httpx.RespondError(w, err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteSeriesCSV(buf, ui.ToTimeSeries(data.Series, data.Scale)); err != nil {
		h.logError("write series csv", err)
		httpx.RespondError(w, err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteCurrentStockCSV(buf, data.Cur); err != nil {
		h.logError("write stock csv", err)
		httpx.RespondError(w, err)
		return
	}

	filename := fmt.Sprintf("inventory-reports-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
