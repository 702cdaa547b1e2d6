package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/money"
	"github.com/tillbook/tillbook/internal/platform/httpx"
)

type DailyTotalResponse struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

// Handler exposes the report reader over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bills", h.ListBills)
	r.Get("/bills/{invoiceNo}", h.ShowBill)
	r.Get("/reports/daily", h.DailyTotal)
}

func (h *Handler) ShowBill(w http.ResponseWriter, r *http.Request) {
	invoiceNo, err := strconv.ParseInt(chi.URLParam(r, "invoiceNo"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid invoice number")
		return
	}
	bill, err := h.service.GetBill(r.Context(), invoiceNo)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, checkout.ToBillResponse(bill))
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	from := parseDate(r.URL.Query().Get("from"))
	to := parseDate(r.URL.Query().Get("to"))

	var (
		bills []checkout.Bill
		err   error
	)
	switch {
	case from != nil && to != nil:
		// The range is inclusive of both days.
		bills, err = h.service.ListBillsBetween(r.Context(), *from, to.AddDate(0, 0, 1))
	default:
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		bills, err = h.service.ListRecent(r.Context(), limit)
	}
	if err != nil {
		h.logger.Error("list bills failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	resp := make([]checkout.BillResponse, 0, len(bills))
	for _, bill := range bills {
		resp = append(resp, checkout.ToBillResponse(bill))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) DailyTotal(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if d := parseDate(r.URL.Query().Get("date")); d != nil {
		date = *d
	}
	total, err := h.service.DailyTotal(r.Context(), date)
	if err != nil {
		h.logger.Error("daily total failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DailyTotalResponse{
		Date:  date.Format("2006-01-02"),
		Total: money.Format(total),
	})
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
