package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tillbook/tillbook/internal/money"
	"github.com/tillbook/tillbook/internal/platform/httpx"
)

type AddLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Qty       int64 `json:"qty" validate:"required,gt=0"`
}

type SetQtyRequest struct {
	Qty int64 `json:"qty" validate:"required,gt=0"`
}

type LineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	CartID string         `json:"cart_id"`
	Lines  []LineResponse `json:"lines"`
	Total  string         `json:"total"`
}

// Handler exposes cart sessions over HTTP.
type Handler struct {
	logger   *slog.Logger
	store    *Store
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, store *Store) *Handler {
	return &Handler{logger: logger, store: store, validate: validator.New()}
}

// MountRoutes attaches cart routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/carts", h.Create)
	r.Get("/carts/{cartID}", h.Show)
	r.Delete("/carts/{cartID}", h.Cancel)
	r.Post("/carts/{cartID}/lines", h.AddLine)
	r.Put("/carts/{cartID}/lines/{productID}", h.SetQty)
	r.Delete("/carts/{cartID}/lines/{productID}", h.RemoveLine)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c := h.store.Create()
	httpx.JSON(w, http.StatusCreated, CartResponse{CartID: c.ID(), Lines: []LineResponse{}, Total: money.Format(0)})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Get(chi.URLParam(r, "cartID"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "cart not found")
		return
	}
	h.respondCart(w, r, c)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cartID")
	if c, ok := h.store.Get(id); ok {
		c.Clear()
	}
	h.store.Discard(id)
	httpx.NoContent(w)
}

func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Get(chi.URLParam(r, "cartID"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "cart not found")
		return
	}
	var req AddLineRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := c.AddLine(r.Context(), req.ProductID, req.Qty); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.respondCart(w, r, c)
}

func (h *Handler) SetQty(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Get(chi.URLParam(r, "cartID"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "cart not found")
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}
	var req SetQtyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := c.SetQty(productID, req.Qty); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.respondCart(w, r, c)
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Get(chi.URLParam(r, "cartID"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "cart not found")
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product id")
		return
	}
	if err := c.RemoveLine(productID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.respondCart(w, r, c)
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, c *Cart) {
	priced, err := c.PricedLines(r.Context())
	if err != nil {
		h.logger.Error("price cart lines failed", "error", err, "cart", c.ID())
		httpx.RespondError(w, err)
		return
	}
	var total int64
	lines := make([]LineResponse, 0, len(priced))
	for _, line := range priced {
		total += line.LineTotalCents
		lines = append(lines, LineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Qty:       line.Qty,
			UnitPrice: money.Format(line.UnitPriceCents),
			LineTotal: money.Format(line.LineTotalCents),
		})
	}
	httpx.JSON(w, http.StatusOK, CartResponse{CartID: c.ID(), Lines: lines, Total: money.Format(total)})
}
