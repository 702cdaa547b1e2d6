package checkout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tillbook/tillbook/internal/cart"
	"github.com/tillbook/tillbook/internal/platform/httpx"
)

// Handler exposes checkout over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	carts    *cart.Store
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, carts *cart.Store) *Handler {
	return &Handler{logger: logger, service: service, carts: carts, validate: validator.New()}
}

// MountRoutes attaches the checkout route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/carts/{cartID}/checkout", h.Checkout)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	crt, ok := h.carts.Get(cartID)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "cart not found")
		return
	}

	var req CheckoutRequest
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
			return
		}
		if err := h.validate.Struct(req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
	}

	result, err := h.service.Checkout(r.Context(), crt, req.PaymentMethod)
	if err != nil {
		// Rejected carts stay in the store for correction.
		httpx.RespondError(w, err)
		return
	}

	h.carts.Discard(cartID)
	httpx.JSON(w, http.StatusCreated, CheckoutResponse{
		State: result.State,
		Bill:  ToBillResponse(*result.Bill),
	})
}
