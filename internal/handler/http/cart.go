package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfshr/aur/internal/domain"
	"github.com/cfshr/aur/internal/store"
	"github.com/cfshr/aur/pkg/httputil"
	"github.com/cfshr/aur/pkg/validator"
)

// CartHandler exposes the cart store to the storefront UI.
type CartHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(s *store.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:  s,
		logger: logger,
	}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
// The fields mirror what the product page knows about a piece.
type AddItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required,max=500"`
	Artist   string  `json:"artist" validate:"max=500"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
	Image    string  `json:"image"`
}

// UpdateQuantityRequest is the JSON request body for setting an item quantity.
// Values below 1 are clamped up to 1 by the store, not rejected.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartResponse is the cart state as rendered to the UI: the line items plus
// the derived totals so the client never recomputes them.
type cartResponse struct {
	Items      []domain.LineItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	TotalItems int               `json:"total_items"`
}

func (h *CartHandler) cartView() cartResponse {
	items := h.store.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:      items,
		TotalPrice: h.store.TotalPrice(),
		TotalItems: h.store.TotalItems(),
	}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartView()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.store.AddItem(r.Context(), domain.LineItem{
		ID:       req.ID,
		Name:     req.Name,
		Artist:   req.Artist,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartView()})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.store.UpdateQuantity(r.Context(), id, req.Quantity)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartView()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.store.RemoveItem(r.Context(), id)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartView()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.cartView()})
}
