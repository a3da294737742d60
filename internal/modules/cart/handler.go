package cart

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wearlyshop/wearly-backend/internal/modules/catalog"
)

// Handler exposes the shopper's cart over HTTP. Every route requires a
// Telegram-authenticated user; each user gets their own cart session.
type Handler struct {
	sessions    *Manager
	catalog     catalog.Service
	requireUser func(http.Handler) http.Handler
	userID      func(context.Context) (int64, bool)
}

func NewHandler(sessions *Manager, catalogSvc catalog.Service, requireUser func(http.Handler) http.Handler, userID func(context.Context) (int64, bool)) *Handler {
	return &Handler{
		sessions:    sessions,
		catalog:     catalogSvc,
		requireUser: requireUser,
		userID:      userID,
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/", h.getCart)       // GET    /api/v1/cart
		r.Post("/items", h.addItem) // POST   /api/v1/cart/items
		r.Patch("/items", h.setQuantity)
		r.Delete("/items", h.removeItem)
		r.Delete("/", h.clearCart)
	})
}

type itemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, session.State())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeItem(w, r)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	if !product.OffersSize(req.Size) {
		respond(w, http.StatusBadRequest, map[string]string{"error": "size not offered for this product"})
		return
	}
	state := session.Dispatch(AddItem{Product: product, Size: req.Size})
	respond(w, http.StatusOK, state)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeItem(w, r)
	if !ok {
		return
	}
	state := session.Dispatch(SetQuantity{ProductID: req.ProductID, Size: req.Size, Quantity: req.Quantity})
	respond(w, http.StatusOK, state)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeItem(w, r)
	if !ok {
		return
	}
	state := session.Dispatch(RemoveItem{ProductID: req.ProductID, Size: req.Size})
	respond(w, http.StatusOK, state)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, session.Dispatch(Clear{}))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, ok := h.userID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return nil, false
	}
	return h.sessions.Session(id), true
}

func decodeItem(w http.ResponseWriter, r *http.Request) (itemRequest, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return req, false
	}
	if req.ProductID == "" || req.Size == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "product_id and size are required"})
		return req, false
	}
	return req, true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
