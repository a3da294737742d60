package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wearlyshop/wearly-backend/internal/modules/cart"
)

// Handler exposes checkout for shoppers and order management for staff.
type Handler struct {
	service      Service
	sessions     *cart.Manager
	requireUser  func(http.Handler) http.Handler
	requireAdmin func(http.Handler) http.Handler
	userID       func(context.Context) (int64, bool)
}

func NewHandler(service Service, sessions *cart.Manager, requireUser, requireAdmin func(http.Handler) http.Handler, userID func(context.Context) (int64, bool)) *Handler {
	return &Handler{
		service:      service,
		sessions:     sessions,
		requireUser:  requireUser,
		requireAdmin: requireAdmin,
		userID:       userID,
	}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Post("/checkout", h.checkout) // POST /api/v1/orders/checkout
			r.Get("/mine", h.listMine)      // GET  /api/v1/orders/mine
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/", h.listOrders)                // GET   /api/v1/orders?status=new
			r.Get("/stats", h.stats)                // GET   /api/v1/orders/stats
			r.Get("/{id}", h.getOrder)              // GET   /api/v1/orders/{id}
			r.Patch("/{id}/status", h.updateStatus) // PATCH /api/v1/orders/{id}/status
			r.Patch("/{id}/notes", h.updateNotes)   // PATCH /api/v1/orders/{id}/notes
		})
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var form CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.Checkout(r.Context(), h.sessions.Session(userID), form)
	if err != nil {
		var fieldErrs ValidationErrors
		if errors.As(err, &fieldErrs) {
			respond(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  "validation failed",
				"fields": fieldErrs,
			})
			return
		}
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "cart is empty") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	orders, err := h.service.ListUserOrders(r.Context(), userID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "cannot transition") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	to := now
	if raw := r.URL.Query().Get("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t
		}
	}
	stats, err := h.service.SalesStats(r.Context(), from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stats)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
