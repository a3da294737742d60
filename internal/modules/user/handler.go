package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the shopper profile endpoint. Identity extraction is
// injected to keep this package independent of the auth module.
type Handler struct {
	repo        Repository
	requireUser func(http.Handler) http.Handler
	userID      func(context.Context) (int64, bool)
}

func NewHandler(repo Repository, requireUser func(http.Handler) http.Handler, userID func(context.Context) (int64, bool)) *Handler {
	return &Handler{repo: repo, requireUser: requireUser, userID: userID}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/api/v1/me", h.me)
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
