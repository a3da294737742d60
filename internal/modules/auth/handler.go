package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/telegram", h.loginTelegram) // POST /api/v1/auth/telegram
		r.Post("/admin", h.loginAdmin)       // POST /api/v1/auth/admin
	})
}

func (h *Handler) loginTelegram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InitData string `json:"init_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	token, u, err := h.service.LoginTelegram(r.Context(), req.InitData)
	if err != nil {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"token": token, "user": u})
}

func (h *Handler) loginAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	token, err := h.service.LoginAdmin(r.Context(), req.Password)
	if err != nil {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"token": token})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
