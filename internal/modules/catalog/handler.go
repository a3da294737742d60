package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	admin   func(http.Handler) http.Handler
}

// NewHandler creates a catalog handler. admin guards the product
// management routes.
func NewHandler(service Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, admin: admin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/new", h.newArrivals)
		r.Get("/products/sale", h.saleItems)
		r.Get("/products/{id}", h.getProduct)
		r.Post("/products/filter", h.filterProducts)
		r.Get("/filter-options", h.filterOptions)

		r.Group(func(r chi.Router) {
			r.Use(h.admin)
			r.Post("/products", h.createProduct)
			r.Put("/products/{id}", h.updateProduct)
		})
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		IsNew:    boolParam(r, "is_new"),
		IsOnSale: boolParam(r, "is_on_sale"),
		InStock:  boolParam(r, "in_stock"),
		MinPrice: floatParam(r, "min_price"),
		MaxPrice: floatParam(r, "max_price"),
	}
	products, err := h.service.ListProducts(r.Context(), q)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}
	if products == nil {
		// Zero products is an empty result, not an error.
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) newArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.NewArrivals(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}
	if products == nil {
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) saleItems(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SaleItems(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}
	if products == nil {
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) filterProducts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filters FilterSpec `json:"filters"`
		Search  string     `json:"search,omitempty"`
	}
	// Default before decode so an absent filters object constrains nothing.
	req.Filters = DefaultFilterSpec()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	products, err := h.service.FilterProducts(r.Context(), req.Filters, req.Search)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to load products"})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) filterOptions(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}
	opts, err := h.service.FilterOptions(r.Context(), categories)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to load filter options"})
		return
	}
	respond(w, http.StatusOK, opts)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func boolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func floatParam(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
