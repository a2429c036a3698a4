package web

import (
	"net/http"

	"vendor-storage/internal/app"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps vendor aggregate payloads; a full aggregate with every
// collection populated stays well under this.
const maxBodyBytes = 1 << 20

// Handler holds the ApplicationService behind the chi router.
type Handler struct {
	svc app.ApplicationService
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxBodyBytes))

	r.Get("/api/health", h.health)

	r.Route("/api/tenants/{tenant}", func(r chi.Router) {
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.listVendors)
			r.Post("/", h.createVendor)
			r.Get("/{id}", h.getVendor)
			r.Put("/{id}", h.updateVendor)
			r.Delete("/{id}", h.deleteVendor)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
			r.Get("/{id}", h.getCategory)
			r.Put("/{id}", h.updateCategory)
			r.Delete("/{id}", h.deleteCategory)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
