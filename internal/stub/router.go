package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/vasilis249/ingredient-scanner/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware стаба.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	if h.limiter != nil {
		r.Use(custommiddleware.RateLimit(h.limiter))
	}

	r.Get("/cosmetics/analyze", h.Analyze)
	r.Get("/health", h.Health)

	// Ответы об ошибках маршрутизации держат ту же форму, что и сами обработчики.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}
