// Package stub реализует автономный стаб сервиса анализа ингредиентов.
package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vasilis249/ingredient-scanner/internal/model"
)

// Handler реализует HTTP-обработчики стаба сервиса анализа.
type Handler struct {
	results map[string]model.AnalysisResult
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewHandler создаёт обработчик стаба с предрассчитанными отчётами каталога.
// При rateLimit > 0 включается ограничение частоты запросов.
func NewHandler(logger *zap.Logger, rateLimit float64) *Handler {
	results := make(map[string]model.AnalysisResult, len(productCatalog))
	for barcode, p := range productCatalog {
		results[barcode] = buildResult(barcode, p)
	}

	var limiter *rate.Limiter
	if rateLimit > 0 {
		burst := int(rateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
	}

	return &Handler{
		results: results,
		logger:  logger,
		limiter: limiter,
	}
}

// Analyze возвращает отчёт анализа для штрихкода из каталога.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(r.URL.Query().Get("barcode"))
	if barcode == "" {
		writeDetail(w, http.StatusBadRequest, "barcode query parameter is required")
		return
	}

	result, ok := h.results[barcode]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found in cosmetics catalog.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("encode analysis error", zap.Error(err), zap.String("barcode", barcode))
	}
}

// Health сообщает о готовности стаба.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.logger.Error("encode health error", zap.Error(err))
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
