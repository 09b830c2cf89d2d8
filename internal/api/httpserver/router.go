package httpserver

import "net/http"

// NewRouter регистрирует маршруты сервиса.
// Остальные методы на этих путях получают 405 от ServeMux.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("POST /ocr", h.OCR)
	return mux
}
