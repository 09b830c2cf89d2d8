package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"simple-ocr-server/config"
	app "simple-ocr-server/internal/application"
	ocrerrors "simple-ocr-server/internal/errors"
	"simple-ocr-server/internal/logging"
)

const headerRequestID = "X-Request-Id"

// Handler обрабатывает маршруты /ping и /ocr
type Handler struct {
	ocr          *app.OCRService
	logger       *logging.Logger
	maxBodyBytes int64
}

// NewHandler создаёт обработчик; maxBodyBytes <= 0 означает значение по умолчанию
func NewHandler(ocr *app.OCRService, logger *logging.Logger, maxBodyBytes int64) *Handler {
	if logger == nil {
		logger = logging.NewLogger("http")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = config.DefaultMaxBodyBytes
	}
	return &Handler{
		ocr:          ocr,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Ping обрабатывает GET /ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	respondText(w, "pong", http.StatusOK)
}

// OCR обрабатывает POST /ocr: тело запроса — закодированное изображение
func (h *Handler) OCR(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	w.Header().Set(headerRequestID, requestID)
	logger := h.logger.With("request_id", requestID)

	body, err := h.readBody(w, r)
	if err != nil {
		logger.Warn("read body failed", "error", err)
		respondError(w, err)
		return
	}
	logger.Info("ocr request received", "bytes", len(body))

	out, err := h.ocr.Recognize(r.Context(), body, logger)
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := encodeResult(out.Result)
	if err != nil {
		logger.Error("encode response failed", "error", err)
		respondError(w, err)
		return
	}

	respondJSON(w, payload, http.StatusOK)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ocrerrors.NewBodyTooLargeError(tooLarge.Limit)
		}
		return nil, ocrerrors.NewBodyReadError(err)
	}
	return body, nil
}
