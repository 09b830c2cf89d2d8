package app

import (
	"context"
	"errors"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
	ocrerrors "simple-ocr-server/internal/errors"
	"simple-ocr-server/internal/logging"
)

// OCRService управляет распознаванием: декодирование, движок, перевод координат.
type OCRService struct {
	decoder    port.ImageDecoder
	recognizer *Recognizer
	logger     *logging.Logger
}

// OCROutput содержит результат распознавания и размеры исходного изображения.
type OCROutput struct {
	Result entity.OcrResult
	Size   entity.ImageSize
	Format string
}

// NewOCRService создаёт сервис распознавания
func NewOCRService(decoder port.ImageDecoder, engine port.TextEngine, logger *logging.Logger) *OCRService {
	if logger == nil {
		logger = logging.NewLogger("ocr")
	}
	return &OCRService{
		decoder:    decoder,
		recognizer: NewRecognizer(engine),
		logger:     logger,
	}
}

// Recognize распознаёт текст на изображении из тела запроса.
// Возвращает DecodeError для невалидных байт и RecognitionError при сбое движка.
func (s *OCRService) Recognize(ctx context.Context, body []byte, logger *logging.Logger) (*OCROutput, error) {
	if s.decoder == nil || s.recognizer.engine == nil {
		return nil, ocrerrors.NewRecognitionError(ocrerrors.ReasonEngineError, errors.New("ocr service is not configured"))
	}
	if logger == nil {
		logger = s.logger
	}

	img, err := s.decoder.Decode(body)
	if err != nil {
		logger.Warn("decode failed", "bytes", len(body), "error", err)
		return nil, ocrerrors.NewDecodeError(err)
	}

	result, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		reason := ocrerrors.Reason("")
		if e, ok := ocrerrors.As(err); ok {
			reason = e.Reason
		}
		logger.Error("recognition failed", "engine", s.recognizer.engine.Name(), "reason", reason, "error", err)
		return nil, err
	}

	if result.Empty() {
		logger.Info("no text found", "width", img.Width(), "height", img.Height())
	} else {
		logger.Info("text recognized", "regions", len(result), "width", img.Width(), "height", img.Height())
	}

	return &OCROutput{Result: result, Size: img.Size, Format: img.Format}, nil
}
