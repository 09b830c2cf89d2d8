package port

import (
	"context"

	"simple-ocr-server/internal/domain/entity"
)

// EngineResults нативный результат движка распознавания.
// Движок может вернуть результат не того вида, который ожидает сервис.
type EngineResults interface {
	Kind() string
}

// RecognizedText наблюдение движка в единичных координатах (начало в левом нижнем углу)
type RecognizedText struct {
	Box        entity.Quad
	Confidence float32
	Candidates []string // ноль или один кандидат, лучший первым
}

// TextResults список наблюдений текста
type TextResults []RecognizedText

// Kind реализует EngineResults
func (TextResults) Kind() string { return "text" }

// TextEngine интерфейс внешнего движка распознавания текста
type TextEngine interface {
	// Name имя движка для логов
	Name() string

	// Recognize распознаёт текст на изображении
	Recognize(ctx context.Context, img *entity.Image) (EngineResults, error)
}
