package tesseract

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
)

// Engine движок распознавания на Tesseract через gosseract.
// Клиент gosseract не потокобезопасен, поэтому на каждый вызов создаётся новый.
type Engine struct {
	clientFactory func() *gosseract.Client
	languages     []string
	level         gosseract.PageIteratorLevel
	preprocessor  port.Preprocessor
}

// Option настраивает Engine
type Option func(*Engine)

// WithLanguages задаёт языки обученных данных Tesseract
func WithLanguages(langs ...string) Option {
	return func(e *Engine) { e.languages = append([]string(nil), langs...) }
}

// WithLevel задаёт уровень, на котором собираются области текста
func WithLevel(level gosseract.PageIteratorLevel) Option {
	return func(e *Engine) { e.level = level }
}

// WithPreprocessor подключает подготовку изображения перед распознаванием
func WithPreprocessor(p port.Preprocessor) Option {
	return func(e *Engine) { e.preprocessor = p }
}

// NewEngine создаёт движок; по умолчанию области собираются по строкам
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clientFactory: gosseract.NewClient,
		level:         gosseract.RIL_TEXTLINE,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize распознаёт текст и возвращает области в единичных координатах.
func (e *Engine) Recognize(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := img.Data
	if e.preprocessor != nil {
		prepared, err := e.preprocessor.Prepare(img)
		if err != nil {
			return nil, fmt.Errorf("preprocess image: %w", err)
		}
		data = prepared
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(e.level)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	return toTextResults(boxes, img.Size), nil
}

func toTextResults(boxes []gosseract.BoundingBox, size entity.ImageSize) port.TextResults {
	results := make(port.TextResults, 0, len(boxes))
	for _, b := range boxes {
		results = append(results, port.RecognizedText{
			Box:        unitQuad(b.Box, size),
			Confidence: float32(b.Confidence / 100.0),
			Candidates: candidates(b.Word),
		})
	}
	return results
}

// unitQuad переводит прямоугольник Tesseract (пиксели, начало сверху слева)
// в единичный четырёхугольник с началом снизу слева.
func unitQuad(r image.Rectangle, size entity.ImageSize) entity.Quad {
	w, h := float64(size.Width), float64(size.Height)

	left := float64(r.Min.X) / w
	right := float64(r.Max.X) / w
	top := 1 - float64(r.Min.Y)/h
	bottom := 1 - float64(r.Max.Y)/h

	return entity.Quad{
		BottomLeft:  entity.Point{X: left, Y: bottom},
		BottomRight: entity.Point{X: right, Y: bottom},
		TopLeft:     entity.Point{X: left, Y: top},
		TopRight:    entity.Point{X: right, Y: top},
	}
}

func candidates(word string) []string {
	if word == "" {
		return nil
	}
	return []string{word}
}

// Проверка реализации интерфейса
var _ port.TextEngine = (*Engine)(nil)
