package app

import (
	"context"
	"fmt"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
	ocrerrors "simple-ocr-server/internal/errors"
)

// outcome единственный итог одного вызова движка
type outcome struct {
	results port.EngineResults
	err     error
	panic   interface{}
}

// Recognizer вызывает движок распознавания вне обработчика запроса
// и переводит его результат в наблюдения в пикселях изображения.
type Recognizer struct {
	engine port.TextEngine
}

// NewRecognizer создаёт адаптер над движком
func NewRecognizer(engine port.TextEngine) *Recognizer {
	return &Recognizer{engine: engine}
}

// Recognize ждёт ровно один итог движка.
// Отмена контекста запроса не прерывает начатое распознавание.
func (r *Recognizer) Recognize(ctx context.Context, img *entity.Image) (entity.OcrResult, error) {
	done := make(chan outcome, 1)
	go r.submit(context.WithoutCancel(ctx), img, done)

	out := <-done
	if out.panic != nil {
		return nil, ocrerrors.NewRecognitionError(ocrerrors.ReasonEnginePanic, fmt.Errorf("engine %s panicked: %v", r.engine.Name(), out.panic))
	}
	if out.err != nil {
		return nil, ocrerrors.NewRecognitionError(ocrerrors.ReasonEngineError, out.err)
	}

	texts, ok := out.results.(port.TextResults)
	if !ok {
		return nil, ocrerrors.NewRecognitionError(ocrerrors.ReasonMissingResults, ocrerrors.ErrMissingResults)
	}

	return toObservations(texts, img.Size), nil
}

// submit отправляет в done ровно одно значение, в том числе при панике движка.
func (r *Recognizer) submit(ctx context.Context, img *entity.Image, done chan<- outcome) {
	var out outcome
	defer func() {
		if p := recover(); p != nil {
			out = outcome{panic: p}
		}
		done <- out
	}()

	out.results, out.err = r.engine.Recognize(ctx, img)
}

func toObservations(texts port.TextResults, size entity.ImageSize) entity.OcrResult {
	result := make(entity.OcrResult, 0, len(texts))
	for _, t := range texts {
		label := ""
		if len(t.Candidates) > 0 {
			label = t.Candidates[0]
		}
		result = append(result, entity.TextObservation{
			BoundingBox: t.Box.Scale(size),
			Confidence:  t.Confidence,
			Text:        label,
		})
	}
	return result
}
