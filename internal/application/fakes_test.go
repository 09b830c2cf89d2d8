package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
)

// engineFunc адаптер функции к port.TextEngine
type engineFunc func(ctx context.Context, img *entity.Image) (port.EngineResults, error)

func (f engineFunc) Name() string { return "fake" }

func (f engineFunc) Recognize(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
	return f(ctx, img)
}

// otherResults результат движка не того вида
type otherResults struct{}

func (otherResults) Kind() string { return "barcode" }

// countingEngine считает вызовы
type countingEngine struct {
	calls   atomic.Int32
	results port.EngineResults
}

func (c *countingEngine) Name() string { return "counting" }

func (c *countingEngine) Recognize(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
	c.calls.Add(1)
	return c.results, nil
}

func unitBox() entity.Quad {
	return entity.Quad{
		BottomLeft:  entity.Point{X: 0, Y: 0},
		BottomRight: entity.Point{X: 1, Y: 0},
		TopLeft:     entity.Point{X: 0, Y: 0.5},
		TopRight:    entity.Point{X: 0.5, Y: 1},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
