package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
	ocrerrors "simple-ocr-server/internal/errors"
	"simple-ocr-server/internal/infrastructure/imaging"
	"simple-ocr-server/internal/logging"
)

func newTestService(engine port.TextEngine) (*OCRService, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewOCRService(imaging.NewDecoder(), engine, logging.NewLoggerTo(&buf, "ocr")), &buf
}

func TestOCRService_Recognize(t *testing.T) {
	engine := engineFunc(func(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
		return port.TextResults{{Box: unitBox(), Confidence: 0.9, Candidates: []string{"total"}}}, nil
	})
	svc, logs := newTestService(engine)

	out, err := svc.Recognize(context.Background(), pngBytes(t, 200, 100), nil)
	require.NoError(t, err)
	require.Equal(t, entity.ImageSize{Width: 200, Height: 100}, out.Size)
	require.Equal(t, "png", out.Format)
	require.Len(t, out.Result, 1)
	require.Equal(t, entity.Point{X: 200, Y: 0}, out.Result[0].BoundingBox.BottomRight)
	require.Equal(t, entity.Point{X: 100, Y: 100}, out.Result[0].BoundingBox.TopRight)
	require.Contains(t, logs.String(), "text recognized regions=1")
}

func TestOCRService_DecodeError(t *testing.T) {
	engine := &countingEngine{results: port.TextResults{}}
	svc, logs := newTestService(engine)

	_, err := svc.Recognize(context.Background(), []byte("not an image"), nil)
	require.True(t, ocrerrors.IsCode(err, ocrerrors.ErrorDecodeFailed))
	require.Equal(t, int32(0), engine.calls.Load())
	require.Contains(t, logs.String(), "[WARN] decode failed")
}

func TestOCRService_RecognitionErrorLogsReason(t *testing.T) {
	engine := engineFunc(func(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
		return otherResults{}, nil
	})
	svc, logs := newTestService(engine)

	_, err := svc.Recognize(context.Background(), pngBytes(t, 4, 4), nil)
	require.True(t, ocrerrors.IsCode(err, ocrerrors.ErrorRecognitionFailed))
	require.Contains(t, logs.String(), "reason=missing_results")
}

func TestOCRService_NoTextLoggedDistinctly(t *testing.T) {
	engine := engineFunc(func(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
		return port.TextResults{}, nil
	})
	svc, logs := newTestService(engine)

	out, err := svc.Recognize(context.Background(), pngBytes(t, 4, 4), nil)
	require.NoError(t, err)
	require.Empty(t, out.Result)
	require.Contains(t, logs.String(), "no text found")
}

func TestOCRService_NotConfigured(t *testing.T) {
	svc := NewOCRService(nil, nil, nil)

	_, err := svc.Recognize(context.Background(), pngBytes(t, 4, 4), nil)
	require.True(t, ocrerrors.IsCode(err, ocrerrors.ErrorRecognitionFailed))
}

func TestOCRService_ConcurrentRequestsDoNotMix(t *testing.T) {
	// движок подписывает результат размерами изображения
	engine := engineFunc(func(ctx context.Context, img *entity.Image) (port.EngineResults, error) {
		label := fmt.Sprintf("%dx%d", img.Width(), img.Height())
		return port.TextResults{{Box: unitBox(), Candidates: []string{label}}}, nil
	})
	svc, _ := newTestService(engine)

	const n = 32
	images := make(map[int][]byte, n)
	for w := 1; w <= n; w++ {
		images[w] = pngBytes(t, w, w+1)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for w := 1; w <= n; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out, err := svc.Recognize(context.Background(), images[w], nil)
			if err != nil {
				errs <- err
				return
			}
			want := fmt.Sprintf("%dx%d", w, w+1)
			if len(out.Result) != 1 || out.Result[0].Text != want {
				errs <- errors.New("mixed result: want " + want)
				return
			}
			if out.Result[0].BoundingBox.BottomRight.X != float64(w) {
				errs <- errors.New("wrong scale for " + want)
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
