//go:build !gocv
// +build !gocv

package vision

import (
	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
)

// Available сообщает, что сборка сделана без OpenCV.
func Available() bool { return false }

type GoCVPreprocessor struct {
	Equalize      bool
	DenoiseKernel int
	MinContrast   float64
}

// NewGoCVPreprocessor создаёт препроцессор-заглушку (без OpenCV).
func NewGoCVPreprocessor() *GoCVPreprocessor {
	return &GoCVPreprocessor{
		Equalize:      true,
		DenoiseKernel: 3,
		MinContrast:   8,
	}
}

// Prepare без тега gocv отдаёт исходные байты без изменений.
func (p *GoCVPreprocessor) Prepare(img *entity.Image) ([]byte, error) {
	return img.Data, nil
}

var _ port.Preprocessor = (*GoCVPreprocessor)(nil)
