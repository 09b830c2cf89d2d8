//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
)

// Available сообщает, что сборка сделана с OpenCV.
func Available() bool { return true }

type GoCVPreprocessor struct {
	Equalize      bool    // выравнивание гистограммы яркости
	DenoiseKernel int     // размер ядра медианного фильтра, 0 — без фильтра
	MinContrast   float64 // минимальное стандартное отклонение яркости для выравнивания
}

// NewGoCVPreprocessor создаёт препроцессор: оттенки серого и выравнивание контраста.
func NewGoCVPreprocessor() *GoCVPreprocessor {
	return &GoCVPreprocessor{
		Equalize:      true,
		DenoiseKernel: 3,
		MinContrast:   8,
	}
}

// Prepare переводит изображение в оттенки серого и кодирует его в PNG.
// Размеры изображения не меняются, поэтому координаты движка остаются валидными.
func (p *GoCVPreprocessor) Prepare(img *entity.Image) ([]byte, error) {
	mat, err := decodeToMat(img.Data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Cols() != img.Width() || mat.Rows() != img.Height() {
		return nil, fmt.Errorf("opencv decoded %dx%d, expected %dx%d", mat.Cols(), mat.Rows(), img.Width(), img.Height())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	if p.DenoiseKernel > 1 {
		denoised := gocv.NewMat()
		defer denoised.Close()
		gocv.MedianBlur(gray, &denoised, p.DenoiseKernel)
		denoised.CopyTo(&gray)
	}

	// Выравнивание только для малоконтрастных снимков
	if p.Equalize && contrastOf(gray) < p.MinContrast {
		equalized := gocv.NewMat()
		defer equalized.Close()
		gocv.EqualizeHist(gray, &equalized)
		equalized.CopyTo(&gray)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, gray)
	if err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func contrastOf(gray gocv.Mat) float64 {
	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(gray, &mean, &stddev)
	return stddev.GetDoubleAt(0, 0)
}

// Проверка реализации интерфейса
var _ port.Preprocessor = (*GoCVPreprocessor)(nil)
