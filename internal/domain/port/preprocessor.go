package port

import "simple-ocr-server/internal/domain/entity"

// Preprocessor готовит изображение перед передачей движку
type Preprocessor interface {
	// Prepare возвращает закодированные байты, которые уйдут в движок
	Prepare(img *entity.Image) ([]byte, error)
}
