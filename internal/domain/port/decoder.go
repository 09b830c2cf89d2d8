package port

import "simple-ocr-server/internal/domain/entity"

// ImageDecoder интерфейс декодера изображений
type ImageDecoder interface {
	// Decode разбирает байты тела запроса в изображение
	Decode(data []byte) (*entity.Image, error)
}
