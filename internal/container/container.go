package container

import (
	app "simple-ocr-server/internal/application"
	"simple-ocr-server/internal/domain/port"
	"simple-ocr-server/internal/logging"
)

type Container struct {
	OCRService *app.OCRService
}

func New(decoder port.ImageDecoder, engine port.TextEngine, logger *logging.Logger) *Container {
	return &Container{
		OCRService: app.NewOCRService(decoder, engine, logger),
	}
}
