package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
)

// DefaultMaxPixels предел площади изображения по умолчанию (50 Мп)
const DefaultMaxPixels = 50_000_000

var (
	// ErrEmptyImage тело запроса пустое
	ErrEmptyImage = errors.New("empty image")

	// ErrTooManyPixels заголовок изображения заявляет площадь больше предела
	ErrTooManyPixels = errors.New("image dimensions exceed pixel limit")
)

// Decoder декодирует изображения из байт.
// Пустой список форматов означает любой зарегистрированный формат.
type Decoder struct {
	formats   map[string]struct{}
	maxPixels int64

	decodeConfig func(r io.Reader) (image.Config, string, error)
	decode       func(r io.Reader) (image.Image, string, error)
}

// Option настраивает Decoder
type Option func(*Decoder)

// WithFormats ограничивает декодер перечисленными форматами
func WithFormats(formats ...string) Option {
	return func(d *Decoder) {
		if len(formats) == 0 {
			d.formats = nil
			return
		}
		d.formats = make(map[string]struct{}, len(formats))
		for _, f := range formats {
			d.formats[f] = struct{}{}
		}
	}
}

// WithMaxPixels задаёт предел ширина×высота; значения <= 0 оставляют значение по умолчанию
func WithMaxPixels(n int64) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxPixels = n
		}
	}
}

// NewDecoder создаёт декодер
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		maxPixels:    DefaultMaxPixels,
		decodeConfig: image.DecodeConfig,
		decode:       image.Decode,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode полностью декодирует изображение; частичное декодирование не допускается.
// Размеры из заголовка проверяются до выделения памяти под пиксели.
func (d *Decoder) Decode(data []byte) (img *entity.Image, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	// Паника в декодере формата считается невалидным изображением
	defer func() {
		if p := recover(); p != nil {
			img = nil
			err = fmt.Errorf("decode image: decoder panicked: %v", p)
		}
	}()

	cfg, format, err := d.decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if !d.accepts(format) {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > d.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d, limit %d", ErrTooManyPixels, cfg.Width, cfg.Height, d.maxPixels)
	}

	pixels, _, err := d.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := pixels.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	return &entity.Image{
		Data:   data,
		Format: format,
		Pixels: pixels,
		Size:   entity.ImageSize{Width: bounds.Dx(), Height: bounds.Dy()},
	}, nil
}

func (d *Decoder) accepts(format string) bool {
	if d.formats == nil {
		return true
	}
	_, ok := d.formats[format]
	return ok
}

// Проверка реализации интерфейса
var _ port.ImageDecoder = (*Decoder)(nil)
