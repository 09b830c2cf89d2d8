package entity

import "image"

// Image декодированное изображение из тела запроса
type Image struct {
	Data   []byte      // исходные закодированные байты
	Format string      // "jpeg", "png", ...
	Pixels image.Image // декодированные пиксели
	Size   ImageSize
}

// Width ширина в пикселях
func (i *Image) Width() int { return i.Size.Width }

// Height высота в пикселях
func (i *Image) Height() int { return i.Size.Height }
