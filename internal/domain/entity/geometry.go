package entity

// Point точка на плоскости. В единичных координатах движка оси лежат в [0,1]
// с началом в левом нижнем углу, в пиксельных — в [0,width]×[0,height].
type Point struct {
	X float64
	Y float64
}

// ImageSize размеры изображения в пикселях
type ImageSize struct {
	Width  int
	Height int
}

// Scale переводит единичную точку в пиксели изображения.
// Значения за пределами [0,1] не обрезаются.
func (p Point) Scale(size ImageSize) Point {
	return Point{
		X: p.X * float64(size.Width),
		Y: p.Y * float64(size.Height),
	}
}

// Quad четырёхугольник, описывающий область текста
type Quad struct {
	BottomLeft  Point
	BottomRight Point
	TopLeft     Point
	TopRight    Point
}

// Scale применяет Point.Scale к каждому из четырёх углов.
func (q Quad) Scale(size ImageSize) Quad {
	return Quad{
		BottomLeft:  q.BottomLeft.Scale(size),
		BottomRight: q.BottomRight.Scale(size),
		TopLeft:     q.TopLeft.Scale(size),
		TopRight:    q.TopRight.Scale(size),
	}
}
