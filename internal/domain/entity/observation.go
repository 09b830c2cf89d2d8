package entity

// TextObservation одна распознанная область текста в пикселях исходного изображения
type TextObservation struct {
	BoundingBox Quad    // углы области
	Confidence  float32 // уверенность движка, обычно 0..1
	Text        string  // лучший кандидат или пустая строка
}

// OcrResult наблюдения в порядке, в котором их вернул движок
type OcrResult []TextObservation

// Empty сообщает, что движок не нашёл ни одной области текста.
func (r OcrResult) Empty() bool {
	return len(r) == 0
}
