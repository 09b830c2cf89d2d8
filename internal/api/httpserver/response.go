package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"

	"simple-ocr-server/internal/domain/entity"
	ocrerrors "simple-ocr-server/internal/errors"
)

const (
	contentTypeJSON = "application/json; charset=UTF-8"
	contentTypeText = "text/plain; charset=UTF-8"
)

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rectJSON struct {
	BottomLeft  pointJSON `json:"bottomLeft"`
	BottomRight pointJSON `json:"bottomRight"`
	TopLeft     pointJSON `json:"topLeft"`
	TopRight    pointJSON `json:"topRight"`
}

type observationJSON struct {
	BBox       rectJSON `json:"bbox"`
	Confidence float32  `json:"confidence"`
	Label      string   `json:"label"`
}

func toPointJSON(p entity.Point) pointJSON {
	return pointJSON{X: p.X, Y: p.Y}
}

// toObservationsJSON всегда возвращает не-nil срез, чтобы пустой результат кодировался как [].
func toObservationsJSON(result entity.OcrResult) []observationJSON {
	out := make([]observationJSON, 0, len(result))
	for _, o := range result {
		out = append(out, observationJSON{
			BBox: rectJSON{
				BottomLeft:  toPointJSON(o.BoundingBox.BottomLeft),
				BottomRight: toPointJSON(o.BoundingBox.BottomRight),
				TopLeft:     toPointJSON(o.BoundingBox.TopLeft),
				TopRight:    toPointJSON(o.BoundingBox.TopRight),
			},
			Confidence: o.Confidence,
			Label:      o.Text,
		})
	}
	return out
}

// encodeResult кодирует результат целиком до записи ответа
func encodeResult(result entity.OcrResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toObservationsJSON(result)); err != nil {
		return nil, ocrerrors.NewSerializationError(err)
	}
	return buf.Bytes(), nil
}

func respondJSON(w http.ResponseWriter, body []byte, status int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondText(w http.ResponseWriter, text string, status int) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func respondError(w http.ResponseWriter, err error) {
	respondText(w, err.Error(), ocrerrors.StatusOf(err))
}
