package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"simple-ocr-server/internal/domain/entity"
	"simple-ocr-server/internal/domain/port"
	"simple-ocr-server/internal/infrastructure/imaging"
)

func TestUnitQuad(t *testing.T) {
	size := entity.ImageSize{Width: 200, Height: 100}

	q := unitQuad(image.Rect(0, 0, 100, 50), size)
	require.Equal(t, entity.Point{X: 0, Y: 0.5}, q.BottomLeft)
	require.Equal(t, entity.Point{X: 0.5, Y: 0.5}, q.BottomRight)
	require.Equal(t, entity.Point{X: 0, Y: 1}, q.TopLeft)
	require.Equal(t, entity.Point{X: 0.5, Y: 1}, q.TopRight)

	// после масштабирования обратно получаем пиксели, перевёрнутые по вертикали
	scaled := q.Scale(size)
	require.Equal(t, entity.Point{X: 100, Y: 50}, scaled.BottomRight)
	require.Equal(t, entity.Point{X: 0, Y: 100}, scaled.TopLeft)
}

func TestToTextResults(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(0, 0, 10, 10), Word: "Hello", Confidence: 87},
		{Box: image.Rect(10, 0, 20, 10), Word: "", Confidence: 0},
	}

	res := toTextResults(boxes, entity.ImageSize{Width: 20, Height: 10})
	require.Len(t, res, 2)
	require.Equal(t, []string{"Hello"}, res[0].Candidates)
	require.InDelta(t, 0.87, res[0].Confidence, 1e-6)
	require.Empty(t, res[1].Candidates)
}

func TestToTextResults_NoBoxes(t *testing.T) {
	res := toTextResults(nil, entity.ImageSize{Width: 1, Height: 1})
	require.NotNil(t, res)
	require.Empty(t, res)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("word")
	require.NoError(t, err)
	require.Equal(t, gosseract.RIL_WORD, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, gosseract.RIL_TEXTLINE, lvl)

	_, err = ParseLevel("glyph")
	require.Error(t, err)
}

// ensureTesseractAvailable пропускает тест без установленного tesseract
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	img := image.NewRGBA(image.Rect(0, 0, 200, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString("Hello OCR")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	decoded, err := imaging.NewDecoder().Decode(buf.Bytes())
	require.NoError(t, err)

	res, err := NewEngine(WithLanguages("eng")).Recognize(context.Background(), decoded)
	require.NoError(t, err)

	texts, ok := res.(port.TextResults)
	require.True(t, ok)
	require.NotEmpty(t, texts)

	var all []string
	for _, r := range texts {
		all = append(all, r.Candidates...)
	}
	require.Contains(t, strings.ToLower(strings.Join(all, " ")), "hello")
}
