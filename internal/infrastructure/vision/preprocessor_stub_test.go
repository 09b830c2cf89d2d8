//go:build !gocv
// +build !gocv

package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"simple-ocr-server/internal/domain/entity"
)

func TestStubPreprocessorPassesBytesThrough(t *testing.T) {
	img := &entity.Image{Data: []byte{1, 2, 3}, Size: entity.ImageSize{Width: 1, Height: 1}}

	got, err := NewGoCVPreprocessor().Prepare(img)
	require.NoError(t, err)
	require.Equal(t, img.Data, got)
	require.False(t, Available())
}
