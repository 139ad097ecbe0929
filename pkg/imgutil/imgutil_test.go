package imgutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akv004/grab/internal/graberr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 3, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeInput_DataURL(t *testing.T) {
	raw := pngBytes(t, 8, 8)
	input := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodeInput(input)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeInput_DataURLWithoutComma(t *testing.T) {
	_, err := DecodeInput("data:image/png;base64")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeInvalidRequest))
}

func TestDecodeInput_Path(t *testing.T) {
	raw := pngBytes(t, 8, 8)
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	decoded, err := DecodeInput(path)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeInput_MissingPath(t *testing.T) {
	_, err := DecodeInput(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestThumbnail_ShrinksLongestEdge(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 640, 480))
	require.NoError(t, err)

	thumb := Thumbnail(img, 320)
	assert.Equal(t, 320, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestThumbnail_LeavesSmallImagesAlone(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 100, 60))
	require.NoError(t, err)

	thumb := Thumbnail(img, 320)
	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.Equal(t, 60, thumb.Bounds().Dy())
}

func TestThumbnailPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 800, 400), 0644))

	data, err := ThumbnailPNG(path, 320)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestEncodeJPEG_DecodesBack(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 32, 32))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeJPEG(&buf, img, 0))

	decoded, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
}
