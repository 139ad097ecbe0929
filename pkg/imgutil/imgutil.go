// Package imgutil holds shared helpers for resolving image input and
// producing encoded or downscaled output.
package imgutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/nfnt/resize"

	"github.com/akv004/grab/internal/graberr"
)

// defaultJPEGQuality is used when the caller does not request a quality.
const defaultJPEGQuality = 90

// DecodeInput resolves the bytes-or-path convention: input starting with
// "data:" is base64-decoded after the first comma, anything else is read
// from disk as a file path. Callers wrap the returned error with the code
// fitting their operation; a malformed data URL is always InvalidRequest.
func DecodeInput(input string) ([]byte, error) {
	if strings.HasPrefix(input, "data:") {
		_, encoded, ok := strings.Cut(input, ",")
		if !ok {
			return nil, graberr.New(graberr.CodeInvalidRequest, "invalid data URL")
		}
		return base64.StdEncoding.DecodeString(encoded)
	}
	return os.ReadFile(input)
}

// DecodeImage decodes PNG or JPEG bytes into an image.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// EncodePNG writes img as PNG with the speed-tuned encoder settings.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

// EncodeJPEG writes img as JPEG. A quality of zero or below selects the
// default of 90.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 {
		quality = defaultJPEGQuality
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// Thumbnail shrinks img so its longest edge is at most maxEdge pixels,
// keeping the aspect ratio. Images already within the limit come back
// unchanged.
func Thumbnail(img image.Image, maxEdge uint) image.Image {
	return resize.Thumbnail(maxEdge, maxEdge, img, resize.NearestNeighbor)
}

// ThumbnailPNG reads the image at path and returns a PNG-encoded thumbnail
// capped at maxEdge pixels on its longest side.
func ThumbnailPNG(path string, maxEdge uint) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, Thumbnail(img, maxEdge)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
