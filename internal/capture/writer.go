package capture

import (
	"bufio"
	"image"
	"image/png"
	"os"

	"github.com/akv004/grab/internal/graberr"
)

// SaveImage encodes img to path as PNG. The encoder is tuned for encode
// speed over compression ratio; the output stays lossless either way.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return graberr.Wrap(graberr.CodeExportFailed, "create capture file", err)
	}

	w := bufio.NewWriter(f)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		f.Close()
		return graberr.Wrap(graberr.CodeCaptureFailed, "encode png", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return graberr.Wrap(graberr.CodeExportFailed, "write capture file", err)
	}
	if err := f.Close(); err != nil {
		return graberr.Wrap(graberr.CodeExportFailed, "close capture file", err)
	}
	return nil
}
