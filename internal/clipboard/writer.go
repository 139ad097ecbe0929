// Package clipboard copies capture output to the system clipboard.
package clipboard

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	textclip "github.com/atotto/clipboard"
	imageclip "golang.design/x/clipboard"

	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
)

// Writer places images and text on the system clipboard. All failures come
// back as ClipboardFailed so the pipeline can keep its best-effort contract.
type Writer struct {
	log  *logging.Logger
	once sync.Once
	err  error
}

// NewWriter creates a Writer. Native clipboard access is initialized
// lazily on first use.
func NewWriter(log *logging.Logger) *Writer {
	return &Writer{log: log}
}

// ensureInit performs the one-time native clipboard initialization the
// image clipboard requires.
func (w *Writer) ensureInit() error {
	w.once.Do(func() {
		w.err = imageclip.Init()
		if w.err != nil {
			w.log.Warn("clipboard unavailable: %v", w.err)
		}
	})
	return w.err
}

// WriteImage encodes img as PNG and places it on the clipboard.
func (w *Writer) WriteImage(img image.Image) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return graberr.Wrap(graberr.CodeClipboardFailed, "encode clipboard image", err)
	}
	return w.WriteImageBytes(buf.Bytes())
}

// WriteImageBytes places already-encoded PNG bytes on the clipboard.
func (w *Writer) WriteImageBytes(data []byte) error {
	if err := w.ensureInit(); err != nil {
		return graberr.Wrap(graberr.CodeClipboardFailed, "clipboard unavailable", err)
	}
	imageclip.Write(imageclip.FmtImage, data)
	return nil
}

// WriteText places text on the clipboard.
func (w *Writer) WriteText(text string) error {
	return graberr.Wrap(graberr.CodeClipboardFailed, "write clipboard text", textclip.WriteAll(text))
}
