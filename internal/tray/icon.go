package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"runtime"

	"github.com/sergeymakinen/go-ico"
)

// iconBytes renders the tray glyph at runtime so the package ships no
// binary asset: a camera body with a lens dot. Windows trays want ICO
// data; everything else takes PNG.
func iconBytes() []byte {
	img := drawIcon(22)
	var buf bytes.Buffer
	if runtime.GOOS == "windows" {
		if err := ico.Encode(&buf, img); err == nil {
			return buf.Bytes()
		}
		buf.Reset()
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func drawIcon(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	body := color.RGBA{R: 49, G: 50, B: 68, A: 255}
	lens := color.RGBA{R: 137, G: 180, B: 250, A: 255}

	// Camera body with a viewfinder bump on top.
	top := size / 4
	for y := top; y < size-2; y++ {
		for x := 1; x < size-1; x++ {
			img.SetRGBA(x, y, body)
		}
	}
	for y := top - 2; y < top; y++ {
		for x := size / 3; x < size-size/3; x++ {
			img.SetRGBA(x, y, body)
		}
	}

	// Lens circle centered on the body.
	cx := float64(size) / 2
	cy := float64(top+size-2) / 2
	r := float64(size) / 4.5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, lens)
			}
		}
	}
	return img
}
