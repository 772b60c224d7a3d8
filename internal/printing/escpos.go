package printing

import (
	"bytes"
	"image"
)

// ESC/POS control bytes.
const (
	escByte byte = 0x1B
	gsByte  byte = 0x1D
)

// rasterEncoder builds an ESC/POS byte stream for a thermal printer.
type rasterEncoder struct {
	buf bytes.Buffer
}

// initialize resets the printer state (ESC @).
func (e *rasterEncoder) initialize() {
	e.buf.Write([]byte{escByte, '@'})
}

// rasterImage emits the image as a GS v 0 raster block. Pixels darker
// than 50% gray print black.
func (e *rasterEncoder) rasterImage(img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	bytesPerLine := (width + 7) / 8

	bitmap := threshold(img)

	// GS v 0 m xL xH yL yH d1...dk
	e.buf.Write([]byte{gsByte, 'v', '0', 0})
	e.buf.WriteByte(byte(bytesPerLine & 0xFF))
	e.buf.WriteByte(byte((bytesPerLine >> 8) & 0xFF))
	e.buf.WriteByte(byte(height & 0xFF))
	e.buf.WriteByte(byte((height >> 8) & 0xFF))
	e.buf.Write(bitmap)
}

// feed advances the paper n lines.
func (e *rasterEncoder) feed(n int) {
	for i := 0; i < n; i++ {
		e.buf.WriteByte(0x0A)
	}
}

// cut performs a full paper cut (GS V 0).
func (e *rasterEncoder) cut() {
	e.buf.Write([]byte{gsByte, 'V', 0})
}

func (e *rasterEncoder) bytes() []byte {
	return e.buf.Bytes()
}

// threshold converts an image to a packed 1-bit bitmap, MSB first.
func threshold(img image.Image) []byte {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	bytesPerLine := (width + 7) / 8

	bitmap := make([]byte, bytesPerLine*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			gray := (r + g + b) / 3
			if gray < 32768 {
				bitmap[y*bytesPerLine+x/8] |= 1 << (7 - x%8)
			}
		}
	}
	return bitmap
}

// EncodeRaster converts a rendered receipt image into a complete
// ESC/POS job: init, raster data, paper feed, cut.
func EncodeRaster(img image.Image) []byte {
	var e rasterEncoder
	e.initialize()
	e.rasterImage(img)
	e.feed(3)
	e.cut()
	return e.bytes()
}
