package printing

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func testImage(width, height int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

func TestEncodeRasterFraming(t *testing.T) {
	img := testImage(16, 4, color.White)
	data := EncodeRaster(img)

	if !bytes.HasPrefix(data, []byte{escByte, '@'}) {
		t.Error("expected job to start with ESC @ initialize")
	}
	if !bytes.HasSuffix(data, []byte{gsByte, 'V', 0}) {
		t.Error("expected job to end with a full cut")
	}

	// GS v 0 header with 2 bytes per line and 4 lines.
	header := []byte{gsByte, 'v', '0', 0, 2, 0, 4, 0}
	if !bytes.Contains(data, header) {
		t.Errorf("raster header %v not found in job", header)
	}
}

func TestThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}
	// Black pixels at (0,0) and (15,1).
	img.Set(0, 0, color.Black)
	img.Set(15, 1, color.Black)

	bitmap := threshold(img)
	if len(bitmap) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(bitmap))
	}
	if bitmap[0] != 0x80 {
		t.Errorf("expected first byte 0x80, got 0x%02X", bitmap[0])
	}
	if bitmap[3] != 0x01 {
		t.Errorf("expected last byte 0x01, got 0x%02X", bitmap[3])
	}
	if bitmap[1] != 0 || bitmap[2] != 0 {
		t.Error("expected middle bytes to stay clear")
	}
}

func TestThresholdMidGray(t *testing.T) {
	dark := testImage(8, 1, color.Gray{Y: 100})
	if b := threshold(dark); b[0] != 0xFF {
		t.Errorf("expected dark gray to print black, got 0x%02X", b[0])
	}

	light := testImage(8, 1, color.Gray{Y: 200})
	if b := threshold(light); b[0] != 0x00 {
		t.Errorf("expected light gray to stay white, got 0x%02X", b[0])
	}
}
