package renderer

import (
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

// qrBlock draws a share QR code for the order. The reserved height is
// fixed whether or not encoding succeeds, so the estimate never depends
// on the content.
type qrBlock struct {
	content string
}

func (b qrBlock) render(r *Renderer) {
	if r.painting() {
		if qr, err := qrcode.New(b.content, qrcode.Medium); err == nil {
			r.drawImageCentered(qr.Image(qrSide), qrSide)
		}
	}
	r.y += qrSide + qrPad
}

// barcodeBlock draws the invoice number as CODE128 with a caption row.
type barcodeBlock struct {
	value string
}

func (b barcodeBlock) render(r *Renderer) {
	if r.painting() {
		if bc, err := code128.Encode(b.value); err == nil {
			if scaled, err := barcode.Scale(bc, int(contentWidth), barcodeHeight); err == nil {
				r.drawImageCentered(scaled, barcodeHeight)
			}
		}
	}
	r.y += barcodeHeight + barcodePad

	r.drawText(r.fonts.Small, b.value, float64(r.width)/2, r.y+optionRow/2, 0.5, mutedColor)
	r.y += optionRow
}
