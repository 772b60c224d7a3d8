// Package renderer turns order and invoice records into receipt images.
//
// Layout runs in two passes over one declarative block list: a measure
// pass that only accumulates height, then a paint pass that draws onto a
// canvas allocated at exactly that height. Both passes execute the same
// block code; drawing calls are no-ops while measuring, so the two can
// not drift apart.
package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// PaperWidth is the canvas width in pixels, sized for 80mm thermal paper
// at 203dpi.
const PaperWidth = 576

const (
	margin       = 28.0
	contentWidth = float64(PaperWidth) - 2*margin

	logoBox           = 96.0
	headerPad         = 12.0
	nameRowHeight     = 44.0
	subtitleRowHeight = 30.0

	sepHeight     = 24.0
	rowHeight     = 34.0
	colHeaderRow  = 36.0
	itemLine      = 34.0
	optionRow     = 28.0
	strikeRow     = 28.0
	itemGap       = 10.0
	totalRow      = 46.0
	chipHeight    = 40.0
	chipPad       = 10.0
	footerHeight  = 56.0
	priceColWidth = 130.0

	qrSide        = 160
	qrPad         = 16.0
	barcodeHeight = 64
	barcodePad    = 16.0
)

var (
	paperColor = color.White
	inkColor   = color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF}
	mutedColor = color.RGBA{R: 0x82, G: 0x82, B: 0x82, A: 0xFF}
	chipText   = color.White

	chipPalette = map[orderdoc.PaymentMethod]color.RGBA{
		orderdoc.PaymentCashOnDelivery: {R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
		orderdoc.PaymentOnline:         {R: 0x10, G: 0x98, B: 0x51, A: 0xFF},
		orderdoc.PaymentUnpaid:         {R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	}
)

// block is one visual region of the receipt. render must advance r.y by
// the block's height whether or not a canvas is attached.
type block interface {
	render(r *Renderer)
}

// Renderer walks a block list. With ctx nil it only measures; with a
// canvas attached it paints as it goes.
type Renderer struct {
	width int
	rtl   bool
	fonts *FontSet
	ctx   *gg.Context
	y     float64
}

func measureBlocks(blocks []block, rtl bool, fonts *FontSet) int {
	r := &Renderer{width: PaperWidth, rtl: rtl, fonts: fonts}
	for _, b := range blocks {
		b.render(r)
	}
	return int(math.Ceil(r.y))
}

func paintBlocks(blocks []block, rtl bool, fonts *FontSet, height int) image.Image {
	ctx := gg.NewContext(PaperWidth, height)
	ctx.SetColor(paperColor)
	ctx.Clear()

	r := &Renderer{width: PaperWidth, rtl: rtl, fonts: fonts, ctx: ctx}
	for _, b := range blocks {
		b.render(r)
	}
	return ctx.Image()
}

func (r *Renderer) painting() bool {
	return r.ctx != nil
}

// mirror flips a horizontal coordinate for right-to-left layout. Using
// one helper everywhere avoids duplicating draw logic per direction.
func (r *Renderer) mirror(x float64) float64 {
	if r.rtl {
		return float64(r.width) - x
	}
	return x
}

// anchor flips a horizontal text anchor (0 left, 1 right) under RTL.
func (r *Renderer) anchor(ax float64) float64 {
	if r.rtl {
		return 1 - ax
	}
	return ax
}

// drawText draws a string anchored at (x, y); y is the vertical center
// of the run. No-op while measuring.
func (r *Renderer) drawText(face font.Face, s string, x, y, ax float64, col color.Color) {
	if !r.painting() || s == "" {
		return
	}
	r.ctx.SetFontFace(face)
	r.ctx.SetColor(col)
	r.ctx.DrawStringAnchored(s, x, y, ax, 0.35)
}

// dashedLine draws a horizontal dashed rule at the given y.
func (r *Renderer) dashedLine(y, inset float64) {
	if !r.painting() {
		return
	}
	r.ctx.SetColor(mutedColor)
	r.ctx.SetLineWidth(1.5)
	r.ctx.SetDash(6, 4)
	r.ctx.DrawLine(margin+inset, y, float64(r.width)-margin-inset, y)
	r.ctx.Stroke()
	r.ctx.SetDash()
}

// strike draws the line through a struck-out price run whose right edge
// (or left edge under RTL) is anchored at x with width w.
func (r *Renderer) strike(x, y, w, ax float64) {
	if !r.painting() {
		return
	}
	x0 := x - ax*w
	r.ctx.SetColor(mutedColor)
	r.ctx.SetLineWidth(1.5)
	r.ctx.DrawLine(x0, y, x0+w, y)
	r.ctx.Stroke()
}

func (r *Renderer) drawImageCentered(img image.Image, boxHeight float64) {
	if !r.painting() || img == nil {
		return
	}
	b := img.Bounds()
	x := (r.width - b.Dx()) / 2
	y := r.y + (boxHeight-float64(b.Dy()))/2
	r.ctx.DrawImage(img, x, int(y))
}
