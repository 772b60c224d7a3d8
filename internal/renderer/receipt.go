package renderer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// Options tune a single rendering pass. The zero value renders with
// default fonts, no share QR, and no barcode.
type Options struct {
	Fonts        *FontSet
	HTTPClient   *http.Client  // used only for the logo fetch
	LogoTimeout  time.Duration // bound on the logo fetch; default 5s
	ShareBaseURL string        // when set, receipts get a QR linking to <base>/<order id>
	Barcode      bool          // when set, invoices get a CODE128 of the invoice number
	CreatedBy    string        // optional "served by" detail row on receipts
}

func (o *Options) fonts() *FontSet {
	if o != nil && o.Fonts != nil {
		return o.Fonts
	}
	return DefaultFontSet()
}

func optionsOrDefault(o *Options) *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// GenerateReceiptImage renders a customer order to a PNG data URL. The
// only I/O is the logo fetch, which is bounded by the context and the
// configured timeout and degrades to a blank logo region on failure.
func GenerateReceiptImage(ctx context.Context, o *orderdoc.Order, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options) (string, error) {
	opts = optionsOrDefault(opts)
	if err := orderdoc.ValidateLanguage(lang); err != nil {
		return "", err
	}
	if err := orderdoc.ValidateOrder(o); err != nil {
		return "", err
	}

	fonts := opts.fonts()
	blocks := buildReceiptBlocks(o, rest, tr, lang, opts, fonts)
	return renderBlocks(ctx, blocks, rest.Logo, lang.RTL(), fonts, opts)
}

// EstimateReceiptHeight returns the exact pixel height the rendered
// receipt will have, without fetching the logo or painting anything.
func EstimateReceiptHeight(o *orderdoc.Order, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options) (int, error) {
	opts = optionsOrDefault(opts)
	if err := orderdoc.ValidateLanguage(lang); err != nil {
		return 0, err
	}
	if err := orderdoc.ValidateOrder(o); err != nil {
		return 0, err
	}

	fonts := opts.fonts()
	return measureBlocks(buildReceiptBlocks(o, rest, tr, lang, opts, fonts), lang.RTL(), fonts), nil
}

// renderBlocks is the shared measure-then-paint driver: measure the
// block list, allocate the canvas at exactly that height, inject the
// logo, paint, and encode.
func renderBlocks(ctx context.Context, blocks []block, logoRef string, rtl bool, fonts *FontSet, opts *Options) (string, error) {
	height := measureBlocks(blocks, rtl, fonts)

	if hb, ok := blocks[0].(*headerBlock); ok {
		hb.logo = loadLogo(ctx, logoRef, opts.HTTPClient, opts.LogoTimeout)
	}

	img := paintBlocks(blocks, rtl, fonts, height)
	return encodeDataURL(img)
}

// encodeDataURL serializes an image to a base64 PNG data URL.
func encodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode receipt image: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
