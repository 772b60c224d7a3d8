package renderer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// Catalog resolves product references on sales invoice lines: localized
// names by product id, and promotion discount percents used to derive
// the original price when a line does not carry one.
type Catalog struct {
	Products   map[string]orderdoc.LocalizedText
	Promotions map[string]decimal.Decimal // product id -> discount percent
}

// GeneratePurchaseInvoiceImage renders a supplier purchase invoice to a
// PNG data URL.
func GeneratePurchaseInvoiceImage(ctx context.Context, v *orderdoc.Invoice, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options) (string, error) {
	opts = optionsOrDefault(opts)
	if err := orderdoc.ValidateLanguage(lang); err != nil {
		return "", err
	}
	if err := orderdoc.ValidateInvoice(v); err != nil {
		return "", err
	}

	fonts := opts.fonts()
	blocks := buildInvoiceBlocks(v, rest, tr, lang, opts, fonts)
	return renderBlocks(ctx, blocks, rest.Logo, lang.RTL(), fonts, opts)
}

// GenerateSalesInvoiceImage renders a recorded sale. Line names and
// promotion-derived original prices are resolved from the catalog before
// layout, on a copy of the record.
func GenerateSalesInvoiceImage(ctx context.Context, v *orderdoc.Invoice, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, cat Catalog, opts *Options) (string, error) {
	opts = optionsOrDefault(opts)
	if err := orderdoc.ValidateLanguage(lang); err != nil {
		return "", err
	}

	resolved := resolveSalesInvoice(v, cat)
	if err := orderdoc.ValidateInvoice(resolved); err != nil {
		return "", err
	}

	fonts := opts.fonts()
	blocks := buildInvoiceBlocks(resolved, rest, tr, lang, opts, fonts)
	return renderBlocks(ctx, blocks, rest.Logo, lang.RTL(), fonts, opts)
}

// EstimateInvoiceHeight mirrors EstimateReceiptHeight for invoices.
func EstimateInvoiceHeight(v *orderdoc.Invoice, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options) (int, error) {
	opts = optionsOrDefault(opts)
	if err := orderdoc.ValidateLanguage(lang); err != nil {
		return 0, err
	}
	if err := orderdoc.ValidateInvoice(v); err != nil {
		return 0, err
	}

	fonts := opts.fonts()
	return measureBlocks(buildInvoiceBlocks(v, rest, tr, lang, opts, fonts), lang.RTL(), fonts), nil
}

func resolveSalesInvoice(v *orderdoc.Invoice, cat Catalog) *orderdoc.Invoice {
	if v == nil {
		return nil
	}

	out := *v
	out.Lines = make([]orderdoc.InvoiceLine, len(v.Lines))
	copy(out.Lines, v.Lines)

	for i := range out.Lines {
		l := &out.Lines[i]
		if l.ProductID == "" {
			continue
		}
		if l.Name.EN == "" && l.Name.AR == "" {
			if name, ok := cat.Products[l.ProductID]; ok {
				l.Name = name
			}
		}
		if l.OriginalPrice.IsZero() {
			if pct, ok := cat.Promotions[l.ProductID]; ok && pct.IsPositive() {
				// unit price = original * (100-pct)/100, so invert.
				hundred := decimal.NewFromInt(100)
				l.OriginalPrice = l.UnitPrice.Mul(hundred).Div(hundred.Sub(pct)).Round(2)
			}
		}
	}
	return &out
}
