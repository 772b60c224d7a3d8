package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

// headerBlock draws the logo box, restaurant name, and subtitle. The
// logo image is injected after the measure pass; the box height is fixed
// so a missing or late logo never changes the layout.
type headerBlock struct {
	logo     image.Image
	name     string
	subtitle string
}

func (b *headerBlock) render(r *Renderer) {
	r.drawImageCentered(b.logo, logoBox)
	r.y += logoBox + headerPad

	cx := float64(r.width) / 2
	r.drawText(r.fonts.Title, b.name, cx, r.y+nameRowHeight/2, 0.5, inkColor)
	r.y += nameRowHeight

	r.drawText(r.fonts.Regular, b.subtitle, cx, r.y+subtitleRowHeight/2, 0.5, mutedColor)
	r.y += subtitleRowHeight + headerPad
}

// separatorBlock is a dashed horizontal rule. Inter-item separators use
// a wider inset than section separators.
type separatorBlock struct {
	inset float64
}

func (b separatorBlock) render(r *Renderer) {
	r.dashedLine(r.y+sepHeight/2, b.inset)
	r.y += sepHeight
}

// detailRowBlock is a label/value pair. When wrap is set the value is
// wrapped against half the content width and the row grows one line
// height per wrapped line, with the label on the first line.
type detailRowBlock struct {
	label string
	value string
	wrap  bool
}

func (b detailRowBlock) render(r *Renderer) {
	labelX := r.mirror(margin)
	valueX := r.mirror(float64(PaperWidth) - margin)

	if !b.wrap {
		r.drawText(r.fonts.Regular, b.label, labelX, r.y+rowHeight/2, r.anchor(0), mutedColor)
		r.drawText(r.fonts.Regular, b.value, valueX, r.y+rowHeight/2, r.anchor(1), inkColor)
		r.y += rowHeight
		return
	}

	lines := WrapLines(b.value, contentWidth/2, r.fonts.Regular)
	if len(lines) == 0 {
		lines = []string{""}
	}
	r.drawText(r.fonts.Regular, b.label, labelX, r.y+rowHeight/2, r.anchor(0), mutedColor)
	for _, line := range lines {
		r.drawText(r.fonts.Regular, line, valueX, r.y+rowHeight/2, r.anchor(1), inkColor)
		r.y += rowHeight
	}
}

// columnHeadersBlock labels the itemized section.
type columnHeadersBlock struct {
	left  string
	right string
}

func (b columnHeadersBlock) render(r *Renderer) {
	y := r.y + colHeaderRow/2
	r.drawText(r.fonts.Bold, b.left, r.mirror(margin), y, r.anchor(0), inkColor)
	r.drawText(r.fonts.Bold, b.right, r.mirror(float64(PaperWidth)-margin), y, r.anchor(1), inkColor)
	r.y += colHeaderRow
}

// itemBlock is one order or invoice line: wrapped name with quantity
// prefix, the charged total, an optional struck-through original total,
// and option sub-lines. Name lines are wrapped once at build time so
// both passes walk identical lines.
type itemBlock struct {
	nameLines []string
	total     string
	original  string // empty when the line carries no discount
	options   []string
}

func (b itemBlock) render(r *Renderer) {
	nameX := r.mirror(margin)
	amountX := r.mirror(float64(PaperWidth) - margin)

	for i, line := range b.nameLines {
		y := r.y + itemLine/2
		r.drawText(r.fonts.Regular, line, nameX, y, r.anchor(0), inkColor)
		if i == 0 {
			r.drawText(r.fonts.Bold, b.total, amountX, y, r.anchor(1), inkColor)
		}
		r.y += itemLine
	}

	if b.original != "" {
		y := r.y + strikeRow/2
		r.drawText(r.fonts.Small, b.original, amountX, y, r.anchor(1), mutedColor)
		r.strike(amountX, y, textWidth(r.fonts.Small, b.original), r.anchor(1))
		r.y += strikeRow
	}

	optX := r.mirror(margin + 18)
	for _, opt := range b.options {
		r.drawText(r.fonts.Small, opt, optX, r.y+optionRow/2, r.anchor(0), mutedColor)
		r.y += optionRow
	}

	r.y += itemGap
}

// totalsRow is one line of the totals block.
type totalsRow struct {
	label    string
	amount   string
	currency string
	grand    bool
}

// totalsBlock renders the conditional subtotal/discount rows and the
// final total. The currency label is its own text run next to the
// amount, never baked into the number.
type totalsBlock struct {
	rows []totalsRow
}

func (b totalsBlock) render(r *Renderer) {
	for _, row := range b.rows {
		h := rowHeight
		amountFace, labelFace := r.fonts.Bold, r.fonts.Regular
		if row.grand {
			h = totalRow
			amountFace, labelFace = r.fonts.Title, r.fonts.Bold
		}
		y := r.y + h/2

		r.drawText(labelFace, row.label, r.mirror(margin), y, r.anchor(0), mutedColor)

		x := r.mirror(float64(PaperWidth) - margin)
		if row.currency != "" {
			r.drawText(r.fonts.Small, row.currency, x, y, r.anchor(1), mutedColor)
			gap := textWidth(r.fonts.Small, row.currency) + 8
			if r.rtl {
				x += gap
			} else {
				x -= gap
			}
		}
		r.drawText(amountFace, row.amount, x, y, r.anchor(1), inkColor)

		r.y += h
	}
}

// chipBlock is the rounded payment-status badge plus an optional
// payment-detail line beneath it. Orders only; invoices omit it.
type chipBlock struct {
	label  string
	fill   color.Color
	detail string
}

func (b chipBlock) render(r *Renderer) {
	if r.painting() {
		w := textWidth(r.fonts.Bold, b.label) + 32
		h := chipHeight - 8
		x := (float64(r.width) - w) / 2
		r.ctx.SetColor(b.fill)
		r.ctx.DrawRoundedRectangle(x, r.y+4, w, h, h/2)
		r.ctx.Fill()
		r.drawText(r.fonts.Bold, b.label, float64(r.width)/2, r.y+chipHeight/2, 0.5, chipText)
	}
	r.y += chipHeight

	if b.detail != "" {
		r.drawText(r.fonts.Small, b.detail, float64(r.width)/2, r.y+optionRow/2, 0.5, mutedColor)
		r.y += optionRow
	}
	r.y += chipPad
}

// footerBlock is the centered thank-you line.
type footerBlock struct {
	text string
}

func (b footerBlock) render(r *Renderer) {
	r.drawText(r.fonts.Regular, b.text, float64(r.width)/2, r.y+footerHeight/2, 0.5, inkColor)
	r.y += footerHeight
}

// buildReceiptBlocks assembles the block list for a customer order. The
// order must already be validated.
func buildReceiptBlocks(o *orderdoc.Order, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options, fonts *FontSet) []block {
	blocks := []block{
		&headerBlock{name: rest.Name(lang), subtitle: tr.Get("receipt")},
		separatorBlock{},
		detailRowBlock{label: tr.Get("order_id"), value: o.ID},
		detailRowBlock{label: tr.Get("date"), value: o.CreatedAt.Format("2006-01-02 15:04")},
		detailRowBlock{label: tr.Get("order_type"), value: tr.Get(string(o.OrderType))},
	}
	if o.Customer.Name != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("customer"), value: o.Customer.Name})
	}
	if o.Customer.Mobile != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("mobile"), value: o.Customer.Mobile})
	}
	if o.Customer.Address != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("address"), value: o.Customer.Address, wrap: true})
	}
	if o.Notes != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("notes"), value: o.Notes, wrap: true})
	}
	if opts.CreatedBy != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("served_by"), value: opts.CreatedBy})
	}

	blocks = append(blocks,
		separatorBlock{},
		columnHeadersBlock{left: tr.Get("item"), right: tr.Get("price")},
	)

	for i, it := range o.Items {
		name := fmt.Sprintf("%dx %s", it.Quantity, it.ProductName.In(lang))
		ib := itemBlock{
			nameLines: WrapLines(name, contentWidth-priceColWidth, fonts.Regular),
			total:     orderdoc.Money(it.LineTotal()),
		}
		if it.HasDiscount() {
			ib.original = orderdoc.Money(it.OriginalLineTotal())
		}
		for _, k := range sortedKeys(it.Options) {
			ib.options = append(ib.options, fmt.Sprintf("%s: %s", k, it.Options[k]))
		}
		blocks = append(blocks, ib)
		if i < len(o.Items)-1 {
			blocks = append(blocks, separatorBlock{inset: 40})
		}
	}

	blocks = append(blocks, separatorBlock{}, totalsBlock{rows: orderTotalsRows(o, tr)})

	if o.PaymentMethod != "" {
		fill, ok := chipPalette[o.PaymentMethod]
		if !ok {
			fill = chipPalette[orderdoc.PaymentUnpaid]
		}
		blocks = append(blocks, chipBlock{
			label:  tr.Get(paymentKey(o.PaymentMethod)),
			fill:   fill,
			detail: o.PaymentDetail,
		})
	}

	if opts.ShareBaseURL != "" {
		blocks = append(blocks, qrBlock{content: shareLink(opts.ShareBaseURL, o.ID)})
	}

	return append(blocks, footerBlock{text: tr.Get("thank_you")})
}

// buildInvoiceBlocks assembles the block list for a purchase or sales
// invoice. Invoices carry no payment chip.
func buildInvoiceBlocks(v *orderdoc.Invoice, rest orderdoc.RestaurantInfo, tr orderdoc.Translations, lang orderdoc.Language, opts *Options, fonts *FontSet) []block {
	subtitle := tr.Get("purchase_invoice")
	counterpartLabel := tr.Get("supplier")
	if v.Kind == orderdoc.InvoiceSales {
		subtitle = tr.Get("sales_invoice")
		counterpartLabel = tr.Get("customer")
	}

	blocks := []block{
		&headerBlock{name: rest.Name(lang), subtitle: subtitle},
		separatorBlock{},
		detailRowBlock{label: tr.Get("invoice_number"), value: v.Number},
		detailRowBlock{label: tr.Get("date"), value: v.Date.Format("2006-01-02")},
		detailRowBlock{label: counterpartLabel, value: v.Counterpart},
	}
	if v.CreatedBy != "" {
		blocks = append(blocks, detailRowBlock{label: tr.Get("created_by"), value: v.CreatedBy})
	}

	blocks = append(blocks,
		separatorBlock{},
		columnHeadersBlock{left: tr.Get("item"), right: tr.Get("price")},
	)

	for i, l := range v.Lines {
		name := fmt.Sprintf("%dx %s", l.Quantity, l.Name.In(lang))
		ib := itemBlock{
			nameLines: WrapLines(name, contentWidth-priceColWidth, fonts.Regular),
			total:     orderdoc.Money(l.LineTotal()),
		}
		if l.Discounted() {
			ib.original = orderdoc.Money(l.OriginalLineTotal())
		}
		blocks = append(blocks, ib)
		if i < len(v.Lines)-1 {
			blocks = append(blocks, separatorBlock{inset: 40})
		}
	}

	blocks = append(blocks, separatorBlock{}, totalsBlock{rows: invoiceTotalsRows(v, tr)})

	if opts.Barcode && v.Number != "" {
		blocks = append(blocks, barcodeBlock{value: v.Number})
	}

	return append(blocks, footerBlock{text: tr.Get("thank_you")})
}

// orderTotalsRows emits subtotal and discount rows only when the order
// produced net savings; the grand total row is always present.
func orderTotalsRows(o *orderdoc.Order, tr orderdoc.Translations) []totalsRow {
	currency := tr.Get("currency")
	var rows []totalsRow
	if discount := o.DiscountAmount(); discount.IsPositive() {
		rows = append(rows,
			totalsRow{label: tr.Get("subtotal"), amount: orderdoc.Money(o.Subtotal()), currency: currency},
			totalsRow{label: tr.Get("discount"), amount: "-" + orderdoc.Money(discount), currency: currency},
		)
	}
	return append(rows, totalsRow{
		label:    tr.Get("total"),
		amount:   orderdoc.Money(o.NetTotal()),
		currency: currency,
		grand:    true,
	})
}

func invoiceTotalsRows(v *orderdoc.Invoice, tr orderdoc.Translations) []totalsRow {
	currency := tr.Get("currency")
	var rows []totalsRow
	if discount := v.DiscountAmount(); discount.IsPositive() {
		rows = append(rows,
			totalsRow{label: tr.Get("subtotal"), amount: orderdoc.Money(v.Subtotal()), currency: currency},
			totalsRow{label: tr.Get("discount"), amount: "-" + orderdoc.Money(discount), currency: currency},
		)
	}
	return append(rows, totalsRow{
		label:    tr.Get("total"),
		amount:   orderdoc.Money(v.NetTotal()),
		currency: currency,
		grand:    true,
	})
}

func paymentKey(m orderdoc.PaymentMethod) string {
	switch m {
	case orderdoc.PaymentCashOnDelivery:
		return "cash_on_delivery"
	case orderdoc.PaymentOnline:
		return "paid_online"
	default:
		return "unpaid"
	}
}

func shareLink(base, id string) string {
	return strings.TrimSuffix(base, "/") + "/" + id
}

// sortedKeys keeps option rows in a stable order; map iteration order
// would break byte-identical re-renders.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
