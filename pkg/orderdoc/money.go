package orderdoc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTotal is the amount actually charged for the item: the discounted
// unit price times quantity, rounded to the cent.
func (i OrderItem) LineTotal() decimal.Decimal {
	unit := i.Price
	if i.HasDiscount() {
		unit = i.Price.Mul(hundred.Sub(i.AppliedDiscountPercent)).Div(hundred)
	}
	return unit.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// OriginalLineTotal is the pre-discount amount for the item.
func (i OrderItem) OriginalLineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// Subtotal sums the pre-discount line totals.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.OriginalLineTotal())
	}
	return sum
}

// NetTotal sums the discounted line totals. The displayed subtotal minus
// the displayed discount always equals this value to the cent.
func (o *Order) NetTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// DiscountAmount is the net savings across all line items.
func (o *Order) DiscountAmount() decimal.Decimal {
	return o.Subtotal().Sub(o.NetTotal())
}

// LineTotal is the charged amount for an invoice line. Stored subtotals
// win when present so the rendered figures match the posted invoice.
func (l InvoiceLine) LineTotal() decimal.Decimal {
	if !l.Subtotal.IsZero() {
		return l.Subtotal.Round(2)
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// OriginalLineTotal is the line amount at the original unit price.
func (l InvoiceLine) OriginalLineTotal() decimal.Decimal {
	unit := l.UnitPrice
	if l.Discounted() {
		unit = l.OriginalPrice
	}
	return unit.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Subtotal sums the original line totals of the invoice.
func (v *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range v.Lines {
		sum = sum.Add(l.OriginalLineTotal())
	}
	return sum
}

// NetTotal sums the charged line totals of the invoice.
func (v *Invoice) NetTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range v.Lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// DiscountAmount is the net savings on the invoice, derived from the
// original-versus-unit price gap per line.
func (v *Invoice) DiscountAmount() decimal.Decimal {
	return v.Subtotal().Sub(v.NetTotal())
}

// Money formats an amount the way every rendered figure is shown:
// exactly two decimal places, no currency symbol.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
