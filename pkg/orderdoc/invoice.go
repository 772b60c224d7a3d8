package orderdoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes supplier purchases from recorded sales.
type InvoiceKind string

const (
	InvoicePurchase InvoiceKind = "purchase"
	InvoiceSales    InvoiceKind = "sales"
)

// InvoiceLine is one line of a purchase or sales invoice. OriginalPrice
// is the pre-discount unit price; a zero value means no discount applied.
// Note the representation differs from OrderItem on purpose: invoices
// record concrete prices, orders record a discount percent.
type InvoiceLine struct {
	ProductID     string          `json:"product_id,omitempty"`
	Name          LocalizedText   `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	OriginalPrice decimal.Decimal `json:"original_price,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// Invoice is a purchase or sales invoice from the inventory workflow.
type Invoice struct {
	ID          string          `json:"id"`
	Kind        InvoiceKind     `json:"kind"`
	Number      string          `json:"number"`
	Counterpart string          `json:"counterpart"` // supplier or customer name
	Date        time.Time       `json:"date"`
	Lines       []InvoiceLine   `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// Discounted reports whether the line was sold below its original price.
func (l InvoiceLine) Discounted() bool {
	return l.OriginalPrice.IsPositive() && l.OriginalPrice.GreaterThan(l.UnitPrice)
}
