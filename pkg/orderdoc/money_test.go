package orderdoc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderTotals_NoDiscount(t *testing.T) {
	o := &Order{
		Items: []OrderItem{
			{Quantity: 2, Price: decimal.NewFromFloat(25.00)},
			{Quantity: 1, Price: decimal.NewFromFloat(12.50)},
		},
	}

	if got := Money(o.NetTotal()); got != "62.50" {
		t.Errorf("NetTotal = %s, want 62.50", got)
	}
	if !o.DiscountAmount().IsZero() {
		t.Errorf("DiscountAmount = %s, want 0", o.DiscountAmount())
	}
}

func TestOrderTotals_Reconcile(t *testing.T) {
	// Subtotal minus discount must equal total, to the cent.
	o := &Order{
		Items: []OrderItem{
			{Quantity: 3, Price: decimal.NewFromFloat(19.99), AppliedDiscountPercent: decimal.NewFromInt(10)},
			{Quantity: 1, Price: decimal.NewFromFloat(7.25)},
			{Quantity: 2, Price: decimal.NewFromFloat(33.33), AppliedDiscountPercent: decimal.NewFromInt(15)},
		},
	}

	diff := o.Subtotal().Sub(o.DiscountAmount()).Sub(o.NetTotal())
	if !diff.IsZero() {
		t.Errorf("subtotal - discount - total = %s, want 0", diff)
	}
	if !o.DiscountAmount().IsPositive() {
		t.Errorf("expected positive discount, got %s", o.DiscountAmount())
	}
}

func TestOrderItem_LineTotal(t *testing.T) {
	tests := []struct {
		qty      int
		price    float64
		discount int64
		want     string
		wantOrig string
	}{
		{2, 25.00, 0, "50.00", "50.00"},
		{1, 100.00, 25, "75.00", "100.00"},
		{3, 9.99, 50, "14.99", "29.97"},
	}

	for _, tt := range tests {
		it := OrderItem{
			Quantity:               tt.qty,
			Price:                  decimal.NewFromFloat(tt.price),
			AppliedDiscountPercent: decimal.NewFromInt(tt.discount),
		}
		if got := Money(it.LineTotal()); got != tt.want {
			t.Errorf("LineTotal(%dx%.2f @-%d%%) = %s, want %s", tt.qty, tt.price, tt.discount, got, tt.want)
		}
		if got := Money(it.OriginalLineTotal()); got != tt.wantOrig {
			t.Errorf("OriginalLineTotal(%dx%.2f) = %s, want %s", tt.qty, tt.price, got, tt.wantOrig)
		}
	}
}

func TestInvoiceTotals(t *testing.T) {
	inv := &Invoice{
		Lines: []InvoiceLine{
			{Quantity: 2, UnitPrice: decimal.NewFromFloat(40.00), OriginalPrice: decimal.NewFromFloat(50.00)},
			{Quantity: 1, UnitPrice: decimal.NewFromFloat(15.00)},
		},
	}

	if got := Money(inv.NetTotal()); got != "95.00" {
		t.Errorf("NetTotal = %s, want 95.00", got)
	}
	if got := Money(inv.Subtotal()); got != "115.00" {
		t.Errorf("Subtotal = %s, want 115.00", got)
	}
	if got := Money(inv.DiscountAmount()); got != "20.00" {
		t.Errorf("DiscountAmount = %s, want 20.00", got)
	}
}

func TestInvoiceLine_StoredSubtotalWins(t *testing.T) {
	l := InvoiceLine{
		Quantity:  3,
		UnitPrice: decimal.NewFromFloat(10.00),
		Subtotal:  decimal.NewFromFloat(29.50),
	}
	if got := Money(l.LineTotal()); got != "29.50" {
		t.Errorf("LineTotal = %s, want stored subtotal 29.50", got)
	}
}
