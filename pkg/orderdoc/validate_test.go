package orderdoc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validOrder() *Order {
	return &Order{
		ID: "ORD-100001",
		Items: []OrderItem{
			{
				ProductName: LocalizedText{EN: "Falafel Wrap"},
				Quantity:    2,
				Price:       decimal.NewFromFloat(25.00),
			},
		},
		Total:         decimal.NewFromFloat(50.00),
		CreatedAt:     time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC),
		OrderType:     OrderTakeaway,
		Customer:      Customer{Name: "Sami", Mobile: "0501234567"},
		PaymentMethod: PaymentCashOnDelivery,
	}
}

func TestValidateOrder_Valid(t *testing.T) {
	if err := ValidateOrder(validOrder()); err != nil {
		t.Errorf("Expected valid order, got error: %v", err)
	}
}

func TestValidateOrder_MissingID(t *testing.T) {
	o := validOrder()
	o.ID = ""
	if err := ValidateOrder(o); err == nil {
		t.Error("Expected error for missing id")
	}
}

func TestValidateOrder_NoItems(t *testing.T) {
	o := validOrder()
	o.Items = nil
	if err := ValidateOrder(o); err == nil {
		t.Error("Expected error for empty items")
	}
}

func TestValidateOrder_ZeroTimestamp(t *testing.T) {
	o := validOrder()
	o.CreatedAt = time.Time{}
	if err := ValidateOrder(o); err == nil {
		t.Error("Expected error for zero created_at")
	}
}

func TestValidateOrder_BadOrderType(t *testing.T) {
	o := validOrder()
	o.OrderType = "drive_through"
	if err := ValidateOrder(o); err == nil {
		t.Error("Expected error for unknown order type")
	}
}

func TestValidateOrder_BadPaymentMethod(t *testing.T) {
	o := validOrder()
	o.PaymentMethod = "cheque"
	if err := ValidateOrder(o); err == nil {
		t.Error("Expected error for unknown payment method")
	}
}

func TestValidateOrder_BadItems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderItem)
	}{
		{"zero quantity", func(it *OrderItem) { it.Quantity = 0 }},
		{"negative price", func(it *OrderItem) { it.Price = decimal.NewFromInt(-1) }},
		{"empty name", func(it *OrderItem) { it.ProductName = LocalizedText{} }},
		{"discount over 100", func(it *OrderItem) { it.AppliedDiscountPercent = decimal.NewFromInt(120) }},
	}

	for _, tt := range tests {
		o := validOrder()
		tt.mutate(&o.Items[0])
		if err := ValidateOrder(o); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateInvoice(t *testing.T) {
	inv := &Invoice{
		ID:          "INV-2001",
		Kind:        InvoicePurchase,
		Number:      "P-2001",
		Counterpart: "Al Noor Supplies",
		Date:        time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		Lines: []InvoiceLine{
			{Name: LocalizedText{EN: "Flour 25kg"}, Quantity: 4, UnitPrice: decimal.NewFromFloat(68.50)},
		},
		Total: decimal.NewFromFloat(274.00),
	}

	if err := ValidateInvoice(inv); err != nil {
		t.Errorf("Expected valid invoice, got error: %v", err)
	}

	bad := *inv
	bad.Kind = "credit_note"
	if err := ValidateInvoice(&bad); err == nil {
		t.Error("Expected error for unknown invoice kind")
	}

	bad = *inv
	bad.Lines = nil
	if err := ValidateInvoice(&bad); err == nil {
		t.Error("Expected error for empty lines")
	}
}

func TestValidateLanguage(t *testing.T) {
	for _, lang := range []Language{LanguageEN, LanguageAR} {
		if err := ValidateLanguage(lang); err != nil {
			t.Errorf("Expected %q to be valid: %v", lang, err)
		}
	}
	if err := ValidateLanguage("fr"); err == nil {
		t.Error("Expected error for unsupported language")
	}
}

func TestParseOrder(t *testing.T) {
	data := []byte(`{
		"id": "ORD-100002",
		"items": [{"product_name": {"en": "Mint Lemonade"}, "quantity": 1, "price": 12.5}],
		"total": 12.5,
		"created_at": "2026-08-01T14:30:00Z",
		"order_type": "delivery",
		"customer": {"name": "Huda", "address": "12 Corniche Road, Apartment 4"}
	}`)

	o, err := ParseOrder(data)
	if err != nil {
		t.Fatalf("Failed to parse order: %v", err)
	}
	if o.ID != "ORD-100002" {
		t.Errorf("Expected id ORD-100002, got %s", o.ID)
	}
	if !o.Items[0].Price.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("Expected price 12.5, got %s", o.Items[0].Price)
	}

	if _, err := ParseOrder([]byte(`{"id": ""}`)); err == nil {
		t.Error("Expected error for invalid order JSON")
	}
	if _, err := ParseOrder([]byte(`not json`)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
