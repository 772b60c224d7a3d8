package renderer

import (
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sufra/receipt-renderer/pkg/orderdoc"
)

var testRestaurant = orderdoc.RestaurantInfo{
	NameEN: "Sufra Grill",
	NameAR: "مطعم سفرة",
}

var testTranslations = orderdoc.Translations{
	"receipt":  "Receipt",
	"total":    "Total",
	"currency": "SAR",
}

func testOrder(items int) *orderdoc.Order {
	o := &orderdoc.Order{
		ID:            "ORD-100001",
		Total:         decimal.NewFromFloat(50.00),
		CreatedAt:     time.Date(2026, 8, 1, 19, 45, 0, 0, time.UTC),
		OrderType:     orderdoc.OrderTakeaway,
		Customer:      orderdoc.Customer{Name: "Sami", Mobile: "0501234567"},
		PaymentMethod: orderdoc.PaymentCashOnDelivery,
	}
	for i := 0; i < items; i++ {
		o.Items = append(o.Items, orderdoc.OrderItem{
			ProductName: orderdoc.LocalizedText{EN: fmt.Sprintf("Grilled Halloumi Plate %d", i+1)},
			Quantity:    1 + i%3,
			Price:       decimal.NewFromFloat(25.00),
		})
	}
	return o
}

// decodedHeight decodes a data URL and returns the PNG pixel height.
func decodedHeight(t *testing.T, dataURL string) int {
	t.Helper()

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("Expected a PNG data URL, got %.40q", dataURL)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("Failed to decode base64 payload: %v", err)
	}
	cfg, err := png.DecodeConfig(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if cfg.Width != PaperWidth {
		t.Errorf("Expected width %d, got %d", PaperWidth, cfg.Width)
	}
	return cfg.Height
}

func TestGenerateReceiptImage_HeightMatchesEstimate(t *testing.T) {
	for _, items := range []int{1, 5, 20} {
		o := testOrder(items)

		want, err := EstimateReceiptHeight(o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
		if err != nil {
			t.Fatalf("%d items: estimate failed: %v", items, err)
		}

		dataURL, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
		if err != nil {
			t.Fatalf("%d items: generate failed: %v", items, err)
		}

		if got := decodedHeight(t, dataURL); got != want {
			t.Errorf("%d items: painted height %d != estimated height %d", items, got, want)
		}
	}
}

func TestGenerateReceiptImage_Idempotent(t *testing.T) {
	o := testOrder(3)

	first, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	second, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	if first != second {
		t.Error("Identical inputs must produce byte-identical data URLs")
	}
}

func TestGenerateReceiptImage_RTLSameHeight(t *testing.T) {
	o := testOrder(3)
	o.Items[1].AppliedDiscountPercent = decimal.NewFromInt(20)

	en, err := EstimateReceiptHeight(o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("EN estimate failed: %v", err)
	}
	ar, err := EstimateReceiptHeight(o, testRestaurant, testTranslations, orderdoc.LanguageAR, nil)
	if err != nil {
		t.Fatalf("AR estimate failed: %v", err)
	}
	if en != ar {
		t.Errorf("Language must not change layout height: en=%d ar=%d", en, ar)
	}

	arURL, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, orderdoc.LanguageAR, nil)
	if err != nil {
		t.Fatalf("AR render failed: %v", err)
	}
	if got := decodedHeight(t, arURL); got != ar {
		t.Errorf("AR painted height %d != estimate %d", got, ar)
	}
}

func TestGenerateReceiptImage_LogoFailureDegrades(t *testing.T) {
	o := testOrder(1)
	rest := testRestaurant
	// Nothing listens here; the fetch fails fast and the render must
	// still resolve at the estimated height.
	rest.Logo = "http://127.0.0.1:9/logo.png"

	opts := &Options{LogoTimeout: 200 * time.Millisecond}

	want, err := EstimateReceiptHeight(o, rest, testTranslations, orderdoc.LanguageEN, opts)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	dataURL, err := GenerateReceiptImage(context.Background(), o, rest, testTranslations, orderdoc.LanguageEN, opts)
	if err != nil {
		t.Fatalf("Render must not fail on a dead logo URL: %v", err)
	}
	if got := decodedHeight(t, dataURL); got != want {
		t.Errorf("Painted height %d != estimate %d with placeholder logo", got, want)
	}
}

func TestGenerateReceiptImage_EndToEnd(t *testing.T) {
	// qty 2 x 25.00, takeaway, cash on delivery.
	o := testOrder(1)
	o.Items[0].Quantity = 2

	want, err := EstimateReceiptHeight(o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	dataURL, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if dataURL == "" {
		t.Fatal("Expected non-empty data URL")
	}
	if got := decodedHeight(t, dataURL); got != want {
		t.Errorf("Painted height %d != estimate %d", got, want)
	}
	if got := orderdoc.Money(o.NetTotal()); got != "50.00" {
		t.Errorf("Rendered total should be 50.00, got %s", got)
	}
}

func TestGenerateReceiptImage_InvalidInput(t *testing.T) {
	if _, err := GenerateReceiptImage(context.Background(), nil, testRestaurant, testTranslations, orderdoc.LanguageEN, nil); err == nil {
		t.Error("Expected error for nil order")
	}

	o := testOrder(1)
	if _, err := GenerateReceiptImage(context.Background(), o, testRestaurant, testTranslations, "fr", nil); err == nil {
		t.Error("Expected error for unsupported language")
	}
}

func TestGenerateReceiptImage_DiscountRowsChangeHeight(t *testing.T) {
	plain := testOrder(2)
	discounted := testOrder(2)
	discounted.Items[0].AppliedDiscountPercent = decimal.NewFromInt(10)

	hPlain, err := EstimateReceiptHeight(plain, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatal(err)
	}
	hDiscounted, err := EstimateReceiptHeight(discounted, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Struck-through original row plus subtotal and discount rows.
	want := hPlain + int(strikeRow) + 2*int(rowHeight)
	if hDiscounted != want {
		t.Errorf("Discounted height %d, want %d (plain %d)", hDiscounted, want, hPlain)
	}
}

func testInvoice() *orderdoc.Invoice {
	return &orderdoc.Invoice{
		ID:          "INV-2001",
		Kind:        orderdoc.InvoicePurchase,
		Number:      "P-2001",
		Counterpart: "Al Noor Supplies",
		Date:        time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		Lines: []orderdoc.InvoiceLine{
			{Name: orderdoc.LocalizedText{EN: "Flour 25kg"}, Quantity: 4, UnitPrice: decimal.NewFromFloat(68.50)},
			{Name: orderdoc.LocalizedText{EN: "Olive Oil 5L"}, Quantity: 2, UnitPrice: decimal.NewFromFloat(95.00), OriginalPrice: decimal.NewFromFloat(110.00)},
		},
		Total: decimal.NewFromFloat(464.00),
	}
}

func TestGeneratePurchaseInvoiceImage(t *testing.T) {
	inv := testInvoice()

	want, err := EstimateInvoiceHeight(inv, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	dataURL, err := GeneratePurchaseInvoiceImage(context.Background(), inv, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := decodedHeight(t, dataURL); got != want {
		t.Errorf("Painted height %d != estimate %d", got, want)
	}
}

func TestGeneratePurchaseInvoiceImage_WithBarcode(t *testing.T) {
	inv := testInvoice()
	opts := &Options{Barcode: true}

	plain, err := EstimateInvoiceHeight(inv, testRestaurant, testTranslations, orderdoc.LanguageEN, nil)
	if err != nil {
		t.Fatal(err)
	}
	coded, err := EstimateInvoiceHeight(inv, testRestaurant, testTranslations, orderdoc.LanguageEN, opts)
	if err != nil {
		t.Fatal(err)
	}
	if coded <= plain {
		t.Errorf("Barcode must add height: %d <= %d", coded, plain)
	}

	dataURL, err := GeneratePurchaseInvoiceImage(context.Background(), inv, testRestaurant, testTranslations, orderdoc.LanguageEN, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := decodedHeight(t, dataURL); got != coded {
		t.Errorf("Painted height %d != estimate %d", got, coded)
	}
}

func TestGenerateSalesInvoiceImage_CatalogResolution(t *testing.T) {
	inv := &orderdoc.Invoice{
		ID:          "INV-3001",
		Kind:        orderdoc.InvoiceSales,
		Number:      "S-3001",
		Counterpart: "Walk-in",
		Date:        time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		Lines: []orderdoc.InvoiceLine{
			{ProductID: "prod-7", Quantity: 2, UnitPrice: decimal.NewFromFloat(18.00)},
		},
		Total: decimal.NewFromFloat(36.00),
	}
	cat := Catalog{
		Products: map[string]orderdoc.LocalizedText{
			"prod-7": {EN: "Mint Lemonade", AR: "ليموناضة بالنعناع"},
		},
		Promotions: map[string]decimal.Decimal{
			"prod-7": decimal.NewFromInt(10),
		},
	}

	dataURL, err := GenerateSalesInvoiceImage(context.Background(), inv, testRestaurant, testTranslations, orderdoc.LanguageEN, cat, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Fatalf("Expected PNG data URL, got %.40q", dataURL)
	}

	// The record itself must stay untouched.
	if inv.Lines[0].Name.EN != "" {
		t.Error("Catalog resolution must not mutate the caller's invoice")
	}
	if !inv.Lines[0].OriginalPrice.IsZero() {
		t.Error("Promotion resolution must not mutate the caller's invoice")
	}
}
