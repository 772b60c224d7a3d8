package orderdoc

import "fmt"

// ValidateLanguage checks the language tag.
func ValidateLanguage(lang Language) error {
	switch lang {
	case LanguageEN, LanguageAR:
		return nil
	}
	return fmt.Errorf("unsupported language: %q (must be en or ar)", lang)
}

// ValidateOrder checks the shape assumptions the renderer relies on.
// Malformed records are rejected here with a descriptive error instead
// of surfacing as garbage pixels or a formatting panic mid-render.
func ValidateOrder(o *Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order %s: at least one item is required", o.ID)
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("order %s: created_at is required", o.ID)
	}
	switch o.OrderType {
	case OrderDineIn, OrderDelivery, OrderTakeaway:
	default:
		return fmt.Errorf("order %s: invalid order_type %q", o.ID, o.OrderType)
	}
	if o.PaymentMethod != "" {
		switch o.PaymentMethod {
		case PaymentCashOnDelivery, PaymentOnline, PaymentUnpaid:
		default:
			return fmt.Errorf("order %s: invalid payment_method %q", o.ID, o.PaymentMethod)
		}
	}
	for i, it := range o.Items {
		if err := validateOrderItem(&it); err != nil {
			return fmt.Errorf("order %s: item[%d]: %w", o.ID, i, err)
		}
	}
	return nil
}

func validateOrderItem(it *OrderItem) error {
	if it.ProductName.EN == "" && it.ProductName.AR == "" {
		return fmt.Errorf("product name is required")
	}
	if it.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", it.Quantity)
	}
	if it.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if it.AppliedDiscountPercent.IsNegative() || it.AppliedDiscountPercent.GreaterThan(hundred) {
		return fmt.Errorf("applied_discount_percent must be within [0,100]")
	}
	return nil
}

// ValidateInvoice checks an invoice record before rendering.
func ValidateInvoice(v *Invoice) error {
	if v == nil {
		return fmt.Errorf("invoice is nil")
	}
	if v.ID == "" {
		return fmt.Errorf("invoice id is required")
	}
	switch v.Kind {
	case InvoicePurchase, InvoiceSales:
	default:
		return fmt.Errorf("invoice %s: invalid kind %q (must be purchase or sales)", v.ID, v.Kind)
	}
	if len(v.Lines) == 0 {
		return fmt.Errorf("invoice %s: at least one line is required", v.ID)
	}
	if v.Date.IsZero() {
		return fmt.Errorf("invoice %s: date is required", v.ID)
	}
	for i, l := range v.Lines {
		if l.Name.EN == "" && l.Name.AR == "" && l.ProductID == "" {
			return fmt.Errorf("invoice %s: line[%d]: name or product_id is required", v.ID, i)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("invoice %s: line[%d]: quantity must be positive, got %d", v.ID, i, l.Quantity)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("invoice %s: line[%d]: unit_price must not be negative", v.ID, i)
		}
	}
	return nil
}
