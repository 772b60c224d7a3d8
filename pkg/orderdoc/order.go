// Package orderdoc defines the order and invoice records consumed by the
// rendering engine, along with parsing, validation, and money arithmetic.
package orderdoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType is how the customer receives the order.
type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderDelivery OrderType = "delivery"
	OrderTakeaway OrderType = "takeaway"
)

// PaymentMethod drives the status chip on rendered receipts.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
	PaymentUnpaid         PaymentMethod = "unpaid"
)

// LocalizedText carries both display languages for a name.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar,omitempty"`
}

// In returns the text for the given language, falling back to English.
func (t LocalizedText) In(lang Language) string {
	if lang == LanguageAR && t.AR != "" {
		return t.AR
	}
	return t.EN
}

// Customer is the contact block printed on a receipt.
type Customer struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`
}

// OrderItem is one line of an order. Price is the unit price before any
// discount; AppliedDiscountPercent (0-100) reduces it per unit.
type OrderItem struct {
	ProductName            LocalizedText     `json:"product_name"`
	Quantity               int               `json:"quantity"`
	Price                  decimal.Decimal   `json:"price"`
	AppliedDiscountPercent decimal.Decimal   `json:"applied_discount_percent,omitempty"`
	Options                map[string]string `json:"options,omitempty"`
}

// Order is a customer order as supplied by the ordering backend. The
// renderer treats it as read-only.
type Order struct {
	ID            string          `json:"id"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	OrderType     OrderType       `json:"order_type"`
	Customer      Customer        `json:"customer"`
	Notes         string          `json:"notes,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	PaymentDetail string          `json:"payment_detail,omitempty"`
}

// HasDiscount reports whether the item carries a line-level discount.
func (i OrderItem) HasDiscount() bool {
	return i.AppliedDiscountPercent.IsPositive()
}

// RestaurantInfo is the branding block drawn at the top of every image.
type RestaurantInfo struct {
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar,omitempty"`
	Logo   string `json:"logo,omitempty"` // URL or local path; empty means no logo
}

// Name returns the restaurant display name for the given language.
func (r RestaurantInfo) Name(lang Language) string {
	if lang == LanguageAR && r.NameAR != "" {
		return r.NameAR
	}
	return r.NameEN
}
