package orderdoc

import (
	"encoding/json"
	"fmt"
)

// ParseOrder decodes and validates an order record from JSON.
func ParseOrder(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	if err := ValidateOrder(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ParseInvoice decodes and validates an invoice record from JSON.
func ParseInvoice(data []byte) (*Invoice, error) {
	var v Invoice
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse invoice: %w", err)
	}
	if err := ValidateInvoice(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
