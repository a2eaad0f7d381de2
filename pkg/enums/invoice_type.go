package enums

import "fmt"

// InvoiceType distinguishes outgoing sales from incoming purchases. The type
// decides the sign applied to stock and ledger deltas.
type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "sale"
	InvoiceTypePurchase InvoiceType = "purchase"
)

var validInvoiceTypes = []InvoiceType{
	InvoiceTypeSale,
	InvoiceTypePurchase,
}

// String implements fmt.Stringer.
func (t InvoiceType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known InvoiceType.
func (t InvoiceType) IsValid() bool {
	for _, candidate := range validInvoiceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// StockSign returns the multiplier applied to line quantities when this
// invoice type adjusts stock: sales consume, purchases and returns restock.
func (t InvoiceType) StockSign() float64 {
	if t == InvoiceTypeSale {
		return -1
	}
	return 1
}

// ParseInvoiceType converts raw input into an InvoiceType.
func ParseInvoiceType(value string) (InvoiceType, error) {
	for _, candidate := range validInvoiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid invoice type %q", value)
}
