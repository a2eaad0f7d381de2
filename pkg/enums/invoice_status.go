package enums

// InvoiceStatus is derived from the paid amount, never set directly by
// callers.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// String implements fmt.Stringer.
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InvoiceStatus.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	default:
		return false
	}
}

// DeriveInvoiceStatus computes the status from grand total and paid amount.
func DeriveInvoiceStatus(grandTotal, paidAmount float64) InvoiceStatus {
	switch {
	case paidAmount <= 0:
		return InvoiceStatusUnpaid
	case grandTotal-paidAmount <= 0:
		return InvoiceStatusPaid
	default:
		return InvoiceStatusPartial
	}
}
