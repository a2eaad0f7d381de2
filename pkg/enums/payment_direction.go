package enums

import "fmt"

// PaymentDirection marks money received ("in") or paid out ("out").
type PaymentDirection string

const (
	PaymentDirectionIn  PaymentDirection = "in"
	PaymentDirectionOut PaymentDirection = "out"
)

var validPaymentDirections = []PaymentDirection{
	PaymentDirectionIn,
	PaymentDirectionOut,
}

// String implements fmt.Stringer.
func (d PaymentDirection) String() string {
	return string(d)
}

// IsValid reports whether the value is a known PaymentDirection.
func (d PaymentDirection) IsValid() bool {
	for _, candidate := range validPaymentDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// IncreasesBalance reports whether a payment in this direction adds to the
// party's running balance. "in" increases it, mirroring how a sale invoice
// does; see the ledger package for the full convention.
func (d PaymentDirection) IncreasesBalance() bool {
	return d == PaymentDirectionIn
}

// ParsePaymentDirection converts raw input into a PaymentDirection.
func ParsePaymentDirection(value string) (PaymentDirection, error) {
	for _, candidate := range validPaymentDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment direction %q", value)
}
