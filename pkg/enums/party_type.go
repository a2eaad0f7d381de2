package enums

import "fmt"

// PartyType classifies a party as a customer or a supplier. The ledger keeps
// one signed balance either way; the type only labels the relationship.
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

var validPartyTypes = []PartyType{
	PartyTypeCustomer,
	PartyTypeSupplier,
}

// String implements fmt.Stringer.
func (t PartyType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PartyType.
func (t PartyType) IsValid() bool {
	for _, candidate := range validPartyTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePartyType converts raw input into a PartyType.
func ParsePartyType(value string) (PartyType, error) {
	for _, candidate := range validPartyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid party type %q", value)
}
