package enums

import "fmt"

// PriceDisplay selects whether formatted amounts include tax.
type PriceDisplay string

const (
	PriceDisplayTaxIncluded PriceDisplay = "tax_incl"
	PriceDisplayTaxExcluded PriceDisplay = "tax_excl"
)

var validPriceDisplays = []PriceDisplay{
	PriceDisplayTaxIncluded,
	PriceDisplayTaxExcluded,
}

// String implements fmt.Stringer.
func (p PriceDisplay) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceDisplay.
func (p PriceDisplay) IsValid() bool {
	for _, candidate := range validPriceDisplays {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceDisplay converts raw input into a PriceDisplay.
func ParsePriceDisplay(value string) (PriceDisplay, error) {
	for _, candidate := range validPriceDisplays {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price display %q", value)
}
