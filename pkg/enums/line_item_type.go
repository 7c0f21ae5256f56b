package enums

import "fmt"

// LineItemType classifies an order line by how the product is composed.
type LineItemType string

const (
	LineItemTypePack                       LineItemType = "pack"
	LineItemTypeProductWithCombinations    LineItemType = "product_with_combinations"
	LineItemTypeProductWithoutCombinations LineItemType = "product_without_combinations"
)

var validLineItemTypes = []LineItemType{
	LineItemTypePack,
	LineItemTypeProductWithCombinations,
	LineItemTypeProductWithoutCombinations,
}

// String implements fmt.Stringer.
func (t LineItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known LineItemType.
func (t LineItemType) IsValid() bool {
	for _, candidate := range validLineItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsPack reports whether the line owns child pack items.
func (t LineItemType) IsPack() bool {
	return t == LineItemTypePack
}

// ParseLineItemType converts raw input into a LineItemType.
func ParseLineItemType(value string) (LineItemType, error) {
	for _, candidate := range validLineItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item type %q", value)
}
