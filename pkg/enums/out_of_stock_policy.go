package enums

import "fmt"

// OutOfStockPolicy controls whether a product can be ordered without stock.
// OutOfStockPolicyDefault defers to the shop-wide setting.
type OutOfStockPolicy string

const (
	OutOfStockPolicyDeny    OutOfStockPolicy = "deny"
	OutOfStockPolicyAllow   OutOfStockPolicy = "allow"
	OutOfStockPolicyDefault OutOfStockPolicy = "default"
)

var validOutOfStockPolicies = []OutOfStockPolicy{
	OutOfStockPolicyDeny,
	OutOfStockPolicyAllow,
	OutOfStockPolicyDefault,
}

// String implements fmt.Stringer.
func (o OutOfStockPolicy) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OutOfStockPolicy.
func (o OutOfStockPolicy) IsValid() bool {
	for _, candidate := range validOutOfStockPolicies {
		if candidate == o {
			return true
		}
	}
	return false
}

// AllowsBackorder resolves the policy against the shop default.
func (o OutOfStockPolicy) AllowsBackorder(shopDefault bool) bool {
	switch o {
	case OutOfStockPolicyAllow:
		return true
	case OutOfStockPolicyDeny:
		return false
	default:
		return shopDefault
	}
}

// ParseOutOfStockPolicy converts raw input into an OutOfStockPolicy.
func ParseOutOfStockPolicy(value string) (OutOfStockPolicy, error) {
	for _, candidate := range validOutOfStockPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid out of stock policy %q", value)
}
