package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

const (
	defaultDecimalSeparator = "."
	defaultGroupSeparator   = ","
)

// Formatter renders exact amounts as display strings for a single currency.
// The zero value formats whole units with half-up rounding and no symbol.
type Formatter struct {
	Precision        int32
	Rounding         enums.RoundingMode
	Symbol           string
	SymbolAfter      bool
	DecimalSeparator string
	GroupSeparator   string
}

// Round applies the configured rounding mode at the configured precision.
func (f Formatter) Round(amount decimal.Decimal) decimal.Decimal {
	return RoundWith(amount, f.Precision, f.Rounding)
}

// Format rounds amount and renders it with separators and the currency symbol.
func (f Formatter) Format(amount decimal.Decimal) string {
	rounded := f.Round(amount)
	digits := rounded.Abs().StringFixed(f.Precision)

	intPart, fracPart, _ := strings.Cut(digits, ".")
	decSep := f.DecimalSeparator
	if decSep == "" {
		decSep = defaultDecimalSeparator
	}
	groupSep := f.GroupSeparator
	if groupSep == "" {
		groupSep = defaultGroupSeparator
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	if f.Symbol != "" && !f.SymbolAfter {
		b.WriteString(f.Symbol)
	}
	b.WriteString(group(intPart, groupSep))
	if fracPart != "" {
		b.WriteString(decSep)
		b.WriteString(fracPart)
	}
	if f.Symbol != "" && f.SymbolAfter {
		b.WriteString(" ")
		b.WriteString(f.Symbol)
	}
	return b.String()
}

// RoundWith rounds amount to places using mode. Unknown modes round half up.
func RoundWith(amount decimal.Decimal, places int32, mode enums.RoundingMode) decimal.Decimal {
	switch mode {
	case enums.RoundingModeHalfEven:
		return amount.RoundBank(places)
	case enums.RoundingModeUp:
		return amount.RoundUp(places)
	case enums.RoundingModeDown:
		return amount.RoundDown(places)
	case enums.RoundingModeCeil:
		return amount.RoundCeil(places)
	case enums.RoundingModeFloor:
		return amount.RoundFloor(places)
	default:
		return amount.Round(places)
	}
}

func group(intPart, sep string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}
