package money

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

func TestFormatterFormat(t *testing.T) {
	tests := []struct {
		name   string
		f      Formatter
		amount string
		want   string
	}{
		{name: "zero value formatter", f: Formatter{Precision: 2}, amount: "12.5", want: "12.50"},
		{name: "prefix symbol with grouping", f: Formatter{Precision: 2, Symbol: "$"}, amount: "1234567.891", want: "$1,234,567.89"},
		{name: "suffix symbol european separators", f: Formatter{Precision: 2, Symbol: "€", SymbolAfter: true, DecimalSeparator: ",", GroupSeparator: " "}, amount: "1234.5", want: "1 234,50 €"},
		{name: "negative amount", f: Formatter{Precision: 2, Symbol: "$"}, amount: "-1000.005", want: "-$1,000.01"},
		{name: "zero precision", f: Formatter{Precision: 0, Symbol: "¥"}, amount: "1999.5", want: "¥2,000"},
		{name: "exactly three digits", f: Formatter{Precision: 2}, amount: "999.994", want: "999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f.Format(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Fatalf("Format(%s) = %q want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestRoundWithModes(t *testing.T) {
	tests := []struct {
		mode   enums.RoundingMode
		amount string
		want   string
	}{
		{mode: enums.RoundingModeHalfUp, amount: "2.345", want: "2.35"},
		{mode: enums.RoundingModeHalfEven, amount: "2.345", want: "2.34"},
		{mode: enums.RoundingModeUp, amount: "2.341", want: "2.35"},
		{mode: enums.RoundingModeDown, amount: "2.349", want: "2.34"},
		{mode: enums.RoundingModeCeil, amount: "-2.349", want: "-2.34"},
		{mode: enums.RoundingModeFloor, amount: "-2.341", want: "-2.35"},
		{mode: "", amount: "2.345", want: "2.35"},
	}

	for _, tt := range tests {
		got := RoundWith(decimal.RequireFromString(tt.amount), 2, tt.mode)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("mode %q: RoundWith(%s) = %s want %s", tt.mode, tt.amount, got, tt.want)
		}
	}
}

func TestFormatUsesSameRoundingAsRound(t *testing.T) {
	f := Formatter{Precision: 2, Rounding: enums.RoundingModeHalfEven}
	amount := decimal.RequireFromString("10.125")
	if got := f.Round(amount).String(); got != "10.12" {
		t.Fatalf("unexpected rounded value %s", got)
	}
	if got := f.Format(amount); got != "10.12" {
		t.Fatalf("unexpected formatted value %s", got)
	}
}
