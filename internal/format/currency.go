// Package format provides display formatting for money and dates.
package format

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// MoneyPlaceholder is printed on documents for zero or missing amounts.
	MoneyPlaceholder = "0"
	// CurrencyPlaceholder is printed in listings for zero or missing amounts.
	CurrencyPlaceholder = "N/A"
)

// DefaultLocale matches the locale the documents are written for.
var DefaultLocale = language.Indonesian

// Money formats an amount for documents: zero decimals, locale grouping,
// currency symbol prefix. Zero, NaN and infinite amounts yield MoneyPlaceholder.
func Money(amount float64, code string) string {
	if !usable(amount) {
		return MoneyPlaceholder
	}
	return formatAmount(DefaultLocale, amount, code)
}

// Currency formats an amount for listings. Zero, NaN and infinite amounts
// yield CurrencyPlaceholder.
func Currency(amount float64, code string) string {
	if !usable(amount) {
		return CurrencyPlaceholder
	}
	return formatAmount(DefaultLocale, amount, code)
}

// MoneyIn formats an amount using an explicit locale. Zero amounts are
// printed rather than replaced by a placeholder.
func MoneyIn(tag language.Tag, amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return MoneyPlaceholder
	}
	return formatAmount(tag, amount, code)
}

// NormalizeCurrency upper-cases a code and falls back to IDR when the code
// is not a known ISO 4217 currency.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "IDR"
	}
	return unit.String()
}

// Symbol returns the locale's symbol for a currency code, such as "Rp" for
// IDR in Indonesian. Unknown codes are treated as IDR.
func Symbol(tag language.Tag, code string) string {
	code = NormalizeCurrency(code)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	symbol, _, _ := strings.Cut(message.NewPrinter(tag).Sprint(currency.Symbol(unit)), " ")
	if symbol == "" {
		return code
	}
	return symbol
}

func usable(amount float64) bool {
	return amount != 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func formatAmount(tag language.Tag, amount float64, code string) string {
	symbol := Symbol(tag, code)

	rounded := int64(math.Round(amount))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	p := message.NewPrinter(tag)
	return sign + symbol + " " + p.Sprintf("%d", rounded)
}
