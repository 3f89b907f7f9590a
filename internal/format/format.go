// Package format renders money and counters for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the naira sign used by the showcase.
const DefaultSymbol = "₦"

// Money formats whole currency amounts with a fixed symbol and the digit
// grouping of a locale.
type Money struct {
	symbol  string
	printer *message.Printer
}

// NewMoney builds a formatter. An unknown locale tag falls back to English.
func NewMoney(symbol, locale string) Money {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return Money{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Currency renders n as symbol plus grouped digits, e.g. ₦450,000,000.
func (m Money) Currency(n int64) string {
	p := m.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	if n < 0 {
		return "-" + m.symbol + p.Sprintf("%d", -n)
	}
	return m.symbol + p.Sprintf("%d", n)
}

// Currency formats with the default symbol and English grouping.
func Currency(n int64) string {
	return NewMoney(DefaultSymbol, "en").Currency(n)
}

// CompactViews renders a view counter in thousands, e.g. 5710 -> "6K+".
func CompactViews(n int) string {
	return fmt.Sprintf("%dK+", int(math.Round(float64(n)/1000)))
}

// Rating renders a 0-5 score with one decimal.
func Rating(r float64) string {
	return fmt.Sprintf("★ %.1f", r)
}
