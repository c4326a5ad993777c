// ABOUTME: Currency formatting for deal values
// ABOUTME: Rounds to whole units and groups digits per locale
package models

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
}

// Money formats amounts in one currency and locale.
type Money struct {
	code    string
	symbol  string
	printer *message.Printer
}

// NewMoney builds a formatter for an ISO 4217 code and a BCP 47 locale tag.
func NewMoney(code, locale string) (*Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}

	return &Money{
		code:    unit.String(),
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// USD is the default en-US dollar formatter.
func USD() *Money {
	m, _ := NewMoney("USD", "en-US")
	return m
}

func (m *Money) Code() string {
	return m.code
}

// Format rounds amount half away from zero and prints it with no decimals,
// e.g. 45000 -> "$45,000".
func (m *Money) Format(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-" + m.symbol + m.printer.Sprintf("%d", -rounded)
	}
	return m.symbol + m.printer.Sprintf("%d", rounded)
}
