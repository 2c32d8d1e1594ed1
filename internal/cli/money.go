package cli

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/satangdev/satang/internal/model"
)

// MoneyFormatter renders amounts according to the user's locale and
// currency settings.
type MoneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
	ok      bool
}

// NewMoneyFormatter builds a formatter from settings. Unknown locales fall
// back to English; unknown currency codes fall back to plain decimal
// rendering.
func NewMoneyFormatter(settings model.Settings) *MoneyFormatter {
	tag, err := language.Parse(settings.Locale)
	if err != nil {
		tag = language.English
	}

	unit, err := currency.ParseISO(settings.Currency)
	if err != nil {
		return &MoneyFormatter{printer: message.NewPrinter(tag)}
	}

	return &MoneyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		ok:      true,
	}
}

// Format renders an amount with currency symbol and locale digit grouping.
// The fallback path renders the decimal directly; only the currency path
// goes through float64, which the symbol formatter requires.
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	if !f.ok {
		return amount.StringFixed(2)
	}
	value, _ := amount.Float64()
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(value)))
}
