package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/satangdev/satang/internal/model"
)

func TestMoneyFormatterKnownCurrency(t *testing.T) {
	f := NewMoneyFormatter(model.Settings{Currency: "USD", Locale: "en-US"})

	got := f.Format(decimal.RequireFromString("1234.50"))
	assert.Contains(t, got, "1,234.50", "en-US groups thousands with commas")
	assert.Contains(t, got, "$")
}

func TestMoneyFormatterUnknownCurrencyFallsBack(t *testing.T) {
	f := NewMoneyFormatter(model.Settings{Currency: "???", Locale: "en-US"})

	got := f.Format(decimal.RequireFromString("12.5"))
	assert.Equal(t, "12.50", got, "plain two-decimal rendering without a currency")
}

func TestMoneyFormatterFallbackIsExact(t *testing.T) {
	f := NewMoneyFormatter(model.Settings{Currency: "???", Locale: "en-US"})

	// An amount float64 cannot hold exactly; the fallback must not lose it.
	got := f.Format(decimal.RequireFromString("9999999999999999.99"))
	assert.Equal(t, "9999999999999999.99", got)
}

func TestMoneyFormatterUnknownLocaleFallsBack(t *testing.T) {
	f := NewMoneyFormatter(model.Settings{Currency: "USD", Locale: "not-a-locale"})

	got := f.Format(decimal.NewFromInt(5))
	assert.NotEmpty(t, got)
}
