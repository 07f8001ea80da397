package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountStrict(t *testing.T) {
	d, err := ParseAmount("releases", "12345.67")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12345.67")))

	for name, raw := range map[string]string{
		"empty":    "",
		"words":    "ten thousand",
		"negative": "-5",
		"nan":      "NaN",
	} {
		_, err := ParseAmount("releases", raw)
		assert.Equal(t, ErrorKindValidation, KindOf(err), "input %q (%s) must be rejected", raw, name)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,234,567.89", FormatMoney(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "10.50", FormatMoney(decimal.RequireFromString("10.5")))
}
