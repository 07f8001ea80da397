package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetentionRateDefaults(t *testing.T) {
	rate, ok := GetRetentionRate("GRA")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("7.5")))

	_, ok = GetRetentionRate("UNKNOWN-ORG")
	assert.False(t, ok)
}

func TestGetRetentionRateEnvOverride(t *testing.T) {
	t.Setenv("RETENTION_RATES", "MOF=12.5, gra=9")

	rate, ok := GetRetentionRate("MOF")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("12.5")))

	// Organization matching is case-insensitive.
	rate, ok = GetRetentionRate("GRA")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(9)))
}

func TestGetRetentionRateIgnoresBadOverride(t *testing.T) {
	t.Setenv("RETENTION_RATES", "NCA=not-a-number,MOF=-3")

	// Malformed and negative overrides fall back to the built-in table.
	rate, ok := GetRetentionRate("NCA")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(10)))

	rate, ok = GetRetentionRate("MOF")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(5)))
}
