package config

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Retention rates are a policy table maintained by the consolidated fund
// office, keyed by organization. Values are percentages of actual collection
// retained by the organization; the remainder is paid to the consolidated
// fund.
var defaultRetentionRates = map[string]decimal.Decimal{
	"MOF":  decimal.NewFromInt(5),
	"DADS": decimal.NewFromInt(5),
	"GRA":  decimal.NewFromFloat(7.5),
	"NCA":  decimal.NewFromInt(10),
}

// GetRetentionRate returns the retention percentage for an organization.
// Env override: RETENTION_RATES="MOF=5,GRA=7.5" takes precedence over the
// built-in table.
func GetRetentionRate(organization string) (decimal.Decimal, bool) {
	if v := os.Getenv("RETENTION_RATES"); v != "" {
		for _, pair := range strings.Split(v, ",") {
			parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], organization) {
				continue
			}
			rate, err := decimal.NewFromString(parts[1])
			if err == nil && !rate.IsNegative() {
				return rate, true
			}
		}
	}
	rate, ok := defaultRetentionRates[organization]
	return rate, ok
}
