package reports

import (
	"time"

	"bitbucket.org/gfmis/budget_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashPositionRow is one account with a column per tracked currency.
// Balances stay in their own currency; no conversion happens anywhere in
// this report.
type CashPositionRow struct {
	AccountName string          `json:"account_name"`
	GHS         decimal.Decimal `json:"GHS"`
	USD         decimal.Decimal `json:"USD"`
	GBP         decimal.Decimal `json:"GBP"`
	EUR         decimal.Decimal `json:"EUR"`
}

// CashPositionTotals is the grand-total footer, per currency.
type CashPositionTotals struct {
	GHS decimal.Decimal `json:"GHS"`
	USD decimal.Decimal `json:"USD"`
	GBP decimal.Decimal `json:"GBP"`
	EUR decimal.Decimal `json:"EUR"`
}

func (r *CashPositionRow) add(currency string, balance decimal.Decimal) {
	switch currency {
	case models.CurrencyGHS:
		r.GHS = r.GHS.Add(balance)
	case models.CurrencyUSD:
		r.USD = r.USD.Add(balance)
	case models.CurrencyGBP:
		r.GBP = r.GBP.Add(balance)
	case models.CurrencyEUR:
		r.EUR = r.EUR.Add(balance)
	}
}

// GroupCashPositions folds raw per-currency balances into one row per
// account. Multiple snapshot rows for the same account/currency sum, even
// though the storage uniqueness constraint normally prevents duplicates.
func GroupCashPositions(rows []*models.CashBalance) []*CashPositionRow {
	index := map[string]*CashPositionRow{}
	var grouped []*CashPositionRow

	for _, raw := range rows {
		row, ok := index[raw.AccountName]
		if !ok {
			row = &CashPositionRow{AccountName: raw.AccountName}
			index[raw.AccountName] = row
			grouped = append(grouped, row)
		}
		row.add(raw.Currency, raw.Balance)
	}
	return grouped
}

// TotalCashPositions sums every currency column across all account rows.
func TotalCashPositions(grouped []*CashPositionRow) CashPositionTotals {
	var totals CashPositionTotals
	for _, row := range grouped {
		totals.GHS = totals.GHS.Add(row.GHS)
		totals.USD = totals.USD.Add(row.USD)
		totals.GBP = totals.GBP.Add(row.GBP)
		totals.EUR = totals.EUR.Add(row.EUR)
	}
	return totals
}

// BuildCashPositionReport loads, groups and totals the balances for an
// as-at date under the resolved organization scope.
func BuildCashPositionReport(db *gorm.DB, asAtDate time.Time, scope models.OrgScope) ([]*CashPositionRow, CashPositionTotals, error) {
	balances, err := models.ListCashBalances(db, asAtDate, scope.Filter())
	if err != nil {
		return nil, CashPositionTotals{}, err
	}
	grouped := GroupCashPositions(balances)
	return grouped, TotalCashPositions(grouped), nil
}
