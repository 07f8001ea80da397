package models

// Role gates what a user may do: data entry creates records, reviewers and
// approvers move them through the lifecycle, admins manage users and see
// every organization.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleApprover  Role = "approver"
	RoleReviewer  Role = "reviewer"
	RoleDataEntry Role = "data_entry"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleApprover, RoleReviewer, RoleDataEntry:
		return true
	}
	return false
}

// RecordStatus is the shared review lifecycle. Transitions are monotonic:
// Pending -> Reviewed -> Approved, terminal once Approved.
type RecordStatus string

const (
	RecordStatusPending  RecordStatus = "Pending"
	RecordStatusReviewed RecordStatus = "Reviewed"
	RecordStatusApproved RecordStatus = "Approved"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// AllOrganizations is the sentinel an admin sends to mean "no filter".
const AllOrganizations = "ALL"

// AllFundingSources is the sentinel meaning no funding-source filter.
const AllFundingSources = "ALL"

// Funding sources in canonical presentation order.
const (
	FundingSourceGoG = "GoG"
	FundingSourceIGF = "IGF"
	FundingSourceDPF = "DPF"
)

// Economic classifications in canonical presentation order.
const (
	ClassificationCompensation      = "Compensation of Employees"
	ClassificationGoodsAndServices  = "Use of Goods and Services"
	ClassificationCapitalExpenditure = "Capital Expenditure"
)

// Currencies tracked on cash positions. Balances are never converted; each
// currency is its own column on the report.
const (
	CurrencyGHS = "GHS"
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
)

var CashCurrencies = []string{CurrencyGHS, CurrencyUSD, CurrencyGBP, CurrencyEUR}

func ValidCashCurrency(currency string) bool {
	for _, c := range CashCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}
