package workflow

import (
	"strings"
	"time"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExpenditureInput is a posting request after boundary parsing. Amounts are
// already strict decimals; snapshots (appropriation, allotment, balance) are
// computed here and never taken from the caller.
type ExpenditureInput struct {
	Activity               string
	Date                   time.Time
	EconomicClassification string
	SourceOfFunding        string
	NaturalAccount         string
	Description            string
	Releases               decimal.Decimal
	ActualExpenditure      decimal.Decimal
	ActualPayment          decimal.Decimal
}

// BudgetLineStore is the slice of storage the posting guard needs. The gorm
// implementation runs on the posting transaction; tests substitute fakes.
type BudgetLineStore interface {
	ExpenditureExists(activity string, date time.Time) (bool, error)
	LockAllocation(organization, classification, funding, account string) (*models.Allocation, error)
	SumPreviousReleases(organization, classification, funding, account string) (decimal.Decimal, error)
	SumPreviousActualExpenditure(organization, classification, funding, account string) (decimal.Decimal, error)
	InsertExpenditure(expenditure *models.Expenditure) error
}

type gormBudgetLineStore struct {
	tx *gorm.DB
}

func (s gormBudgetLineStore) ExpenditureExists(activity string, date time.Time) (bool, error) {
	return models.ExpenditureExists(s.tx, activity, date)
}

func (s gormBudgetLineStore) LockAllocation(organization, classification, funding, account string) (*models.Allocation, error) {
	return models.FindAllocationForUpdate(s.tx, organization, classification, funding, account)
}

func (s gormBudgetLineStore) SumPreviousReleases(organization, classification, funding, account string) (decimal.Decimal, error) {
	return models.SumPreviousReleases(s.tx, organization, classification, funding, account)
}

func (s gormBudgetLineStore) SumPreviousActualExpenditure(organization, classification, funding, account string) (decimal.Decimal, error) {
	return models.SumPreviousActualExpenditure(s.tx, organization, classification, funding, account)
}

func (s gormBudgetLineStore) InsertExpenditure(expenditure *models.Expenditure) error {
	return utils.MapStorageError(s.tx.Create(expenditure).Error)
}

// ValidateAndRecordExpenditure runs the whole posting guard inside one
// transaction. The allocation row lock serializes concurrent postings
// against the same budget line, so two requests cannot both pass the balance
// check and together exceed the allotment. Any failure rolls the whole
// transaction back; there is never a partial row.
func ValidateAndRecordExpenditure(db *gorm.DB, logger *logrus.Logger, creator *models.User, input ExpenditureInput) (*models.Expenditure, error) {
	var expenditure *models.Expenditure
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		expenditure, err = PostExpenditure(gormBudgetLineStore{tx: tx}, creator, input)
		return err
	})
	if err != nil {
		if utils.KindOf(err) == "" {
			config.LogError(logger, "expenditureWorkflow.go", "ValidateAndRecordExpenditure", "Transaction", input.Activity, err)
		}
		return nil, err
	}
	return expenditure, nil
}

// PostExpenditure executes the ordered posting checks against a store.
//
//  1. required identifying fields
//  2. duplicate (activity, date)
//  3. allocation lookup (locked)
//  4. snapshot appropriation/allotment from the allocation
//  5. policy branch -> computed allotment balance
//  6. insert
func PostExpenditure(store BudgetLineStore, creator *models.User, input ExpenditureInput) (*models.Expenditure, error) {
	if err := validateRequiredFields(input); err != nil {
		return nil, err
	}

	exists, err := store.ExpenditureExists(input.Activity, input.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewConflictError("record already exists for this activity and date")
	}

	allocation, err := store.LockAllocation(creator.Organization,
		input.EconomicClassification, input.SourceOfFunding, input.NaturalAccount)
	if err != nil {
		return nil, err
	}

	balance, err := computeAllotmentBalance(store, allocation, creator.Organization, input)
	if err != nil {
		return nil, err
	}

	expenditure := &models.Expenditure{
		Activity:               input.Activity,
		Date:                   input.Date,
		EconomicClassification: input.EconomicClassification,
		SourceOfFunding:        input.SourceOfFunding,
		NaturalAccount:         input.NaturalAccount,
		Description:            input.Description,
		Appropriation:          allocation.Appropriation,
		Allotment:              allocation.Allotment,
		AllotmentBalance:       balance,
		Releases:               input.Releases,
		ActualExpenditure:      input.ActualExpenditure,
		ActualPayment:          input.ActualPayment,
		Status:                 models.RecordStatusPending,
		UserId:                 creator.ID,
		Organization:           creator.Organization,
	}
	if err := store.InsertExpenditure(expenditure); err != nil {
		return nil, err
	}
	return expenditure, nil
}

func validateRequiredFields(input ExpenditureInput) error {
	required := []struct {
		key   string
		value string
	}{
		{"activity", input.Activity},
		{"economicClassification", input.EconomicClassification},
		{"sourceOfFunding", input.SourceOfFunding},
		{"naturalAccount", input.NaturalAccount},
		{"description", input.Description},
	}
	if input.Date.IsZero() {
		return utils.NewValidationError("date is required")
	}
	for _, field := range required {
		if field.value == "" {
			return utils.NewValidationError(field.key + " is required")
		}
	}
	return nil
}

// computeAllotmentBalance applies the consumption policy for the budget
// line:
//
//   - allotment of zero: only releases <= appropriation is enforced and the
//     balance is pinned to zero;
//   - goods and services funded domestically: the ceiling is consumed by
//     cumulative actual expenditure;
//   - everything else: the ceiling is consumed by cumulative releases.
func computeAllotmentBalance(store BudgetLineStore, allocation *models.Allocation, organization string, input ExpenditureInput) (decimal.Decimal, error) {
	if allocation.Allotment.IsZero() {
		if input.Releases.GreaterThan(allocation.Appropriation) {
			return decimal.Zero, utils.NewBusinessRuleError("releases exceed appropriation")
		}
		return decimal.Zero, nil
	}

	if TracksActualSpend(input.EconomicClassification, input.SourceOfFunding) {
		previous, err := store.SumPreviousActualExpenditure(organization,
			input.EconomicClassification, input.SourceOfFunding, input.NaturalAccount)
		if err != nil {
			return decimal.Zero, err
		}
		balance := allocation.Allotment.Sub(previous.Add(input.ActualExpenditure))
		if balance.IsNegative() {
			return decimal.Zero, utils.NewBusinessRuleError("actual expenditure exceeds allotment")
		}
		return balance, nil
	}

	previous, err := store.SumPreviousReleases(organization,
		input.EconomicClassification, input.SourceOfFunding, input.NaturalAccount)
	if err != nil {
		return decimal.Zero, err
	}
	balance := allocation.Allotment.Sub(previous.Add(input.Releases))
	if balance.IsNegative() {
		return decimal.Zero, utils.NewBusinessRuleError("releases exceed allotment balance")
	}
	return balance, nil
}

// TracksActualSpend reports whether a budget line's allotment is consumed by
// actual expenditure rather than cash releases. Goods and services funded
// from domestic revenue (GoG) is the one line tracked by actual spend.
func TracksActualSpend(classification string, funding string) bool {
	return classification == models.ClassificationGoodsAndServices &&
		strings.EqualFold(funding, models.FundingSourceGoG)
}
