package models

import (
	"errors"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allocation is one approved budget line: the appropriation ceiling and the
// in-year allotment release ceiling for an organization, economic
// classification, funding source and natural account. Expenditure postings
// read it, never write it.
type Allocation struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	Organization           string          `gorm:"size:255;not null;uniqueIndex:idx_allocation_line" json:"organization"`
	EconomicClassification string          `gorm:"size:255;not null;uniqueIndex:idx_allocation_line" json:"economic_classification"`
	SourceOfFunding        string          `gorm:"size:255;not null;uniqueIndex:idx_allocation_line" json:"source_of_funding"`
	NaturalAccount         string          `gorm:"size:255;not null;uniqueIndex:idx_allocation_line" json:"natural_account"`
	Year                   int             `gorm:"index;uniqueIndex:idx_allocation_line" json:"year"`
	Appropriation          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"appropriation"`
	Allotment              decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"allotment"`
	UserId                 int             `gorm:"index" json:"user_id"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// FindAllocation looks up the unique allocation for a budget line.
func FindAllocation(db *gorm.DB, organization, classification, funding, account string) (*Allocation, error) {
	var allocation Allocation
	err := db.
		Where("organization = ? AND economic_classification = ? AND source_of_funding = ? AND natural_account = ?",
			organization, classification, funding, account).
		First(&allocation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("no allocation for this budget line")
	}
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// FindAllocationForUpdate takes a row lock on the allocation so concurrent
// expenditure postings against the same budget line serialize on it for the
// duration of the check-then-insert. Must be called inside a transaction.
func FindAllocationForUpdate(tx *gorm.DB, organization, classification, funding, account string) (*Allocation, error) {
	var allocation Allocation
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization = ? AND economic_classification = ? AND source_of_funding = ? AND natural_account = ?",
			organization, classification, funding, account).
		First(&allocation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("no allocation for this budget line")
	}
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func CreateAllocation(db *gorm.DB, allocation *Allocation) error {
	return utils.MapStorageError(db.Create(allocation).Error)
}

// BulkCreateAllocations inserts spreadsheet-imported rows in one statement.
func BulkCreateAllocations(db *gorm.DB, allocations []*Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return utils.MapStorageError(db.Create(&allocations).Error)
}

// ListNaturalAccounts returns the distinct natural accounts loaded for an
// organization's (classification, funding source) pair.
func ListNaturalAccounts(db *gorm.DB, organization, classification, funding string) ([]string, error) {
	var accounts []string
	err := db.Model(&Allocation{}).
		Where("organization = ? AND economic_classification = ? AND source_of_funding = ?",
			organization, classification, funding).
		Distinct().
		Order("natural_account ASC").
		Pluck("natural_account", &accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
