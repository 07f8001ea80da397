package models

import (
	"errors"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expenditure is one posted release/expenditure against a budget line. The
// appropriation, allotment and allotment balance are snapshots computed
// server-side at posting time; caller-supplied values are never trusted.
type Expenditure struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	Activity               string          `gorm:"size:255;not null;uniqueIndex:idx_activity_date" json:"activity"`
	Date                   time.Time       `gorm:"type:date;not null;uniqueIndex:idx_activity_date" json:"date"`
	EconomicClassification string          `gorm:"size:255;not null;index" json:"economic_classification"`
	SourceOfFunding        string          `gorm:"size:255;not null;index" json:"source_of_funding"`
	NaturalAccount         string          `gorm:"size:255;not null;index" json:"natural_account"`
	Description            string          `gorm:"size:255;not null" json:"description"`
	Appropriation          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"appropriation"`
	Allotment              decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"allotment"`
	AllotmentBalance       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"allotment_balance"`
	Releases               decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"releases"`
	ActualExpenditure      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"actual_expenditure"`
	ActualPayment          decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"actual_payment"`
	Status                 RecordStatus    `gorm:"type:enum('Pending','Reviewed','Approved');default:'Pending'" json:"status"`
	ReviewedBy             string          `gorm:"size:255" json:"reviewed_by"`
	ReviewedAt             *time.Time      `json:"reviewed_at"`
	ReviewComment          string          `gorm:"size:500" json:"review_comment"`
	ApprovedBy             string          `gorm:"size:255" json:"approved_by"`
	ApprovedAt             *time.Time      `json:"approved_at"`
	UserId                 int             `gorm:"index;not null" json:"user_id"`
	Organization           string          `gorm:"size:255;not null;index" json:"organization"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	User                   *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func GetExpenditureById(db *gorm.DB, id int) (*Expenditure, error) {
	var expenditure Expenditure
	err := db.First(&expenditure, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("expenditure record not found")
	}
	if err != nil {
		return nil, err
	}
	return &expenditure, nil
}

// ExpenditureExists reports whether a record for the (activity, date) pair
// is already posted.
func ExpenditureExists(tx *gorm.DB, activity string, date time.Time) (bool, error) {
	var count int64
	err := tx.Model(&Expenditure{}).
		Where("activity = ? AND date = ?", activity, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumPreviousReleases totals cash already released against a budget line.
func SumPreviousReleases(tx *gorm.DB, organization, classification, funding, account string) (decimal.Decimal, error) {
	return sumExpenditureColumn(tx, "releases", organization, classification, funding, account)
}

// SumPreviousActualExpenditure totals actual spend already posted against a
// budget line.
func SumPreviousActualExpenditure(tx *gorm.DB, organization, classification, funding, account string) (decimal.Decimal, error) {
	return sumExpenditureColumn(tx, "actual_expenditure", organization, classification, funding, account)
}

func sumExpenditureColumn(tx *gorm.DB, column, organization, classification, funding, account string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&Expenditure{}).
		Select("SUM("+column+")").
		Where("organization = ? AND economic_classification = ? AND source_of_funding = ? AND natural_account = ?",
			organization, classification, funding, account).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// ListExpenditures returns records newest-first, restricted to an
// organization when scoped and to the creator for data-entry users.
func ListExpenditures(db *gorm.DB, organization string, creatorId int) ([]*Expenditure, error) {
	query := db.Preload("User").Order("created_at DESC")
	if organization != "" {
		query = query.Where("organization = ?", organization)
	}
	if creatorId > 0 {
		query = query.Where("user_id = ?", creatorId)
	}
	var expenditures []*Expenditure
	if err := query.Find(&expenditures).Error; err != nil {
		return nil, err
	}
	return expenditures, nil
}

// ListExpendituresForQuarter is the detailed report feed: every record in
// the quarter window, date-ascending.
func ListExpendituresForQuarter(db *gorm.DB, start, end time.Time, organization string) ([]*Expenditure, error) {
	query := db.Where("date BETWEEN ? AND ?", start, end).Order("date ASC")
	if organization != "" {
		query = query.Where("organization = ?", organization)
	}
	var expenditures []*Expenditure
	if err := query.Find(&expenditures).Error; err != nil {
		return nil, err
	}
	return expenditures, nil
}

func (e *Expenditure) GetStatus() RecordStatus { return e.Status }

func (e *Expenditure) MarkReviewed(by string, comment string, at time.Time) {
	e.Status = RecordStatusReviewed
	e.ReviewedBy = by
	e.ReviewComment = comment
	e.ReviewedAt = &at
}

func (e *Expenditure) MarkApproved(by string, at time.Time) {
	e.Status = RecordStatusApproved
	e.ApprovedBy = by
	e.ApprovedAt = &at
}
