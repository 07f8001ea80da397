package models

import (
	"errors"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Revenue is one collection record. Retention and payment are derived from
// the actual collection and the organization's retention rate at entry time;
// the rate is copied onto the record so later rate changes do not rewrite
// history.
type Revenue struct {
	ID                int             `gorm:"primary_key" json:"id"`
	UserId            int             `gorm:"index;not null" json:"user_id"`
	Organization      string          `gorm:"size:255;not null;uniqueIndex:idx_revenue_entry" json:"organization"`
	Date              time.Time       `gorm:"type:date;not null;uniqueIndex:idx_revenue_entry" json:"date"`
	RevenueCategory   string          `gorm:"size:255;not null;uniqueIndex:idx_revenue_entry" json:"revenue_category"`
	RetentionRate     decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"retention_rate"`
	ActualCollection  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"actual_collection"`
	RetentionAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"retention_amount"`
	PaymentAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"payment_amount"`
	BudgetProjections decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"budget_projections"`
	Remarks           string          `gorm:"size:500" json:"remarks"`
	Status            RecordStatus    `gorm:"type:enum('Pending','Reviewed','Approved');default:'Pending'" json:"status"`
	ReviewedBy        string          `gorm:"size:255" json:"reviewed_by"`
	ReviewedAt        *time.Time      `json:"reviewed_at"`
	ReviewComment     string          `gorm:"size:500" json:"review_comment"`
	ApprovedBy        string          `gorm:"size:255" json:"approved_by"`
	ApprovedAt        *time.Time      `json:"approved_at"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	User              *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (r *Revenue) GetStatus() RecordStatus { return r.Status }

func (r *Revenue) MarkReviewed(by string, comment string, at time.Time) {
	r.Status = RecordStatusReviewed
	r.ReviewedBy = by
	r.ReviewComment = comment
	r.ReviewedAt = &at
}

func (r *Revenue) MarkApproved(by string, at time.Time) {
	r.Status = RecordStatusApproved
	r.ApprovedBy = by
	r.ApprovedAt = &at
}

// ComputeRetention splits an actual collection into the retained amount and
// the payment to the consolidated fund: retention = rate% x collection,
// payment = collection - retention, both rounded to 2 decimals.
func ComputeRetention(actualCollection decimal.Decimal, retentionRate decimal.Decimal) (retention decimal.Decimal, payment decimal.Decimal, err error) {
	if actualCollection.IsNegative() {
		return decimal.Zero, decimal.Zero, utils.NewValidationError("actual collection must be a valid non-negative number")
	}
	if retentionRate.IsNegative() {
		return decimal.Zero, decimal.Zero, utils.NewValidationError("invalid retention rate for this organization")
	}
	retention = retentionRate.Div(decimal.NewFromInt(100)).Mul(actualCollection).Round(2)
	payment = actualCollection.Sub(retention).Round(2)
	return retention, payment, nil
}

// ApplyCollection recomputes the derived amounts from the record's own rate.
func (r *Revenue) ApplyCollection(actualCollection decimal.Decimal) error {
	retention, payment, err := ComputeRetention(actualCollection, r.RetentionRate)
	if err != nil {
		return err
	}
	r.ActualCollection = actualCollection
	r.RetentionAmount = retention
	r.PaymentAmount = payment
	return nil
}

func GetRevenueById(db *gorm.DB, id int) (*Revenue, error) {
	var revenue Revenue
	err := db.First(&revenue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("revenue record not found")
	}
	if err != nil {
		return nil, err
	}
	return &revenue, nil
}

// RevenueExists reports whether a record already covers this organization,
// date and category.
func RevenueExists(db *gorm.DB, organization string, date time.Time, category string) (bool, error) {
	var count int64
	err := db.Model(&Revenue{}).
		Where("organization = ? AND date = ? AND revenue_category = ?", organization, date, category).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func ListRevenues(db *gorm.DB, organization string, creatorId int) ([]*Revenue, error) {
	query := db.Preload("User").Order("created_at DESC")
	if organization != "" {
		query = query.Where("organization = ?", organization)
	}
	if creatorId > 0 {
		query = query.Where("user_id = ?", creatorId)
	}
	var revenues []*Revenue
	if err := query.Find(&revenues).Error; err != nil {
		return nil, err
	}
	return revenues, nil
}
