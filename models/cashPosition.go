package models

import (
	"errors"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashPosition is a per-currency balance snapshot of one bank account at an
// as-at date. Balances stay in their own currency; reporting never converts.
type CashPosition struct {
	ID            int             `gorm:"primary_key" json:"id"`
	UserId        int             `gorm:"index;not null" json:"user_id"`
	Organization  string          `gorm:"size:255;not null;uniqueIndex:idx_cash_snapshot" json:"organization"`
	AsAtDate      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_cash_snapshot" json:"as_at_date"`
	AccountName   string          `gorm:"size:255;not null;uniqueIndex:idx_cash_snapshot" json:"account_name"`
	Currency      string          `gorm:"size:3;not null;uniqueIndex:idx_cash_snapshot" json:"currency"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance"`
	Status        RecordStatus    `gorm:"type:enum('Pending','Reviewed','Approved');default:'Pending'" json:"status"`
	ReviewedBy    string          `gorm:"size:255" json:"reviewed_by"`
	ReviewedAt    *time.Time      `json:"reviewed_at"`
	ReviewComment string          `gorm:"size:500" json:"review_comment"`
	ApprovedBy    string          `gorm:"size:255" json:"approved_by"`
	ApprovedAt    *time.Time      `json:"approved_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	User          *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (c *CashPosition) GetStatus() RecordStatus { return c.Status }

func (c *CashPosition) MarkReviewed(by string, comment string, at time.Time) {
	c.Status = RecordStatusReviewed
	c.ReviewedBy = by
	c.ReviewComment = comment
	c.ReviewedAt = &at
}

func (c *CashPosition) MarkApproved(by string, at time.Time) {
	c.Status = RecordStatusApproved
	c.ApprovedBy = by
	c.ApprovedAt = &at
}

func GetCashPositionById(db *gorm.DB, id int) (*CashPosition, error) {
	var record CashPosition
	err := db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("cash position record not found")
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func ListCashPositions(db *gorm.DB, organization string, creatorId int) ([]*CashPosition, error) {
	query := db.Preload("User").Order("created_at DESC")
	if organization != "" {
		query = query.Where("organization = ?", organization)
	}
	if creatorId > 0 {
		query = query.Where("user_id = ?", creatorId)
	}
	var records []*CashPosition
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListCashBalances feeds the cash-position report: raw account/currency
// balances at an as-at date.
func ListCashBalances(db *gorm.DB, asAtDate time.Time, organization string) ([]*CashBalance, error) {
	query := db.Model(&CashPosition{}).
		Select("account_name", "currency", "balance").
		Where("as_at_date = ?", asAtDate).
		Order("account_name ASC")
	if organization != "" {
		query = query.Where("organization = ?", organization)
	}
	var rows []*CashBalance
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CashBalance is the raw grouper input.
type CashBalance struct {
	AccountName string          `json:"account_name"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
}
