package workflow

import (
	"bitbucket.org/gfmis/budget_backend/models"
	"bitbucket.org/gfmis/budget_backend/utils"
	"gorm.io/gorm"
)

// ReviewAndSave applies the Pending -> Reviewed transition and persists the
// stamps. The status check and the update share one transaction so two
// reviewers cannot both win.
func ReviewAndSave(db *gorm.DB, record models.Reviewable, reviewer string, comment string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := models.ReviewRecord(record, reviewer, comment); err != nil {
			return err
		}
		return utils.MapStorageError(tx.Save(record).Error)
	})
}

// ApproveAndSave applies the Reviewed -> Approved transition, which is
// terminal.
func ApproveAndSave(db *gorm.DB, record models.Reviewable, approver string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := models.ApproveRecord(record, approver); err != nil {
			return err
		}
		return utils.MapStorageError(tx.Save(record).Error)
	})
}

// DeleteIfMutable removes a record only while it is still Pending.
func DeleteIfMutable(db *gorm.DB, record models.Reviewable) error {
	if err := models.EnsureMutable(record); err != nil {
		return err
	}
	return utils.MapStorageError(db.Delete(record).Error)
}
