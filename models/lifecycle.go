package models

import (
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
)

// Reviewable is the shared three-state lifecycle carried by expenditure,
// revenue and cash-position records.
type Reviewable interface {
	GetStatus() RecordStatus
	MarkReviewed(by string, comment string, at time.Time)
	MarkApproved(by string, at time.Time)
}

// ReviewRecord moves a pending record to Reviewed. Re-reviewing a reviewed
// or approved record is a conflict, never an overwrite.
func ReviewRecord(record Reviewable, reviewer string, comment string) error {
	if record.GetStatus() != RecordStatusPending {
		return utils.NewConflictError("this record has already been reviewed")
	}
	record.MarkReviewed(reviewer, comment, time.Now())
	return nil
}

// ApproveRecord moves a reviewed record to Approved, which is terminal.
func ApproveRecord(record Reviewable, approver string) error {
	switch record.GetStatus() {
	case RecordStatusApproved:
		return utils.NewConflictError("this record has already been approved")
	case RecordStatusPending:
		return utils.NewBusinessRuleError("record must be reviewed before approval")
	}
	record.MarkApproved(approver, time.Now())
	return nil
}

// EnsureMutable rejects edits and deletes once a record has moved past
// Pending.
func EnsureMutable(record Reviewable) error {
	if record.GetStatus() != RecordStatusPending {
		return utils.NewBusinessRuleError("you cannot modify a reviewed or approved record")
	}
	return nil
}
