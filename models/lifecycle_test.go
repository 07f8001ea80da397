package models

import (
	"testing"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	r := &Revenue{Status: RecordStatusPending}

	require.NoError(t, ReviewRecord(r, "reviewer1", "figures agree with the ledger"))
	assert.Equal(t, RecordStatusReviewed, r.Status)
	assert.Equal(t, "reviewer1", r.ReviewedBy)
	assert.Equal(t, "figures agree with the ledger", r.ReviewComment)
	require.NotNil(t, r.ReviewedAt)

	require.NoError(t, ApproveRecord(r, "approver1"))
	assert.Equal(t, RecordStatusApproved, r.Status)
	assert.Equal(t, "approver1", r.ApprovedBy)
	require.NotNil(t, r.ApprovedAt)
}

func TestLifecycleIsMonotonic(t *testing.T) {
	reviewed := &Revenue{Status: RecordStatusReviewed}
	err := ReviewRecord(reviewed, "reviewer2", "")
	assert.Equal(t, utils.ErrorKindConflict, utils.KindOf(err), "re-review is a conflict")

	pending := &Revenue{Status: RecordStatusPending}
	err = ApproveRecord(pending, "approver1")
	assert.Equal(t, utils.ErrorKindBusinessRule, utils.KindOf(err), "approval requires prior review")

	approved := &Revenue{Status: RecordStatusApproved}
	err = ApproveRecord(approved, "approver2")
	assert.Equal(t, utils.ErrorKindConflict, utils.KindOf(err), "approval is terminal")
}

func TestEnsureMutable(t *testing.T) {
	assert.NoError(t, EnsureMutable(&CashPosition{Status: RecordStatusPending}))

	err := EnsureMutable(&CashPosition{Status: RecordStatusReviewed})
	assert.Equal(t, utils.ErrorKindBusinessRule, utils.KindOf(err))

	err = EnsureMutable(&Expenditure{Status: RecordStatusApproved})
	assert.Equal(t, utils.ErrorKindBusinessRule, utils.KindOf(err))
}
