package models

import (
	"testing"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRetention(t *testing.T) {
	tests := []struct {
		name          string
		collection    string
		rate          string
		wantRetention string
		wantPayment   string
	}{
		{"five percent", "10000", "5", "500", "9500"},
		{"fractional rate", "10000", "7.5", "750", "9250"},
		{"rounds to two decimals", "1000.05", "7.5", "75", "925.05"},
		{"zero collection", "0", "10", "0", "0"},
		{"zero rate", "2500", "0", "0", "2500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection := decimal.RequireFromString(tt.collection)
			rate := decimal.RequireFromString(tt.rate)
			retention, payment, err := ComputeRetention(collection, rate)
			require.NoError(t, err)
			assert.True(t, retention.Equal(decimal.RequireFromString(tt.wantRetention)),
				"retention: want %s got %s", tt.wantRetention, retention)
			assert.True(t, payment.Equal(decimal.RequireFromString(tt.wantPayment)),
				"payment: want %s got %s", tt.wantPayment, payment)
			assert.True(t, retention.Add(payment).Equal(collection.Round(2)),
				"retention and payment must reassemble the collection")
		})
	}
}

func TestComputeRetentionRejectsNegatives(t *testing.T) {
	_, _, err := ComputeRetention(decimal.NewFromInt(-1), decimal.NewFromInt(5))
	assert.Equal(t, utils.ErrorKindValidation, utils.KindOf(err))

	_, _, err = ComputeRetention(decimal.NewFromInt(100), decimal.NewFromInt(-5))
	assert.Equal(t, utils.ErrorKindValidation, utils.KindOf(err))
}

func TestApplyCollectionUsesStoredRate(t *testing.T) {
	r := &Revenue{RetentionRate: decimal.NewFromInt(10)}
	require.NoError(t, r.ApplyCollection(decimal.NewFromInt(4000)))
	assert.True(t, r.RetentionAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, r.PaymentAmount.Equal(decimal.NewFromInt(3600)))

	// A later recompute uses the rate frozen on the record.
	require.NoError(t, r.ApplyCollection(decimal.NewFromInt(1000)))
	assert.True(t, r.RetentionAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, r.PaymentAmount.Equal(decimal.NewFromInt(900)))
}
