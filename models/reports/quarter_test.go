package reports

import (
	"testing"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuarterPeriodWindows(t *testing.T) {
	tests := []struct {
		quarter  int
		start    time.Time
		end      time.Time
		endMonth string
	}{
		{1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), "MAR"},
		{2, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), "JUN"},
		{3, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), "SEP"},
		{4, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "DEC"},
	}

	for _, tt := range tests {
		period, err := GetQuarterPeriod(2026, tt.quarter)
		require.NoError(t, err)
		assert.Equal(t, tt.start, period.Start, "Q%d start", tt.quarter)
		assert.Equal(t, tt.end, period.End, "Q%d end", tt.quarter)
		assert.Equal(t, tt.endMonth, period.EndMonthName)
	}
}

func TestGetQuarterPeriodLeapFebruary(t *testing.T) {
	period, err := GetQuarterPeriod(2024, 1)
	require.NoError(t, err)
	// AddDate handles February length; Q1 always ends 31 March regardless.
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), period.End)
}

func TestGetQuarterPeriodLabels(t *testing.T) {
	period, err := GetQuarterPeriod(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, "Q2 2026", period.Label)
	assert.Equal(t, "31 DEC 2026", period.ProjectionLabel)
}

func TestGetQuarterPeriodRejectsBadInput(t *testing.T) {
	for _, quarter := range []int{0, 5, -1} {
		_, err := GetQuarterPeriod(2026, quarter)
		assert.Equal(t, utils.ErrorKindValidation, utils.KindOf(err), "quarter %d", quarter)
	}
	for _, year := range []int{1999, 2101, 0} {
		_, err := GetQuarterPeriod(year, 1)
		assert.Equal(t, utils.ErrorKindValidation, utils.KindOf(err), "year %d", year)
	}
}
