package reports

import (
	"fmt"
	"time"

	"bitbucket.org/gfmis/budget_backend/utils"
)

// QuarterPeriod is a fiscal quarter resolved to its calendar window plus the
// labels printed on report headers.
type QuarterPeriod struct {
	Year            int
	Quarter         int
	Start           time.Time
	End             time.Time
	Label           string
	EndMonthName    string
	ProjectionLabel string
}

var quarterEndMonths = map[int]string{1: "MAR", 2: "JUN", 3: "SEP", 4: "DEC"}

// GetQuarterPeriod maps a quarter to fixed calendar boundaries:
// Q1 Jan1-Mar31, Q2 Apr1-Jun30, Q3 Jul1-Sep30, Q4 Oct1-Dec31.
func GetQuarterPeriod(year int, quarter int) (QuarterPeriod, error) {
	if quarter < 1 || quarter > 4 {
		return QuarterPeriod{}, utils.NewValidationError("quarter must be between 1 and 4")
	}
	if year < 2000 || year > 2100 {
		return QuarterPeriod{}, utils.NewValidationError("year is out of range")
	}

	start := time.Date(year, time.Month(3*quarter-2), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)

	return QuarterPeriod{
		Year:            year,
		Quarter:         quarter,
		Start:           start,
		End:             end,
		Label:           fmt.Sprintf("Q%d %d", quarter, year),
		EndMonthName:    quarterEndMonths[quarter],
		ProjectionLabel: fmt.Sprintf("31 DEC %d", year),
	}, nil
}
