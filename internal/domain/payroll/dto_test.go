package payroll

import (
	"testing"

	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePayrollRequestValidate(t *testing.T) {
	valid := GeneratePayrollRequest{
		EmployeeID: "emp-1",
		FromDate:   "2025-06-01",
		ToDate:     "2025-06-14",
	}
	assert.NoError(t, valid.Validate())

	inverted := GeneratePayrollRequest{
		EmployeeID: "emp-1",
		FromDate:   "2025-06-14",
		ToDate:     "2025-06-01",
	}
	err := inverted.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to_date")

	missing := GeneratePayrollRequest{}
	err = missing.Validate()
	require.Error(t, err)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}

func TestAttendanceEntryRequestValidate(t *testing.T) {
	valid := AttendanceEntryRequest{
		StartDate: "2025-06-02",
		StartTime: "22:00",
		EndDate:   "2025-06-03",
		EndTime:   "06:00",
		PayRate:   decimal.NewFromInt(20),
	}
	assert.NoError(t, valid.Validate())

	t.Run("bad dates rejected", func(t *testing.T) {
		bad := valid
		bad.StartDate = "02/06/2025"
		assert.Error(t, bad.Validate())
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		bad := valid
		bad.PayRate = decimal.NewFromInt(-1)
		assert.Error(t, bad.Validate())
	})

	t.Run("holiday id without flag rejected", func(t *testing.T) {
		bad := valid
		id := "bh-1"
		bad.BankHolidayID = &id
		assert.Error(t, bad.Validate())
	})

	t.Run("malformed clock times pass validation and normalize", func(t *testing.T) {
		loose := valid
		loose.StartTime = "not a time"
		loose.EndTime = ""
		assert.NoError(t, loose.Validate())

		entry := loose.ToEntity()
		assert.Equal(t, clock.Midnight, entry.StartTime)
		assert.Equal(t, clock.Midnight, entry.EndTime)
	})
}

func TestAttendanceEntryRequestToEntity(t *testing.T) {
	shiftID := "shift-night"
	req := AttendanceEntryRequest{
		ShiftID:     &shiftID,
		StartDate:   "2025-06-02",
		StartTime:   "22:00",
		EndDate:     "2025-06-03",
		EndTime:     "06:00",
		PayRate:     decimal.NewFromInt(20),
		Note:        "night cover",
		BankHoliday: false,
	}

	entry := req.ToEntity()
	require.NotNil(t, entry.ShiftID)
	assert.Equal(t, "shift-night", *entry.ShiftID)
	assert.Equal(t, clock.Parse("22:00"), entry.StartTime)
	assert.Equal(t, clock.Parse("06:00"), entry.EndTime)
	assert.Equal(t, "2025-06-02", entry.StartDate.Format("2006-01-02"))
	assert.Equal(t, 480, entry.Window().Duration())
}

func TestPayrollFilterValidate(t *testing.T) {
	f := PayrollFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	bad := PayrollFilter{Limit: 500}
	assert.Error(t, bad.Validate())

	status := "archived"
	badStatus := PayrollFilter{Status: &status}
	assert.Error(t, badStatus.Validate())
}
