package payroll

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

func authedContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== in-memory fakes =====

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) Create(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	f.nextID++
	record.ID = "record-" + validatorItoa(f.nextID)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	record, ok := f.records[id]
	if !ok || record.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return record, nil
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, fromDate, toDate string, companyID string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.CompanyID == companyID &&
			r.FromDate.Format(time.DateOnly) == fromDate && r.ToDate.Format(time.DateOnly) == toDate {
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter, companyID string) ([]payroll.PayrollRecord, int64, error) {
	var result []payroll.PayrollRecord
	for _, r := range f.records {
		if r.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) ReplaceEntries(_ context.Context, id string, companyID string, entries []payroll.AttendanceEntry, totals payroll.Totals) error {
	record, ok := f.records[id]
	if !ok || record.CompanyID != companyID {
		return payroll.ErrPayrollRecordNotFound
	}
	if record.Status != payroll.PayrollStatusPending {
		return payroll.ErrRecordLocked
	}
	record.Entries = entries
	record.TotalMinutes = totals.Minutes
	record.TotalAmount = totals.Amount
	record.UpdatedAt = time.Now()
	f.records[id] = record
	return nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, id string, companyID string, target payroll.PayrollStatus) error {
	record, ok := f.records[id]
	if !ok || record.CompanyID != companyID {
		return payroll.ErrPayrollRecordNotFound
	}
	if record.Status != payroll.PayrollStatusPending {
		return payroll.ErrRecordLocked
	}
	record.Status = target
	f.records[id] = record
	return nil
}

type fakeRateProfileRepo struct {
	profiles []rateprofile.RateProfile
}

func (f *fakeRateProfileRepo) Create(_ context.Context, p rateprofile.RateProfile) (rateprofile.RateProfile, error) {
	f.profiles = append(f.profiles, p)
	return p, nil
}

func (f *fakeRateProfileRepo) GetByID(_ context.Context, id string, _ string) (rateprofile.RateProfile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return rateprofile.RateProfile{}, rateprofile.ErrRateProfileNotFound
}

func (f *fakeRateProfileRepo) GetByEmployeeID(_ context.Context, employeeID string, _ string) ([]rateprofile.RateProfile, error) {
	var result []rateprofile.RateProfile
	for _, p := range f.profiles {
		if p.EmployeeID == employeeID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeRateProfileRepo) List(_ context.Context, _ string) ([]rateprofile.RateProfile, error) {
	return f.profiles, nil
}

func (f *fakeRateProfileRepo) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

type fakeHolidayRepo struct {
	holidays map[string]holiday.BankHoliday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.BankHoliday) (holiday.BankHoliday, error) {
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string, companyID string) (holiday.BankHoliday, error) {
	h, ok := f.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.BankHoliday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) ListByYear(_ context.Context, _ string, _ int) ([]holiday.BankHoliday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

type fakeTimesheetSource struct {
	entries []payroll.AttendanceEntry
	calls   int
}

func (f *fakeTimesheetSource) FetchEntries(_ context.Context, _ string, _ string, _, _ time.Time) ([]payroll.AttendanceEntry, error) {
	f.calls++
	out := make([]payroll.AttendanceEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func validatorItoa(i int) string {
	return strconv.Itoa(i)
}

// ===== tests =====

func newTestService(t *testing.T) (payroll.PayrollService, *fakePayrollRepo, *fakeTimesheetSource) {
	t.Helper()
	repo := newFakePayrollRepo()
	profiles := &fakeRateProfileRepo{profiles: []rateprofile.RateProfile{nightProfile()}}
	holidays := &fakeHolidayRepo{holidays: map[string]holiday.BankHoliday{
		"bh-1": {ID: "bh-1", CompanyID: testCompanyID, Title: "Spring Bank Holiday"},
	}}
	source := &fakeTimesheetSource{
		entries: []payroll.AttendanceEntry{
			// Monday night inside the 22:00-06:00 shift at 20/h.
			testEntry(strPtr("shift-night"), "2025-06-02", "23:00", "05:00"),
		},
	}
	return NewPayrollService(nil, repo, profiles, holidays, source), repo, source
}

func TestPayrollService_Generate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t)

	resp, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1",
		FromDate:   "2025-06-01",
		ToDate:     "2025-06-14",
	})
	require.NoError(t, err)

	assert.Equal(t, string(payroll.PayrollStatusPending), resp.Status)
	assert.Equal(t, 360, resp.TotalMinutes)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(120)), "got %s", resp.TotalAmount)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 360, resp.Entries[0].WorkedMinutes)
	assert.True(t, resp.Entries[0].PayRate.Equal(decimal.NewFromInt(20)))
	assert.NotEmpty(t, resp.Entries[0].ID)
}

func TestPayrollService_GenerateDuplicatePeriod(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t)
	req := payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1",
		FromDate:   "2025-06-01",
		ToDate:     "2025-06-14",
	}

	_, err := svc.Generate(ctx, req)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestPayrollService_UpdateRecomputesTotalsAsUnit(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID: created.ID,
		Entries: []payroll.AttendanceEntryRequest{
			{
				ShiftID:   strPtr("shift-night"),
				StartDate: "2025-06-03", // Tuesday, table rate 22/h
				StartTime: "05:00",
				EndDate:   "2025-06-03",
				EndTime:   "06:00",
				// Client sends a stale rate; the server re-derives it.
				PayRate: decimal.NewFromInt(999),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 60, updated.TotalMinutes)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(22)), "got %s", updated.TotalAmount)

	stored := repo.records[created.ID]
	assert.Equal(t, 60, stored.TotalMinutes)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(22)))
}

func TestPayrollService_UpdateKeepsBankHolidayOverride(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID: created.ID,
		Entries: []payroll.AttendanceEntryRequest{
			{
				ShiftID:       strPtr("shift-night"),
				StartDate:     "2025-06-02",
				StartTime:     "23:00",
				EndDate:       "2025-06-03",
				EndTime:       "05:00",
				PayRate:       decimal.NewFromInt(50),
				BankHoliday:   true,
				BankHolidayID: strPtr("bh-1"),
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Entries, 1)
	assert.True(t, updated.Entries[0].PayRate.Equal(decimal.NewFromInt(50)),
		"bank holiday override must survive the server-side rate refresh")
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(300)), "6h at 50/h, got %s", updated.TotalAmount)
}

func TestPayrollService_UpdateRejectsUnknownBankHoliday(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)

	_, err = svc.UpdateRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID: created.ID,
		Entries: []payroll.AttendanceEntryRequest{
			{
				ShiftID:       strPtr("shift-night"),
				StartDate:     "2025-06-02",
				StartTime:     "23:00",
				EndDate:       "2025-06-03",
				EndTime:       "05:00",
				PayRate:       decimal.NewFromInt(50),
				BankHoliday:   true,
				BankHolidayID: strPtr("bh-unknown"),
			},
		},
	})
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestPayrollService_ApprovedRecordIsImmutable(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, created.ID))

	before := repo.records[created.ID]

	_, err = svc.UpdateRecord(ctx, payroll.UpdatePayrollRecordRequest{
		ID:      created.ID,
		Entries: nil,
	})
	assert.ErrorIs(t, err, payroll.ErrRecordLocked)

	_, err = svc.Regenerate(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrRegenerateNotPending)

	after := repo.records[created.ID]
	assert.Equal(t, before.TotalMinutes, after.TotalMinutes)
	assert.True(t, before.TotalAmount.Equal(after.TotalAmount))
	assert.Len(t, after.Entries, len(before.Entries))
}

func TestPayrollService_Transitions(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, created.ID))
	assert.Equal(t, payroll.PayrollStatusRejected, repo.records[created.ID].Status)

	// Rejected is terminal: no further transitions.
	assert.ErrorIs(t, svc.Approve(ctx, created.ID), payroll.ErrRecordLocked)
	assert.ErrorIs(t, svc.Reject(ctx, created.ID), payroll.ErrRecordLocked)
}

func TestPayrollService_RegenerateRefetchesFromSource(t *testing.T) {
	svc, _, source := newTestService(t)
	ctx := authedContext(t)

	created, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: "emp-1", FromDate: "2025-06-01", ToDate: "2025-06-14",
	})
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	// The rota changed upstream: one extra Tuesday tail-hour entry.
	source.entries = append(source.entries,
		testEntry(strPtr("shift-night"), "2025-06-03", "05:00", "06:00"))

	regenerated, err := svc.Regenerate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 420, regenerated.TotalMinutes)
	assert.True(t, regenerated.TotalAmount.Equal(decimal.NewFromInt(142)), "got %s", regenerated.TotalAmount)
	assert.Len(t, regenerated.Entries, 2)
}

func TestPayrollService_MissingCompanyClaim(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetRecord(context.Background(), "record-1")
	assert.Error(t, err)
}
