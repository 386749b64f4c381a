package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/domain/timesheet"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db              *database.DB
	payrollRepo     payroll.PayrollRepository
	rateProfileRepo rateprofile.RateProfileRepository
	holidayRepo     holiday.BankHolidayRepository
	timesheets      timesheet.Source
	calc            *Calculator
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	rateProfileRepo rateprofile.RateProfileRepository,
	holidayRepo holiday.BankHolidayRepository,
	timesheets timesheet.Source,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:              db,
		payrollRepo:     payrollRepo,
		rateProfileRepo: rateProfileRepo,
		holidayRepo:     holidayRepo,
		timesheets:      timesheets,
		calc:            NewCalculator(),
	}
}

// Helper to get company_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	fromDate, _ := time.Parse(time.DateOnly, req.FromDate)
	toDate, _ := time.Parse(time.DateOnly, req.ToDate)

	_, err = s.payrollRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.FromDate, req.ToDate, companyID)
	if err == nil {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	entries, idx, err := s.fetchAndResolve(ctx, req.EmployeeID, companyID, fromDate, toDate)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	totals := s.calc.Aggregate(entries, idx)

	record := payroll.PayrollRecord{
		EmployeeID:   req.EmployeeID,
		CompanyID:    companyID,
		FromDate:     fromDate,
		ToDate:       toDate,
		Entries:      entries,
		TotalMinutes: totals.Minutes,
		TotalAmount:  totals.Amount,
		Status:       payroll.PayrollStatusPending,
	}

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return s.toResponse(created, idx), nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	idx, err := s.profileIndex(ctx, record.EmployeeID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.toResponse(record, idx), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, totalCount, err := s.payrollRepo.List(ctx, filter, companyID)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	// List responses omit per-entry breakdowns, so no profile index is
	// needed here; totals were fixed at aggregation time.
	resp := payroll.ListPayrollRecordResponse{
		Data:       make([]payroll.PayrollRecordResponse, 0, len(records)),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, r := range records {
		r.Entries = nil
		resp.Data = append(resp.Data, s.toResponse(r, ProfileIndex{}))
	}
	return resp, nil
}

// UpdateRecord replaces the attendance list of a pending record.
// Non-bank-holiday rates are re-derived server side, so a stored pay
// rate can never drift from the weekly table; totals are recomputed
// from the new list and written together with it.
func (s *PayrollServiceImpl) UpdateRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if err := record.EnsureEditable(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	entries := make([]payroll.AttendanceEntry, 0, len(req.Entries))
	for i := range req.Entries {
		entries = append(entries, req.Entries[i].ToEntity())
	}
	if err := s.checkBankHolidayRefs(ctx, entries, companyID); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	idx, err := s.profileIndex(ctx, record.EmployeeID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	entries = s.calc.ResolveEntryRates(entries, idx)
	entries = assignEntryIDs(entries)
	totals := s.calc.Aggregate(entries, idx)

	if err := s.payrollRepo.ReplaceEntries(ctx, record.ID, companyID, entries, totals); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.GetRecord(ctx, record.ID)
}

// Regenerate refetches the attendance list from the timesheet
// collaborator for the record's period and re-runs the aggregation.
// Only pending records regenerate; the repository's compare-and-set on
// status catches a record approved between the check and the write.
func (s *PayrollServiceImpl) Regenerate(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !record.Status.Editable() {
		return payroll.PayrollRecordResponse{}, payroll.ErrRegenerateNotPending
	}

	entries, idx, err := s.fetchAndResolve(ctx, record.EmployeeID, companyID, record.FromDate, record.ToDate)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	totals := s.calc.Aggregate(entries, idx)

	if err := s.payrollRepo.ReplaceEntries(ctx, record.ID, companyID, entries, totals); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err = s.payrollRepo.GetByID(ctx, record.ID, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return s.toResponse(record, idx), nil
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, payroll.PayrollStatusApproved)
}

func (s *PayrollServiceImpl) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, payroll.PayrollStatusRejected)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, target payroll.PayrollStatus) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if !record.Status.CanTransitionTo(target) {
		return payroll.ErrRecordLocked
	}

	return s.payrollRepo.UpdateStatus(ctx, id, companyID, target)
}

// fetchAndResolve pulls the attendance list from the timesheet
// collaborator and the employee's rate profiles, refreshes derived pay
// rates and assigns IDs to new entries.
func (s *PayrollServiceImpl) fetchAndResolve(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]payroll.AttendanceEntry, ProfileIndex, error) {
	entries, err := s.timesheets.FetchEntries(ctx, employeeID, companyID, from, to)
	if err != nil {
		return nil, ProfileIndex{}, fmt.Errorf("failed to fetch timesheet entries: %w", err)
	}

	idx, err := s.profileIndex(ctx, employeeID, companyID)
	if err != nil {
		return nil, ProfileIndex{}, err
	}

	entries = s.calc.ResolveEntryRates(entries, idx)
	entries = assignEntryIDs(entries)
	return entries, idx, nil
}

// checkBankHolidayRefs verifies that every flagged entry points at a
// bank holiday of the caller's company before the override rate is
// accepted into the aggregation.
func (s *PayrollServiceImpl) checkBankHolidayRefs(ctx context.Context, entries []payroll.AttendanceEntry, companyID string) error {
	for _, e := range entries {
		if e.BankHolidayID == nil {
			continue
		}
		if _, err := s.holidayRepo.GetByID(ctx, *e.BankHolidayID, companyID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PayrollServiceImpl) profileIndex(ctx context.Context, employeeID, companyID string) (ProfileIndex, error) {
	profiles, err := s.rateProfileRepo.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return ProfileIndex{}, fmt.Errorf("failed to get rate profiles: %w", err)
	}
	return NewProfileIndex(profiles), nil
}

func assignEntryIDs(entries []payroll.AttendanceEntry) []payroll.AttendanceEntry {
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
	}
	return entries
}

func (s *PayrollServiceImpl) toResponse(r payroll.PayrollRecord, idx ProfileIndex) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		CompanyID:    r.CompanyID,
		FromDate:     r.FromDate.Format(time.DateOnly),
		ToDate:       r.ToDate.Format(time.DateOnly),
		Entries:      make([]payroll.AttendanceEntryResponse, 0, len(r.Entries)),
		TotalMinutes: r.TotalMinutes,
		TotalAmount:  r.TotalAmount,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	for _, e := range r.Entries {
		minutes := s.calc.OverlapMinutes(e, idx.Shift(e.ShiftID))
		resp.Entries = append(resp.Entries, payroll.AttendanceEntryResponse{
			ID:            e.ID,
			ShiftID:       e.ShiftID,
			StartDate:     e.StartDate.Format(time.DateOnly),
			StartTime:     e.StartTime.String(),
			EndDate:       e.EndDate.Format(time.DateOnly),
			EndTime:       e.EndTime.String(),
			PayRate:       e.PayRate,
			Note:          e.Note,
			BankHoliday:   e.BankHoliday,
			BankHolidayID: e.BankHolidayID,
			WorkedMinutes: minutes,
			LineAmount:    s.calc.lineAmount(minutes, e.PayRate),
		})
	}
	return resp
}
