package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/handler/http/response"
)

type BankHolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByYear(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type bankHolidayHandlerImpl struct {
	holidayService holiday.BankHolidayService
}

func NewBankHolidayHandler(holidayService holiday.BankHolidayService) BankHolidayHandler {
	return &bankHolidayHandlerImpl{holidayService: holidayService}
}

func (h *bankHolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateBankHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bank holiday created", result)
}

func (h *bankHolidayHandlerImpl) ListByYear(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 2000 || parsed > 2200 {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	result, err := h.holidayService.ListByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *bankHolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Bank holiday ID is required", nil)
		return
	}

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bank holiday deleted successfully", nil)
}
