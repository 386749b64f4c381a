package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/handler/http/response"
)

type RateProfileHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type rateProfileHandlerImpl struct {
	rateProfileService rateprofile.RateProfileService
}

func NewRateProfileHandler(rateProfileService rateprofile.RateProfileService) RateProfileHandler {
	return &rateProfileHandlerImpl{rateProfileService: rateProfileService}
}

func (h *rateProfileHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req rateprofile.CreateRateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rateProfileService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rate profile created", result)
}

func (h *rateProfileHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rate profile ID is required", nil)
		return
	}

	result, err := h.rateProfileService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateProfileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		result, err := h.rateProfileService.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	result, err := h.rateProfileService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rateProfileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rate profile ID is required", nil)
		return
	}

	if err := h.rateProfileService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate profile deleted successfully", nil)
}
