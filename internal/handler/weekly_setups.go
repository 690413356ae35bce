package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/Jonp4208/cfa-eval-sub012/internal/schedule"
)

func (h *Handler) GetAllWeeklySetups(w http.ResponseWriter, r *http.Request) {
	setups, err := h.repository.GetAllWeeklySetups()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "weekly setups fetched", setups)
}

func (h *Handler) CreateWeeklySetup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string                 `json:"name" validate:"required"`
		StartDate         time.Time              `json:"startDate" validate:"required"`
		EndDate           time.Time              `json:"endDate" validate:"required"`
		WeekSchedule      *domain.WeekSchedule   `json:"weekSchedule" validate:"required"`
		UploadedSchedules []domain.UploadedShift `json:"uploadedSchedules"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := domain.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// setups may arrive from a blank grid; fill missing weekdays rather than
	// rejecting, the seven-day invariant must hold from construction onwards
	req.WeekSchedule.Normalize()
	if err := schedule.ValidateTimeBlocks(req.WeekSchedule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	setup := &domain.WeeklySetup{
		Name:              req.Name,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		WeekSchedule:      req.WeekSchedule,
		UploadedSchedules: req.UploadedSchedules,
	}

	if err := h.repository.CreateWeeklySetup(setup); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.publishSetupEvent(r, "weekly_setup", "created", setup.ID, setup.Name, setup.StartDate)

	h.successResponse(w, r, http.StatusCreated, "weekly setup created", setup)
}

func (h *Handler) GetWeeklySetup(w http.ResponseWriter, r *http.Request) {
	setup := r.Context().Value(WeeklySetupCtx).(*domain.WeeklySetup)

	h.successResponse(w, r, http.StatusOK, "weekly setup fetched", setup)
}

func (h *Handler) UpdateWeeklySetup(w http.ResponseWriter, r *http.Request) {
	setup := r.Context().Value(WeeklySetupCtx).(*domain.WeeklySetup)

	var req struct {
		Name              *string                 `json:"name"`
		StartDate         *time.Time              `json:"startDate"`
		EndDate           *time.Time              `json:"endDate"`
		WeekSchedule      *domain.WeekSchedule    `json:"weekSchedule"`
		UploadedSchedules *[]domain.UploadedShift `json:"uploadedSchedules"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		setup.Name = *req.Name
	}
	if req.StartDate != nil {
		setup.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		setup.EndDate = *req.EndDate
	}
	if err := domain.ValidateDateRange(setup.StartDate, setup.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.WeekSchedule != nil {
		req.WeekSchedule.Normalize()
		if err := schedule.ValidateTimeBlocks(req.WeekSchedule); err != nil {
			h.badRequest(w, r, err)
			return
		}
		setup.WeekSchedule = req.WeekSchedule
	}
	if req.UploadedSchedules != nil {
		setup.UploadedSchedules = *req.UploadedSchedules
	}

	if err := h.repository.UpdateWeeklySetup(setup); err != nil {
		switch {
		case errors.Is(err, domain.ErrStaleWrite):
			h.errorResponse(w, r, http.StatusConflict, "weekly setup was modified by someone else, refresh and retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishSetupEvent(r, "weekly_setup", "updated", setup.ID, setup.Name, setup.StartDate)

	h.successResponse(w, r, http.StatusOK, "weekly setup updated", setup)
}

func (h *Handler) DeleteWeeklySetup(w http.ResponseWriter, r *http.Request) {
	setup := r.Context().Value(WeeklySetupCtx).(*domain.WeeklySetup)

	if err := h.repository.DeleteWeeklySetup(setup.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "weekly setup not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishSetupEvent(r, "weekly_setup", "deleted", setup.ID, setup.Name, setup.StartDate)

	h.successResponse(w, r, http.StatusOK, "weekly setup deleted", nil)
}
