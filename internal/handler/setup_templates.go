package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/Jonp4208/cfa-eval-sub012/internal/schedule"
)

func (h *Handler) GetAllSetupTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repository.GetAllSetupTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "setup templates fetched", templates)
}

func (h *Handler) CreateSetupTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string               `json:"name" validate:"required"`
		WeekSchedule *domain.WeekSchedule `json:"weekSchedule" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// templates must arrive with all seven weekday keys
	if err := req.WeekSchedule.Validate(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := schedule.ValidateTimeBlocks(req.WeekSchedule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// templates carry capacity only, never assignments
	req.WeekSchedule.StripAssignments()

	template := &domain.SetupTemplate{
		Name:         req.Name,
		WeekSchedule: req.WeekSchedule,
	}

	if err := h.repository.CreateSetupTemplate(template); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "setup_sheet_templates_name_key":
				h.errorResponse(w, r, http.StatusBadRequest, "a template with this name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusCreated, "setup template created", template)
}

func (h *Handler) GetSetupTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(SetupTemplateCtx).(*domain.SetupTemplate)

	h.successResponse(w, r, http.StatusOK, "setup template fetched", template)
}

func (h *Handler) UpdateSetupTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(SetupTemplateCtx).(*domain.SetupTemplate)

	var req struct {
		Name         *string              `json:"name"`
		WeekSchedule *domain.WeekSchedule `json:"weekSchedule"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.WeekSchedule != nil {
		if err := req.WeekSchedule.Validate(); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if err := schedule.ValidateTimeBlocks(req.WeekSchedule); err != nil {
			h.badRequest(w, r, err)
			return
		}
		req.WeekSchedule.StripAssignments()
		template.WeekSchedule = req.WeekSchedule
	}

	if err := h.repository.UpdateSetupTemplate(template); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "setup_sheet_templates_name_key":
				h.errorResponse(w, r, http.StatusBadRequest, "a template with this name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, domain.ErrStaleWrite):
			h.errorResponse(w, r, http.StatusConflict, "template was modified by someone else, refresh and retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "setup template updated", template)
}

func (h *Handler) DeleteSetupTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(SetupTemplateCtx).(*domain.SetupTemplate)

	if err := h.repository.DeleteSetupTemplate(template.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.errorResponse(w, r, http.StatusNotFound, "setup template not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "setup template deleted", nil)
}
