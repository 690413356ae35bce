package handler

import "net/http"

// GetAllEmployees serves the assignment-candidate roster. The directory is
// owned by the HR subsystem and read-only here.
func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "employees fetched", employees)
}
