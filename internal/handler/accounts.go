package handler

import (
	"net/http"
)

// ListAccounts is admin-only. It exposes account metadata, never records:
// the admin flag does not grant cross-owner access to employee data.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.repository.GetAllAccounts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Accounts retrieved successfully",
		"data":    accounts,
	})
}
