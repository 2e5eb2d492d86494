package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

// employeeNotFoundMsg masks "does not exist" and "exists but is owned by
// someone else" behind one message, so record existence never leaks across
// owners.
const employeeNotFoundMsg = "Employee not found or access denied."

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	employees, err := h.repository.ListEmployeesByOwner(identity.AccountID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Employees retrieved successfully",
		"data":    employees,
	})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// an unparseable id is indistinguishable from an absent one
		h.notFound(w, r, employeeNotFoundMsg)
		return
	}

	employee, err := h.repository.GetEmployeeByID(employeeID, identity.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, employeeNotFoundMsg)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"data": employee})
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	var req struct {
		Name       string   `json:"name" validate:"required"`
		Position   string   `json:"position" validate:"required"`
		Department string   `json:"department" validate:"required"`
		Email      string   `json:"email" validate:"omitempty,email"`
		Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Position = strings.TrimSpace(req.Position)
	req.Department = strings.TrimSpace(req.Department)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		OwnerID:    identity.AccountID,
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Status:     domain.EmployeeStatusActive,
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "employees_owner_id_email_key":
			h.badRequest(w, r, errors.New("An employee with this email already exists. Please use a different email address."))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusCreated, map[string]any{
		"message": "Employee added successfully",
		"data":    employee,
	})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, employeeNotFoundMsg)
		return
	}

	// id and owner are immutable: the patch simply has no such fields
	var req struct {
		Name       *string  `json:"name"`
		Position   *string  `json:"position"`
		Department *string  `json:"department"`
		Email      *string  `json:"email" validate:"omitempty,email"`
		Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
		Status     *string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Email != nil {
		*req.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// confirm the record exists under this owner before touching it
	employee, err := h.repository.GetEmployeeByID(employeeID, identity.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, employeeNotFoundMsg)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.Name != nil {
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Position != nil {
		employee.Position = strings.TrimSpace(*req.Position)
	}
	if req.Department != nil {
		employee.Department = strings.TrimSpace(*req.Department)
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.Status != nil {
		employee.Status = domain.EmployeeStatus(*req.Status)
	}

	if employee.Name == "" || employee.Position == "" || employee.Department == "" {
		h.badRequest(w, r, errors.New("Missing required fields. Name, position, and department are required."))
		return
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "employees_owner_id_email_key":
			h.badRequest(w, r, errors.New("An employee with this email already exists. Please use a different email address."))
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, employeeNotFoundMsg)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Employee updated successfully",
		"data":    employee,
	})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value(IdentityCtxKey).(*Identity)

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, employeeNotFoundMsg)
		return
	}

	if err := h.repository.DeleteEmployee(employeeID, identity.AccountID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, employeeNotFoundMsg)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}
