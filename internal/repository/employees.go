package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

// Every employee query below carries the owner id as a mandatory filter or
// stamp. A record that exists under another owner scans as sql.ErrNoRows,
// indistinguishable from a record that does not exist at all.

func (r *Repository) ListEmployeesByOwner(ownerID int64) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, position, department, email, salary, status, date_of_joining, created_at, updated_at
		FROM employees WHERE owner_id = $1
		ORDER BY created_at, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{
			OwnerID: ownerID,
		}
		email := sql.NullString{}
		dst := []any{&employee.ID, &employee.Name, &employee.Position, &employee.Department, &email, &employee.Salary, &employee.Status, &employee.DateOfJoining, &employee.CreatedAt, &employee.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employee.Email = email.String
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployeeByID(id uuid.UUID, ownerID int64) (*domain.Employee, error) {
	query := `
		SELECT name, position, department, email, salary, status, date_of_joining, created_at, updated_at
		FROM employees WHERE id = $1 AND owner_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID:      id,
		OwnerID: ownerID,
	}

	email := sql.NullString{}
	dst := []any{&employee.Name, &employee.Position, &employee.Department, &email, &employee.Salary, &employee.Status, &employee.DateOfJoining, &employee.CreatedAt, &employee.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id, ownerID).Scan(dst...); err != nil {
		return nil, err
	}
	employee.Email = email.String

	return employee, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	// Per-owner email uniqueness is enforced by the partial unique index
	// employees_owner_id_email_key, so two concurrent inserts with the same
	// owner and email cannot both succeed.
	query := `
		INSERT INTO employees (id, owner_id, name, position, department, email, salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING date_of_joining, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee.ID = uuid.New()
	email := sql.NullString{String: employee.Email, Valid: employee.Email != ""}

	args := []any{employee.ID, employee.OwnerID, employee.Name, employee.Position, employee.Department, email, employee.Salary, employee.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.DateOfJoining, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			name = $1,
			position = $2,
			department = $3,
			email = $4,
			salary = $5,
			status = $6,
			updated_at = now()
		WHERE id = $7 AND owner_id = $8
		RETURNING updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	email := sql.NullString{String: employee.Email, Valid: employee.Email != ""}

	args := []any{employee.Name, employee.Position, employee.Department, email, employee.Salary, employee.Status, employee.ID, employee.OwnerID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id uuid.UUID, ownerID int64) error {
	query := `
		DELETE FROM employees WHERE id = $1 AND owner_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
