package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq-dev/employee-manager/backend/internal/config"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5

	return NewRepository(cfg, db), mock
}

func TestCreateEmployeeAssignsID(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs(sqlmock.AnyArg(), int64(7), "Bo", "Eng", "R&D", nil, float64(0), "Active").
		WillReturnRows(sqlmock.NewRows([]string{"date_of_joining", "created_at", "updated_at"}).
			AddRow(now, now, now))

	employee := &domain.Employee{
		OwnerID:    7,
		Name:       "Bo",
		Position:   "Eng",
		Department: "R&D",
		Status:     domain.EmployeeStatusActive,
	}

	require.NoError(t, repo.CreateEmployee(employee))
	assert.NotEqual(t, uuid.Nil, employee.ID)
	assert.Equal(t, now, employee.DateOfJoining)
}

func TestGetEmployeeByIDScansNoRowsForForeignOwner(t *testing.T) {
	repo, mock := newTestRepository(t)

	employeeID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND owner_id = $2")).
		WithArgs(employeeID, int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "position", "department", "email", "salary", "status", "date_of_joining", "created_at", "updated_at"}))

	_, err := repo.GetEmployeeByID(employeeID, 8)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListEmployeesByOwnerFiltersAndOrders(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	first := uuid.New()
	second := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE owner_id = $1 ORDER BY created_at, id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "department", "email", "salary", "status", "date_of_joining", "created_at", "updated_at"}).
			AddRow(first.String(), "Bo", "Eng", "R&D", nil, float64(0), "Active", now, now, now).
			AddRow(second.String(), "Ann", "QA", "R&D", "ann@corp.com", float64(100), "Inactive", now, now, now))

	employees, err := repo.ListEmployeesByOwner(7)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, first, employees[0].ID)
	assert.Equal(t, "", employees[0].Email)
	assert.Equal(t, "ann@corp.com", employees[1].Email)
	assert.Equal(t, int64(7), employees[1].OwnerID)
}

func TestDeleteEmployeeZeroRowsIsNoRows(t *testing.T) {
	repo, mock := newTestRepository(t)

	employeeID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees")).
		WithArgs(employeeID, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteEmployee(employeeID, 7)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateEmployeeScopedByOwner(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Now()
	employeeID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $7 AND owner_id = $8")).
		WithArgs("Bo", "Eng", "R&D", "bo@corp.com", float64(500), "Active", employeeID, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	employee := &domain.Employee{
		ID:         employeeID,
		OwnerID:    7,
		Name:       "Bo",
		Position:   "Eng",
		Department: "R&D",
		Email:      "bo@corp.com",
		Salary:     500,
		Status:     domain.EmployeeStatusActive,
	}

	require.NoError(t, repo.UpdateEmployee(employee))
	assert.Equal(t, now, employee.UpdatedAt)
}
