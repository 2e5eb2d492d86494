package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

func TestListAccountsRequiresAdmin(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, 7, domain.RoleUser, "amy"))
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Access denied. Admins only."}`, rec.Body.String())
}

func TestListAccountsAsAdmin(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at", "version"}).
			AddRow(int64(1), "root", "root@x.com", "hash", "admin", time.Now(), int32(1)).
			AddRow(int64(7), "amy", "amy@x.com", "hash", "user", time.Now(), int32(1)))

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, 1, domain.RoleAdmin, "root"))
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"amy"`)
	// the stored hash never serializes
	assert.NotContains(t, rec.Body.String(), "hash")
}
