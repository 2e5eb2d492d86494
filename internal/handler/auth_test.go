package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("amy", "amy@x.com", sqlmock.AnyArg(), "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).
			AddRow(int64(1), time.Now(), int32(1)))

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"amy","email":"amy@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User created successfully"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupDuplicateIdentity(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantMsg    string
	}{
		{"duplicate username", "accounts_username_key", "username already exists"},
		{"duplicate email", "accounts_email_key", "email already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			req := httptest.NewRequest(http.MethodPost, "/auth/signup",
				strings.NewReader(`{"username":"amy","email":"amy@x.com","password":"p1"}`))
			rec := httptest.NewRecorder()

			h.Mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantMsg+`"}`, rec.Body.String())
		})
	}
}

func TestSignupValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"amy@x.com","password":"p1"}`},
		{"missing email", `{"username":"amy","password":"p1"}`},
		{"bad email", `{"username":"amy","email":"not-an-email","password":"p1"}`},
		{"missing password", `{"username":"amy","email":"amy@x.com"}`},
		{"bad role", `{"username":"amy","email":"amy@x.com","password":"p1","role":"superuser"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	h, mock := newTestHandler(t)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
		WithArgs("amy@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "version"}).
			AddRow(int64(7), "amy", string(passwordHash), "user", time.Now(), int32(1)))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"amy@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token    string `json:"token"`
		Role     string `json:"role"`
		Username string `json:"username"`
		UserID   int64  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user", resp.Role)
	assert.Equal(t, "amy", resp.Username)
	assert.Equal(t, int64(7), resp.UserID)
	require.NotEmpty(t, resp.Token)

	// the returned token passes verification on a guarded route
	verifyReq := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	verifyReq.Header.Set("Authorization", "Bearer "+resp.Token)
	verifyRec := httptest.NewRecorder()

	h.Mux.ServeHTTP(verifyRec, verifyReq)

	assert.Equal(t, http.StatusOK, verifyRec.Code)
	assert.JSONEq(t, `{"message":"Token is valid","user":{"role":"user","username":"amy","userId":7}}`, verifyRec.Body.String())
}

func TestLoginBadCredentials(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("nobody@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "version"}))

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"nobody@x.com","password":"p1"}`))
		rec := httptest.NewRecorder()

		h.Mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		h, mock := newTestHandler(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("amy@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at", "version"}).
				AddRow(int64(7), "amy", string(passwordHash), "user", time.Now(), int32(1)))

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"amy@x.com","password":"wrong"}`))
		rec := httptest.NewRecorder()

		h.Mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"amy@x.com"}`))
		rec := httptest.NewRecorder()

		h.Mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVerifyWithoutToken(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rec.Body.String())
}
