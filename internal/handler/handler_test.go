package handler

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq-dev/employee-manager/backend/internal/auth"
	"github.com/rosterhq-dev/employee-manager/backend/internal/config"
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
	"github.com/rosterhq-dev/employee-manager/backend/internal/repository"
)

const testSecret = "test-signing-secret"

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.Expiration = 3600
	cfg.Database.QueryTimeout = 5
	cfg.RabbitMQ.PublishTimeout = 1
	return cfg
}

// newTestHandler wires a Handler over a sqlmock database and no mail
// channel. Routes are registered so tests can drive the full middleware
// chain through h.Mux.
func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := newTestConfig()
	repo := repository.NewRepository(cfg, db)

	h, err := NewHandler(cfg, repo, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, mock
}

func issueTestToken(t *testing.T, accountID int64, role domain.Role, username string) string {
	t.Helper()

	tm := auth.NewTokenManager(testSecret, time.Hour)
	token, err := tm.Issue(accountID, role, username)
	require.NoError(t, err)
	return token
}

func issueExpiredTestToken(t *testing.T, accountID int64, role domain.Role, username string) string {
	t.Helper()

	tm := auth.NewTokenManager(testSecret, -time.Minute)
	token, err := tm.Issue(accountID, role, username)
	require.NoError(t, err)
	return token
}
