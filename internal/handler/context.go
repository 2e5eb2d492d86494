package handler

import (
	"github.com/rosterhq-dev/employee-manager/backend/internal/domain"
)

type ContextKey string

var IdentityCtxKey ContextKey = "identity"

// Identity is the verified authenticated context the auth middleware
// attaches to every guarded request. Handlers thread it through to the
// repository, so owner-less data access has no code path.
type Identity struct {
	AccountID int64
	Role      domain.Role
	Username  string
}
