package sessions

import (
	"context"
	"errors"

	"workx.com/workx/internal/constants"
)

// Principal is the authenticated actor behind a request. Core
// operations take it explicitly instead of reading ambient state.
type Principal struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Role     constants.Role `json:"role"`
}

type Store interface {
	Create(ctx context.Context, p Principal) (string, error)

	Resolve(ctx context.Context, token string) (*Principal, error)

	Destroy(ctx context.Context, token string) error
}

var ErrSessionNotFound = errors.New("session not found")
