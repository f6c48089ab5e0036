package session

import (
	"context"
	"errors"

	"github.com/nekogravitycat/user-management-console/internal/screen"
)

var ErrNotFound = errors.New("session not found")

// Store persists screen states by session id.
type Store interface {
	// Load returns the state saved for id, or ErrNotFound.
	Load(ctx context.Context, id string) (*screen.State, error)

	// Save stores st under id, refreshing its expiry.
	Save(ctx context.Context, id string, st *screen.State) error

	// Delete removes the state for id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
}
