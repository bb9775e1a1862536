package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/domain"
)

// ProfileStore persists one element profile per user.
type ProfileStore interface {
	// Upsert inserts the profile or replaces the user's existing one. On
	// replace the original ID and CreatedAt are kept and written back into
	// profile. Returns ErrInvalidEntity if the user does not exist.
	Upsert(ctx context.Context, profile *domain.ElementProfile) error

	// GetByUserID returns the user's profile or ErrProfileNotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error)

	// Delete removes the user's profile. Returns ErrProfileNotFound if there
	// is none.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a ProfileStore bound to tx.
	WithTx(tx *sql.Tx) ProfileStore
}
