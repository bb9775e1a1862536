//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/store"
)

// TestStoresAgainstPostgres runs the stores against a real database named
// by BAZI_DATABASE_URL. Each subtest runs in a transaction that is rolled
// back.
func TestStoresAgainstPostgres(t *testing.T) {
	dbURL := os.Getenv("BAZI_DATABASE_URL")
	if dbURL == "" {
		t.Skip("BAZI_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, MigrateUp, nil))

	users := NewPostgresUserStore(db, nil, bcrypt.MinCost)
	profiles := NewPostgresProfileStore(db, nil)

	t.Run("profile lifecycle", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		txUsers, txProfiles := users.WithTx(tx), profiles.WithTx(tx)

		user, err := domain.NewUser(uuid.NewString()+"@example.com", "correct-horse-battery")
		require.NoError(t, err)
		require.NoError(t, txUsers.Create(ctx, user))

		_, err = txUsers.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.ErrorIs(t, txUsers.Create(ctx, &domain.User{
			ID: uuid.New(), Email: user.Email, Password: "correct-horse-battery",
		}), store.ErrEmailExists)

		engine := bazi.NewDefaultEngine()
		first, err := engine.Calculate(bazi.ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0})
		require.NoError(t, err)
		p1, err := domain.NewElementProfile(user.ID, first)
		require.NoError(t, err)
		require.NoError(t, txProfiles.Upsert(ctx, p1))

		second, err := engine.Calculate(bazi.ChartInput{Year: 2012, Month: 12, Day: 17, Hour: 14})
		require.NoError(t, err)
		p2, err := domain.NewElementProfile(user.ID, second)
		require.NoError(t, err)
		require.NoError(t, txProfiles.Upsert(ctx, p2))
		assert.Equal(t, p1.ID, p2.ID, "replacing keeps the profile id")

		got, err := txProfiles.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, second.Percentages, got.Percentages)
		assert.Equal(t, second.Input, got.Birth)

		require.NoError(t, txProfiles.Delete(ctx, user.ID))
		assert.ErrorIs(t, txProfiles.Delete(ctx, user.ID), store.ErrProfileNotFound)
	})

	t.Run("profile for unknown user", func(t *testing.T) {
		chart, err := bazi.NewDefaultEngine().Calculate(bazi.ChartInput{Year: 2000, Month: 1, Day: 1, Hour: 12})
		require.NoError(t, err)
		p, err := domain.NewElementProfile(uuid.New(), chart)
		require.NoError(t, err)
		assert.ErrorIs(t, profiles.Upsert(ctx, p), store.ErrInvalidEntity)
	})
}
