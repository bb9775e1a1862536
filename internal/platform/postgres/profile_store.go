package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/platform/logger"
	"github.com/phrazzld/bazi-api/internal/store"
)

// PostgresProfileStore implements store.ProfileStore on PostgreSQL.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a profile store on db.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

const profileColumns = `id, user_id, birth_year, birth_month, birth_day, birth_hour, pillars,
		wood_pct, fire_pct, earth_pct, metal_pct, water_pct,
		day_master, day_master_element, season, support, strength, created_at, updated_at`

// Upsert implements store.ProfileStore.
func (s *PostgresProfileStore) Upsert(ctx context.Context, p *domain.ElementProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("profile validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return err
	}

	pct := p.Percentages
	query := `
		INSERT INTO element_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (user_id) DO UPDATE SET
			birth_year = EXCLUDED.birth_year,
			birth_month = EXCLUDED.birth_month,
			birth_day = EXCLUDED.birth_day,
			birth_hour = EXCLUDED.birth_hour,
			pillars = EXCLUDED.pillars,
			wood_pct = EXCLUDED.wood_pct,
			fire_pct = EXCLUDED.fire_pct,
			earth_pct = EXCLUDED.earth_pct,
			metal_pct = EXCLUDED.metal_pct,
			water_pct = EXCLUDED.water_pct,
			day_master = EXCLUDED.day_master,
			day_master_element = EXCLUDED.day_master_element,
			season = EXCLUDED.season,
			support = EXCLUDED.support,
			strength = EXCLUDED.strength,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	var id uuid.UUID
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, query,
		p.ID, p.UserID,
		p.Birth.Year, p.Birth.Month, p.Birth.Day, p.Birth.Hour,
		p.Pillars,
		pct[bazi.Wood], pct[bazi.Fire], pct[bazi.Earth], pct[bazi.Metal], pct[bazi.Water],
		p.DayMaster, p.Element.String(), string(p.Season), p.Support, string(p.Strength),
		p.CreatedAt, p.UpdatedAt,
	).Scan(&id, &createdAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("profile references unknown user", slog.String("user_id", p.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, p.UserID)
		}
		log.Error("failed to upsert profile",
			slog.String("error", err.Error()),
			slog.String("user_id", p.UserID.String()))
		return store.NewStoreError("element_profile", "upsert", "write failed", MapError(err))
	}

	p.ID = id
	p.CreatedAt = createdAt

	log.Info("element profile saved",
		slog.String("user_id", p.UserID.String()),
		slog.String("strength", string(p.Strength)))
	return nil
}

// GetByUserID implements store.ProfileStore.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + profileColumns + ` FROM element_profiles WHERE user_id = $1`

	var (
		p                      domain.ElementProfile
		element, season, level string
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID,
		&p.Birth.Year, &p.Birth.Month, &p.Birth.Day, &p.Birth.Hour,
		&p.Pillars,
		&p.Percentages[bazi.Wood], &p.Percentages[bazi.Fire], &p.Percentages[bazi.Earth],
		&p.Percentages[bazi.Metal], &p.Percentages[bazi.Water],
		&p.DayMaster, &element, &season, &p.Support, &level,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("element_profile", "get", "query failed", MapError(err))
	}

	e, ok := bazi.ParseElement(element)
	if !ok {
		return nil, store.NewStoreError("element_profile", "get", "corrupt row",
			fmt.Errorf("%w: unknown element %q", store.ErrInvalidEntity, element))
	}
	p.Element = e
	p.Season = bazi.Season(season)
	p.Strength = bazi.Strength(level)
	return &p, nil
}

// Delete implements store.ProfileStore.
func (s *PostgresProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM element_profiles WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return store.NewStoreError("element_profile", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrProfileNotFound); err != nil {
		return err
	}

	log.Info("element profile deleted", slog.String("user_id", userID.String()))
	return nil
}
