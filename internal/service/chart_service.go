package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
	"github.com/phrazzld/bazi-api/internal/platform/logger"
	"github.com/phrazzld/bazi-api/internal/report"
	"github.com/phrazzld/bazi-api/internal/store"
)

// ChartService computes charts and manages the element profile of each
// user.
type ChartService interface {
	// Compute returns the chart for in. Invalid input fails with a
	// *bazi.ValidationError.
	Compute(ctx context.Context, in bazi.ChartInput) (bazi.Chart, error)

	// SaveProfile computes the chart for in and stores it as the user's
	// profile, replacing any previous one.
	SaveProfile(ctx context.Context, userID uuid.UUID, in bazi.ChartInput) (*domain.ElementProfile, error)

	// GetProfile returns the user's stored profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error)

	// DeleteProfile removes the user's stored profile.
	DeleteProfile(ctx context.Context, userID uuid.UUID) error

	// Advice returns diet and exercise advice for the stored profile.
	Advice(ctx context.Context, userID uuid.UUID) (wellness.Advice, error)

	// DailyBalance scores date against the stored profile.
	DailyBalance(ctx context.Context, userID uuid.UUID, date time.Time) (wellness.Daily, error)

	// Reading narrates the chart of the stored profile.
	Reading(ctx context.Context, userID uuid.UUID) (report.Reading, error)
}

// ChartServiceConfig holds the dependencies of ChartService.
type ChartServiceConfig struct {
	Engine   *bazi.Engine
	DB       *sql.DB
	Users    store.UserStore
	Profiles store.ProfileStore
	// Narrator is optional; the template reading is used without one and
	// whenever it fails.
	Narrator  report.Narrator
	CacheSize int
	Logger    *slog.Logger
}

type chartService struct {
	engine   *bazi.Engine
	db       *sql.DB
	users    store.UserStore
	profiles store.ProfileStore
	narrator report.Narrator
	memo     *chartMemo
	logger   *slog.Logger
}

// NewChartService creates a ChartService.
func NewChartService(cfg ChartServiceConfig) (ChartService, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if cfg.DB == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if cfg.Users == nil || cfg.Profiles == nil {
		return nil, fmt.Errorf("user and profile stores cannot be nil")
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("cache size cannot be negative, got %d", cfg.CacheSize)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &chartService{
		engine:   cfg.Engine,
		db:       cfg.DB,
		users:    cfg.Users,
		profiles: cfg.Profiles,
		narrator: cfg.Narrator,
		memo:     newChartMemo(cfg.CacheSize),
		logger:   log.With(slog.String("component", "chart_service")),
	}, nil
}

func (s *chartService) Compute(ctx context.Context, in bazi.ChartInput) (bazi.Chart, error) {
	if c, ok := s.memo.get(in); ok {
		return c, nil
	}

	chart, err := s.engine.Calculate(in)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("chart calculation rejected",
			slog.String("input", in.String()),
			slog.String("error", err.Error()))
		return bazi.Chart{}, err
	}

	s.memo.put(in, chart)
	return chart, nil
}

func (s *chartService) SaveProfile(ctx context.Context, userID uuid.UUID, in bazi.ChartInput) (*domain.ElementProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	chart, err := s.Compute(ctx, in)
	if err != nil {
		return nil, err
	}
	profile, err := domain.NewElementProfile(userID, chart)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Upsert(ctx, profile)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save element profile: %w", err)
	}

	log.Info("element profile saved",
		slog.String("user_id", userID.String()),
		slog.String("day_master", profile.DayMaster),
		slog.String("strength", string(profile.Strength)))
	return profile, nil
}

func (s *chartService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get element profile: %w", err)
	}
	return p, nil
}

func (s *chartService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete element profile: %w", err)
	}
	return nil
}

func (s *chartService) Advice(ctx context.Context, userID uuid.UUID) (wellness.Advice, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return wellness.Advice{}, err
	}
	return wellness.Recommend(wellness.Classify(p.Percentages)), nil
}

func (s *chartService) DailyBalance(ctx context.Context, userID uuid.UUID, date time.Time) (wellness.Daily, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return wellness.Daily{}, err
	}
	return wellness.DailyBalance(p.Percentages, date)
}

func (s *chartService) Reading(ctx context.Context, userID uuid.UUID) (report.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return report.Reading{}, err
	}
	chart, err := s.Compute(ctx, p.Birth)
	if err != nil {
		return report.Reading{}, fmt.Errorf("failed to recompute stored chart: %w", err)
	}
	req := report.NewReadingRequest(chart)

	if s.narrator != nil {
		text, err := s.narrator.Narrate(ctx, req)
		if err == nil {
			return report.Reading{Source: report.SourceModel, Text: text}, nil
		}
		if ctx.Err() != nil {
			return report.Reading{}, ctx.Err()
		}
		log.Warn("narrator failed, falling back to template reading",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	text, err := report.TemplateNarrator{}.Narrate(ctx, req)
	if err != nil {
		return report.Reading{}, err
	}
	return report.Reading{Source: report.SourceTemplate, Text: text}, nil
}
