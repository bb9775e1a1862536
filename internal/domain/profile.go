package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
)

// Element profile validation errors.
var (
	ErrProfileIDEmpty     = errors.New("profile ID cannot be empty")
	ErrProfileUserIDEmpty = errors.New("profile user ID cannot be empty")
	ErrProfileUnbalanced  = errors.New("profile percentages must sum to 100")
)

// ElementProfile is the persisted summary of a user's chart: the birth data
// it was computed from and the engine output downstream features read.
// There is at most one profile per user.
type ElementProfile struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Birth       bazi.ChartInput    `json:"birth"`
	Pillars     string             `json:"pillars"`
	Percentages bazi.ElementScores `json:"percentages"`
	DayMaster   string             `json:"day_master"`
	Element     bazi.Element       `json:"day_master_element"`
	Season      bazi.Season        `json:"season"`
	Support     float64            `json:"support"`
	Strength    bazi.Strength      `json:"strength"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewElementProfile snapshots chart into a new profile for userID.
func NewElementProfile(userID uuid.UUID, chart bazi.Chart) (*ElementProfile, error) {
	now := time.Now().UTC()
	p := &ElementProfile{
		ID:          uuid.New(),
		UserID:      userID,
		Birth:       chart.Input,
		Pillars:     chart.Pillars.Glyphs(),
		Percentages: chart.Percentages,
		DayMaster:   chart.DayMaster.Stem.Name(),
		Element:     chart.DayMaster.Element,
		Season:      chart.Season,
		Support:     chart.Support,
		Strength:    chart.Strength,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks identifiers and that the stored percentages still satisfy
// the normalization tolerance.
func (p *ElementProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}
	if !p.Element.Valid() {
		return NewValidationError("day_master_element", "unknown element", nil)
	}
	if math.Abs(p.Percentages.Sum()-100) > bazi.PercentTolerance+1e-9 {
		return ErrProfileUnbalanced
	}
	return nil
}
