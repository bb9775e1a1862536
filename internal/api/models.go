package api

import (
	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/report"
)

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the access token issued at register or login.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// ChartRequest is the birth data of POST /api/charts and PUT /api/profile.
// Fields are pointers so an omitted field is told apart from a zero hour.
// Range checks are left to the engine, which reports the offending field.
type ChartRequest struct {
	Year  *int `json:"year"  validate:"required"`
	Month *int `json:"month" validate:"required"`
	Day   *int `json:"day"   validate:"required"`
	Hour  *int `json:"hour"  validate:"required"`
}

// Input converts a validated request to engine input.
func (r ChartRequest) Input() bazi.ChartInput {
	return bazi.ChartInput{Year: *r.Year, Month: *r.Month, Day: *r.Day, Hour: *r.Hour}
}

// ChartResponse is the computed chart plus its plain-text summary.
type ChartResponse struct {
	report.ChartView
	Text string `json:"text"`
}

func newChartResponse(chart bazi.Chart) ChartResponse {
	return ChartResponse{ChartView: report.NewChartView(chart), Text: report.Text(chart)}
}
