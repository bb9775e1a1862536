package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
	"github.com/phrazzld/bazi-api/internal/report"
	"github.com/phrazzld/bazi-api/internal/service"
)

// MockUserService is a testify mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockChartService is a testify mock of service.ChartService.
type MockChartService struct {
	mock.Mock
}

var _ service.ChartService = (*MockChartService)(nil)

func (m *MockChartService) Compute(ctx context.Context, in bazi.ChartInput) (bazi.Chart, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(bazi.Chart)
	return c, args.Error(1)
}

func (m *MockChartService) SaveProfile(
	ctx context.Context,
	userID uuid.UUID,
	in bazi.ChartInput,
) (*domain.ElementProfile, error) {
	args := m.Called(ctx, userID, in)
	if p, ok := args.Get(0).(*domain.ElementProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChartService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.ElementProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChartService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockChartService) Advice(ctx context.Context, userID uuid.UUID) (wellness.Advice, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(wellness.Advice)
	return a, args.Error(1)
}

func (m *MockChartService) DailyBalance(ctx context.Context, userID uuid.UUID, date time.Time) (wellness.Daily, error) {
	args := m.Called(ctx, userID, date)
	d, _ := args.Get(0).(wellness.Daily)
	return d, args.Error(1)
}

func (m *MockChartService) Reading(ctx context.Context, userID uuid.UUID) (report.Reading, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(report.Reading)
	return r, args.Error(1)
}

// MockNarrator is a testify mock of report.Narrator.
type MockNarrator struct {
	mock.Mock
}

var _ report.Narrator = (*MockNarrator)(nil)

func (m *MockNarrator) Narrate(ctx context.Context, req report.ReadingRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
