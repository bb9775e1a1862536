package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/store"
)

// MockUserStore is a testify mock of store.UserStore. WithTx returns the
// mock itself unless an expectation is registered for it.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if s, ok := args.Get(0).(store.UserStore); ok {
		return s
	}
	return m
}

// MockProfileStore is a testify mock of store.ProfileStore. WithTx behaves
// as on MockUserStore.
type MockProfileStore struct {
	mock.Mock
}

var _ store.ProfileStore = (*MockProfileStore)(nil)

func (m *MockProfileStore) Upsert(ctx context.Context, profile *domain.ElementProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ElementProfile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.ElementProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	if s, ok := args.Get(0).(store.ProfileStore); ok {
		return s
	}
	return m
}

func hasExpectation(m *mock.Mock, method string) bool {
	for _, c := range m.ExpectedCalls {
		if c.Method == method {
			return true
		}
	}
	return false
}
