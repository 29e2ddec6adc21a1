package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"casillero/internal/model"
	"casillero/internal/repository"
)

type MockDecisionRepository struct {
	mock.Mock
}

func (m *MockDecisionRepository) FindByNDetalle(ctx context.Context, ndetalle string) (*model.Decision, error) {
	args := m.Called(ctx, ndetalle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Decision), args.Error(1)
}

func (m *MockDecisionRepository) FilterValues(ctx context.Context) (*model.FilterValues, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FilterValues), args.Error(1)
}

func (m *MockDecisionRepository) Search(ctx context.Context, f repository.SearchFilters, pq repository.PageQuery) (*repository.PageResult[model.SearchItem], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.SearchItem]), args.Error(1)
}
