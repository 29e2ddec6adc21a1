package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"casillero/internal/model"
	"casillero/internal/repository"
	"casillero/internal/service"
)

type MockDecisionService struct {
	mock.Mock
}

func (m *MockDecisionService) ResolveDownload(ctx context.Context, ndetalle string) (string, error) {
	args := m.Called(ctx, ndetalle)
	return args.String(0), args.Error(1)
}

func (m *MockDecisionService) FilterValues(ctx context.Context) (*model.FilterValues, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FilterValues), args.Error(1)
}

func (m *MockDecisionService) Search(ctx context.Context, f repository.SearchFilters, limit, offset int) (*service.SearchResult, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}
