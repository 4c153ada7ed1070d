package mocks

import (
	"context"

	"datapub/internal/model"
	"datapub/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) Create(ctx context.Context, ds *model.Dataset) (*model.Dataset, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetRepository) FindByID(ctx context.Context, id string) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Dataset], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Dataset]), args.Error(1)
}

func (m *MockDatasetRepository) SetDistributions(ctx context.Context, id string, dists []model.Distribution) error {
	args := m.Called(ctx, id, dists)
	return args.Error(0)
}

func (m *MockDatasetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
