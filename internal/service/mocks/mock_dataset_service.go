package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"datapub/internal/model"
	"datapub/internal/service"
)

type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) Describe(ctx context.Context, id, accept, acceptProfile string) (*service.Rendered, error) {
	args := m.Called(ctx, id, accept, acceptProfile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Rendered), args.Error(1)
}

func (m *MockDatasetService) Download(ctx context.Context, id string, index int) (io.ReadCloser, *model.Distribution, error) {
	args := m.Called(ctx, id, index)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var dist *model.Distribution
	if args.Get(1) != nil {
		dist = args.Get(1).(*model.Distribution)
	}
	return rc, dist, args.Error(2)
}

func (m *MockDatasetService) Ingest(ctx context.Context, ds *model.Dataset) (*model.Dataset, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) AddDistribution(ctx context.Context, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Dataset, error) {
	args := m.Called(ctx, id, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) List(ctx context.Context, limit, offset int) (*service.DatasetListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DatasetListResult), args.Error(1)
}

func (m *MockDatasetService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
