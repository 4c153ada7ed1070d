package repository

import (
	"context"

	"datapub/internal/model"
)

// DatasetRepository is the dataset registry: persistence operations only,
// no rendering or negotiation logic.
type DatasetRepository interface {
	// Create inserts a new dataset record and returns the stored row.
	Create(ctx context.Context, ds *model.Dataset) (*model.Dataset, error)

	// FindByID returns a dataset by its ID.
	FindByID(ctx context.Context, id string) (*model.Dataset, error)

	// List returns a paginated list of datasets and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Dataset], error)

	// SetDistributions replaces the dataset's distribution records.
	SetDistributions(ctx context.Context, id string, dists []model.Distribution) error

	// Delete removes a dataset by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
