package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"datapub/internal/model"
	"datapub/internal/repository"
)

// DatasetPostgres is a PostgreSQL implementation of
// repository.DatasetRepository. It uses database/sql with parameterized
// queries; the structured metadata fields (keywords, identifier,
// contributors, distributions) live in JSONB columns and round-trip through
// the model's JSON shapes.
type DatasetPostgres struct {
	db *sql.DB
}

// NewDatasetPostgres creates a new DatasetPostgres repository.
func NewDatasetPostgres(db *sql.DB) *DatasetPostgres {
	return &DatasetPostgres{db: db}
}

var _ repository.DatasetRepository = (*DatasetPostgres)(nil)

const datasetColumns = `id, name, description, url, same_as, version, accessible_for_free,
		keywords, identifier, variable_measured, contributors, distributions, created_at`

// Create inserts a new dataset row and returns the stored record.
func (r *DatasetPostgres) Create(ctx context.Context, ds *model.Dataset) (*model.Dataset, error) {
	const q = `
		INSERT INTO datasets (` + datasetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + datasetColumns

	keywords, identifier, contributors, distributions, err := marshalJSONB(ds)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, q,
		ds.ID,
		ds.Name,
		ds.Description,
		ds.URL,
		ds.SameAs,
		ds.Version,
		nullBool(ds.IsAccessibleForFree),
		keywords,
		identifier,
		ds.VariableMeasured,
		contributors,
		distributions,
		ds.CreatedAt,
	)
	return scanDataset(row)
}

// FindByID fetches a single dataset by its ID.
func (r *DatasetPostgres) FindByID(ctx context.Context, id string) (*model.Dataset, error) {
	const q = `
		SELECT ` + datasetColumns + `
		FROM datasets
		WHERE id = $1
	`
	return scanDataset(r.db.QueryRowContext(ctx, q, id))
}

// List returns datasets using LIMIT/OFFSET pagination and a total count.
func (r *DatasetPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Dataset], error) {
	const qCount = `SELECT COUNT(*) FROM datasets`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + datasetColumns + `
		FROM datasets
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Dataset, 0)
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Dataset]{
		Items: items,
		Total: total,
	}, nil
}

// SetDistributions replaces the dataset's distributions column. sql.ErrNoRows
// is returned when the dataset does not exist.
func (r *DatasetPostgres) SetDistributions(ctx context.Context, id string, dists []model.Distribution) error {
	const q = `UPDATE datasets SET distributions = $2 WHERE id = $1`
	b, err := json.Marshal(dists)
	if err != nil {
		return fmt.Errorf("marshal distributions: %w", err)
	}
	res, err := r.db.ExecContext(ctx, q, id, b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a dataset by ID. It does not return an error if the row does not exist.
func (r *DatasetPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM datasets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*model.Dataset, error) {
	var (
		ds            model.Dataset
		free          sql.NullBool
		keywords      []byte
		identifier    []byte
		contributors  []byte
		distributions []byte
	)
	if err := row.Scan(
		&ds.ID,
		&ds.Name,
		&ds.Description,
		&ds.URL,
		&ds.SameAs,
		&ds.Version,
		&free,
		&keywords,
		&identifier,
		&ds.VariableMeasured,
		&contributors,
		&distributions,
		&ds.CreatedAt,
	); err != nil {
		return nil, err
	}
	if free.Valid {
		v := free.Bool
		ds.IsAccessibleForFree = &v
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &ds.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	if len(identifier) > 0 {
		ds.Identifier = &model.Identifier{}
		if err := json.Unmarshal(identifier, ds.Identifier); err != nil {
			return nil, fmt.Errorf("unmarshal identifier: %w", err)
		}
	}
	if len(contributors) > 0 {
		if err := json.Unmarshal(contributors, &ds.Contributors); err != nil {
			return nil, fmt.Errorf("unmarshal contributors: %w", err)
		}
	}
	if len(distributions) > 0 {
		if err := json.Unmarshal(distributions, &ds.Distributions); err != nil {
			return nil, fmt.Errorf("unmarshal distributions: %w", err)
		}
	}
	return &ds, nil
}

func marshalJSONB(ds *model.Dataset) (keywords, identifier, contributors, distributions []byte, err error) {
	if len(ds.Keywords) > 0 {
		if keywords, err = json.Marshal(ds.Keywords); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal keywords: %w", err)
		}
	}
	if ds.Identifier != nil {
		if identifier, err = json.Marshal(ds.Identifier); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal identifier: %w", err)
		}
	}
	if len(ds.Contributors) > 0 {
		if contributors, err = json.Marshal(ds.Contributors); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal contributors: %w", err)
		}
	}
	if len(ds.Distributions) > 0 {
		if distributions, err = json.Marshal(ds.Distributions); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal distributions: %w", err)
		}
	}
	return keywords, identifier, contributors, distributions, nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
