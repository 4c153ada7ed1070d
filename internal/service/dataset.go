package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"datapub/internal/model"
	"datapub/internal/negotiation"
	"datapub/internal/repository"
	"datapub/internal/representation"
	"datapub/internal/storage"
	"datapub/internal/validate"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrNotFound      = errors.New("dataset not found")
	ErrNotAcceptable = errors.New("no acceptable representation")
	ErrUnrenderable  = errors.New("dataset cannot be rendered in requested profile")
	ErrReaderNil     = errors.New("reader is nil")
)

// ValidationError carries the problems found on the ingest path. It is
// always surfaced to the caller, never downgraded.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Rendered is a successfully negotiated and serialized representation.
type Rendered struct {
	Body      []byte
	MediaType string
	Profile   string
}

// DatasetListResult is the service-level DTO for paginated datasets.
type DatasetListResult struct {
	Items []model.Dataset `json:"data"`
	Total int             `json:"total"`
}

// DatasetService defines the use cases for publishing datasets.
type DatasetService interface {
	// Describe negotiates a representation from the raw Accept and
	// Accept-Profile header values, builds it from the registry's dataset
	// model, and returns the serialized bytes.
	Describe(ctx context.Context, id, accept, acceptProfile string) (*Rendered, error)

	// Download streams the bytes of one distribution. The caller owns the
	// returned reader and must close it.
	Download(ctx context.Context, id string, index int) (io.ReadCloser, *model.Distribution, error)

	// Ingest validates and persists new dataset metadata.
	Ingest(ctx context.Context, ds *model.Dataset) (*model.Dataset, error)

	// AddDistribution uploads distribution content to object storage and
	// records it on the dataset, rolling the upload back if the record
	// cannot be saved.
	AddDistribution(ctx context.Context, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Dataset, error)

	// List returns datasets using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DatasetListResult, error)

	// Delete removes a dataset and its stored distribution objects.
	Delete(ctx context.Context, id string) error
}

// Config holds the publication settings the service needs.
type Config struct {
	// BaseURL mints dataset URLs and the context document reference.
	BaseURL string
}

// datasetService is a concrete implementation of DatasetService.
type datasetService struct {
	store      storage.Storage
	repo       repository.DatasetRepository
	validator  validate.Validator
	resolver   validate.PIDResolver
	table      *negotiation.Table
	baseURL    string
	contextURL string
}

// NewDatasetService constructs a new DatasetService with the standard
// capability table: JSON-LD, Turtle and HTML, schema.org profile first.
func NewDatasetService(store storage.Storage, repo repository.DatasetRepository, v validate.Validator, res validate.PIDResolver, cfg Config) DatasetService {
	base := strings.TrimRight(cfg.BaseURL, "/")
	opts := negotiation.DefaultOptions()
	opts.Aliases = representation.ProfileAliases()
	caps := []negotiation.Capability{
		{MediaType: representation.MediaJSONLD, Profile: string(representation.ProfileSchemaOrg)},
		{MediaType: representation.MediaJSONLD, Profile: string(representation.ProfileDCAT)},
		{MediaType: representation.MediaTurtle, Profile: string(representation.ProfileSchemaOrg)},
		{MediaType: representation.MediaTurtle, Profile: string(representation.ProfileDCAT)},
		{MediaType: representation.MediaHTML, Profile: string(representation.ProfileSchemaOrg)},
	}
	return &datasetService{
		store:      store,
		repo:       repo,
		validator:  v,
		resolver:   res,
		table:      negotiation.NewTable(caps, caps[0], opts),
		baseURL:    base,
		contextURL: base + "/context.jsonld",
	}
}

func (s *datasetService) Describe(ctx context.Context, id, accept, acceptProfile string) (*Rendered, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	// Negotiate before touching the registry so an unacceptable request
	// never costs a fetch.
	sel, err := s.table.Negotiate(accept, acceptProfile)
	if err != nil {
		if errors.Is(err, negotiation.ErrNotAcceptable) {
			return nil, ErrNotAcceptable
		}
		return nil, err
	}

	ds, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := representation.Build(ds, representation.Profile(sel.Profile))
	if err != nil {
		if errors.Is(err, representation.ErrUnrenderable) {
			return nil, fmt.Errorf("%w: %v", ErrUnrenderable, err)
		}
		return nil, err
	}

	body, err := representation.Serialize(doc, sel.MediaType, s.contextURL)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", sel.MediaType, err)
	}

	return &Rendered{Body: body, MediaType: sel.MediaType, Profile: sel.Profile}, nil
}

func (s *datasetService) Download(ctx context.Context, id string, index int) (io.ReadCloser, *model.Distribution, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	ds, err := s.fetch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(ds.Distributions) {
		return nil, nil, fmt.Errorf("%w: distribution %d", ErrNotFound, index)
	}
	dist := ds.Distributions[index]

	rc, _, err := s.store.Get(ctx, dist.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("storage get: %w", err)
	}
	return rc, &dist, nil
}

func (s *datasetService) Ingest(ctx context.Context, ds *model.Dataset) (*model.Dataset, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	if ds.ID == "" {
		ds.ID = uuid.New().String()
	}
	if ds.URL == "" {
		ds.URL = fmt.Sprintf("%s/datasets/%s", s.baseURL, ds.ID)
	}
	if ds.CreatedAt.IsZero() {
		ds.CreatedAt = time.Now().UTC()
	}

	res := s.validator.Check(ds)
	if !res.Valid {
		return nil, &ValidationError{Problems: res.Problems}
	}
	if ds.Identifier != nil && s.resolver != nil {
		if !s.resolver.Verify(ctx, ds.Identifier.Value) {
			return nil, &ValidationError{Problems: []string{"identifier is not a resolvable persistent identifier"}}
		}
	}

	stored, err := s.repo.Create(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *datasetService) AddDistribution(ctx context.Context, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Dataset, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	ds, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("datasets", ds.ID, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	dists := append(ds.Distributions, model.Distribution{
		MediaType:   contentType,
		ContentSize: objInfo.Size,
		StoragePath: objInfo.Key,
		Filename:    originalFilename,
	})
	if err := s.repo.SetDistributions(ctx, ds.ID, dists); err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	ds.Distributions = dists
	return ds, nil
}

func (s *datasetService) List(ctx context.Context, limit, offset int) (*DatasetListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DatasetListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *datasetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ds, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	// Delete stored objects first; if one fails, keep the row so the
	// reference to the remaining objects is not lost.
	for _, dist := range ds.Distributions {
		if err := s.store.Delete(ctx, dist.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// fetch maps the repository's not-found sentinel to the service error and
// fills in the minted dataset URL when the registry row predates it.
func (s *datasetService) fetch(ctx context.Context, id string) (*model.Dataset, error) {
	ds, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ds.URL == "" {
		ds.URL = fmt.Sprintf("%s/datasets/%s", s.baseURL, ds.ID)
	}
	return ds, nil
}
