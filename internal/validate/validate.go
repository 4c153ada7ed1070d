// Package validate checks dataset metadata on the ingest path. The validator
// is an explicit, swappable pass over the plain model struct so the serving
// path stays decoupled from any particular validation engine.
package validate

import (
	"fmt"

	"datapub/internal/model"
)

// Result is the outcome of a validation pass.
type Result struct {
	Valid    bool
	Problems []string
}

// Validator checks a dataset's metadata before it is persisted.
type Validator interface {
	Check(ds *model.Dataset) Result
}

// MetadataValidator enforces the core model invariants.
type MetadataValidator struct{}

// NewMetadataValidator returns the default validator.
func NewMetadataValidator() *MetadataValidator { return &MetadataValidator{} }

var _ Validator = (*MetadataValidator)(nil)

// Check verifies the invariants every published dataset must satisfy:
// a non-empty name, an identifier when claimed, and a declared media type
// on every distribution.
func (v *MetadataValidator) Check(ds *model.Dataset) Result {
	var problems []string

	if ds.Name == "" {
		problems = append(problems, "name must not be empty")
	}
	if ds.URL == "" {
		problems = append(problems, "url must not be empty")
	}
	if ds.Identifier != nil && ds.Identifier.Value == "" {
		problems = append(problems, "identifier value must not be empty")
	}
	for i, k := range ds.Keywords {
		if k.Defined != nil {
			if k.Defined.Name == "" || k.Defined.InDefinedTermSet == "" {
				problems = append(problems, fmt.Sprintf("keyword %d: defined term requires name and term set", i))
			}
		} else if k.Term == "" {
			problems = append(problems, fmt.Sprintf("keyword %d: term must not be empty", i))
		}
	}
	for i, c := range ds.Contributors {
		if c.Name == "" {
			problems = append(problems, fmt.Sprintf("contributor %d: name must not be empty", i))
		}
	}
	for i, d := range ds.Distributions {
		if d.MediaType == "" {
			problems = append(problems, fmt.Sprintf("distribution %d: media type must not be empty", i))
		}
	}

	return Result{Valid: len(problems) == 0, Problems: problems}
}
