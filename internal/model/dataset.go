package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Dataset is the canonical in-memory description of one published dataset.
// This is a pure domain model with no database-specific dependencies or tags;
// it is read-only from the serving path's perspective and rebuilt by the
// registry per request.
type Dataset struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	URL                 string         `json:"url"`
	SameAs              string         `json:"sameAs,omitempty"`
	Version             string         `json:"version,omitempty"`
	IsAccessibleForFree *bool          `json:"isAccessibleForFree,omitempty"`
	Keywords            []Keyword      `json:"keywords,omitempty"`
	Identifier          *Identifier    `json:"identifier,omitempty"`
	VariableMeasured    string         `json:"variableMeasured,omitempty"`
	Contributors        []Contributor  `json:"contributors,omitempty"`
	Distributions       []Distribution `json:"distributions,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

// DefinedTerm is a keyword drawn from a controlled vocabulary.
type DefinedTerm struct {
	Name             string `json:"name"`
	InDefinedTermSet string `json:"inDefinedTermSet"`
	URL              string `json:"url,omitempty"`
	TermCode         string `json:"termCode,omitempty"`
}

// Keyword is either a plain term or a DefinedTerm reference. Exactly one of
// Term and Defined is set.
type Keyword struct {
	Term    string
	Defined *DefinedTerm
}

// MarshalJSON emits a bare string for plain terms and an object for
// defined terms, matching the schema.org keywords union.
func (k Keyword) MarshalJSON() ([]byte, error) {
	if k.Defined != nil {
		return json.Marshal(k.Defined)
	}
	return json.Marshal(k.Term)
}

// UnmarshalJSON accepts either a string or a DefinedTerm object.
func (k *Keyword) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		k.Defined = nil
		return json.Unmarshal(b, &k.Term)
	}
	var dt DefinedTerm
	if err := json.Unmarshal(b, &dt); err != nil {
		return fmt.Errorf("keyword: %w", err)
	}
	k.Term = ""
	k.Defined = &dt
	return nil
}

// Identifier is a persistent identifier for the dataset. Value holds the
// identifier itself (plain string or URL); PropertyID, when set, names the
// identifier scheme and turns the JSON form into a PropertyValue object.
type Identifier struct {
	PropertyID string
	Value      string
}

type propertyValue struct {
	Type       string `json:"@type"`
	PropertyID string `json:"propertyID,omitempty"`
	Value      string `json:"value"`
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.PropertyID == "" {
		return json.Marshal(i.Value)
	}
	return json.Marshal(propertyValue{Type: "PropertyValue", PropertyID: i.PropertyID, Value: i.Value})
}

func (i *Identifier) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		i.PropertyID = ""
		return json.Unmarshal(b, &i.Value)
	}
	var pv propertyValue
	if err := json.Unmarshal(b, &pv); err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	i.PropertyID = pv.PropertyID
	i.Value = pv.Value
	return nil
}

// Contributor is a person or organization credited on the dataset. ORCID and
// ROR carry the full identifier URL when known; at most one of the two is set.
type Contributor struct {
	Name         string `json:"name"`
	Organization bool   `json:"organization,omitempty"`
	ORCID        string `json:"orcid,omitempty"`
	ROR          string `json:"ror,omitempty"`
}

// Distribution is one downloadable file form of the dataset. The bytes live
// in object storage under StoragePath; the model never holds file content.
type Distribution struct {
	MediaType   string `json:"media_type"`
	ContentSize int64  `json:"content_size,omitempty"`
	StoragePath string `json:"storage_path"`
	Filename    string `json:"filename"`
}

// PID returns the dataset's persistent identifier value, or "" when absent.
func (d *Dataset) PID() string {
	if d.Identifier == nil {
		return ""
	}
	return d.Identifier.Value
}
