// Package contextdoc holds the shared JSON-LD context document and its cache
// validation state. The document is write-once: content and entity tag are
// fixed at construction and only change on deliberate republish (in practice
// a process restart), so concurrent reads need no synchronization.
package contextdoc

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is an immutable blob with its entity tag and caching policy.
type Document struct {
	body   []byte
	etag   string
	maxAge int
}

// New builds a Document from the given bytes. The entity tag is derived from
// the content, so equal bytes always carry equal tags. maxAge is the
// freshness window in seconds advertised via Cache-Control.
func New(body []byte, maxAge int) *Document {
	sum := sha256.Sum256(body)
	return &Document{
		body:   body,
		etag:   `"` + hex.EncodeToString(sum[:16]) + `"`,
		maxAge: maxAge,
	}
}

// Default returns the context document this service ships: term mappings for
// the schema.org profile plus prefix declarations for the DCAT profile.
func Default(maxAge int) *Document {
	ctx := map[string]any{
		"@context": map[string]any{
			"schema": "https://schema.org/",
			"dcat":   "http://www.w3.org/ns/dcat#",
			"dct":    "http://purl.org/dc/terms/",

			"Dataset":       "schema:Dataset",
			"DataDownload":  "schema:DataDownload",
			"Person":        "schema:Person",
			"Organization":  "schema:Organization",
			"DefinedTerm":   "schema:DefinedTerm",
			"PropertyValue": "schema:PropertyValue",

			"name":                "schema:name",
			"description":         "schema:description",
			"url":                 map[string]any{"@id": "schema:url", "@type": "@id"},
			"sameAs":              map[string]any{"@id": "schema:sameAs", "@type": "@id"},
			"version":             "schema:version",
			"isAccessibleForFree": "schema:isAccessibleForFree",
			"keywords":            "schema:keywords",
			"identifier":          "schema:identifier",
			"variableMeasured":    "schema:variableMeasured",
			"contributor":         "schema:contributor",
			"distribution":        "schema:distribution",
			"encodingFormat":      "schema:encodingFormat",
			"contentSize":         "schema:contentSize",
			"inDefinedTermSet":    map[string]any{"@id": "schema:inDefinedTermSet", "@type": "@id"},
			"termCode":            "schema:termCode",
			"propertyID":          "schema:propertyID",
			"value":               "schema:value",
		},
	}
	body, err := json.Marshal(ctx)
	if err != nil {
		// The literal above always marshals; a failure is a programming error.
		panic(fmt.Sprintf("contextdoc: %v", err))
	}
	return New(body, maxAge)
}

// Body returns the document bytes. Callers must not mutate them.
func (d *Document) Body() []byte { return d.body }

// ETag returns the quoted entity tag.
func (d *Document) ETag() string { return d.etag }

// CacheControl returns the caching directive advertising public
// cacheability with the configured freshness window.
func (d *Document) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", d.maxAge)
}

// Matches reports whether an If-None-Match header value revalidates this
// document. Weak comparison applies: a W/ prefix is ignored, and "*" matches
// any representation.
func (d *Document) Matches(ifNoneMatch string) bool {
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == d.etag {
			return true
		}
	}
	return false
}
