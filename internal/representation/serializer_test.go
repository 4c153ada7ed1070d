package representation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datapub/internal/rdf"
)

const testContextURL = "http://example.com/context.jsonld"

func TestJSONLD(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	b, err := JSONLD(doc, testContextURL)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Equal(t, testContextURL, m["@context"])
	assert.Equal(t, "Dataset", m["@type"])
	assert.Equal(t, "http://example.com/datasets/42", m["@id"])
	assert.Equal(t, "Test Dataset", m["name"])
	// Native JSON types, not stringified.
	assert.Equal(t, true, m["isAccessibleForFree"])

	dists := m["distribution"].([]any)
	dist := dists[0].(map[string]any)
	assert.Equal(t, "DataDownload", dist["@type"])
	assert.Equal(t, float64(2048), dist["contentSize"])
}

func TestJSONLDDeterministic(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	a, err := JSONLD(doc, testContextURL)
	require.NoError(t, err)
	b, err := JSONLD(doc, testContextURL)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTurtle(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	b, err := Turtle(doc)
	require.NoError(t, err)
	out := string(b)

	assert.Contains(t, out, "<http://example.com/datasets/42> rdf:type schema:Dataset")
	assert.Contains(t, out, `schema:name "Test Dataset"`)
	assert.Contains(t, out, `schema:isAccessibleForFree "true"^^xsd:boolean`)
	assert.Contains(t, out, "schema:contributor <https://orcid.org/0000-0002-1825-0097>")
	assert.Contains(t, out, "<http://example.com/datasets/42#distribution-0> rdf:type schema:DataDownload")
}

// Both serializers must be lossless projections of the same Doc: every
// literal and IRI in the triple set also appears in the JSON-LD document,
// modulo literal-vs-URL typing.
func TestJSONLDTurtleEquivalence(t *testing.T) {
	for _, profile := range []Profile{ProfileSchemaOrg, ProfileDCAT} {
		doc, err := Build(fixtureDataset(), profile)
		require.NoError(t, err)

		jsonld, err := JSONLD(doc, testContextURL)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(jsonld, &m))
		jsonScalars := collectScalars(m)

		for _, triple := range Triples(doc) {
			if triple.Predicate == rdf.RdfType {
				// Types appear as compact names in JSON; checked separately.
				continue
			}
			want := triple.Object.Literal
			if want == "" {
				want = triple.Object.IRI
			}
			assert.Contains(t, jsonScalars, want,
				"profile %s: triple %s %s missing from JSON-LD", profile, triple.Predicate, want)
		}
	}
}

// collectScalars flattens every scalar value in a decoded JSON document into
// a comparable string set.
func collectScalars(v any) map[string]bool {
	out := make(map[string]bool)
	var walk func(any)
	walk = func(v any) {
		switch v := v.(type) {
		case string:
			out[v] = true
		case bool:
			if v {
				out["true"] = true
			} else {
				out["false"] = true
			}
		case float64:
			out[strconvF(v)] = true
		case []any:
			for _, e := range v {
				walk(e)
			}
		case map[string]any:
			for _, e := range v {
				walk(e)
			}
		}
	}
	walk(v)
	return out
}

func strconvF(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func TestHTMLEmbedsJSONLDVerbatim(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	jsonld, err := JSONLD(doc, testContextURL)
	require.NoError(t, err)

	html, err := HTML(doc, testContextURL)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(html, jsonld), "structured-data block must be byte-identical to the JSON-LD output")
	assert.Contains(t, string(html), "<h1>Test Dataset</h1>")
	assert.Contains(t, string(html), `<script type="application/ld+json">`)
}

func TestSerializeDispatch(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	for _, mt := range []string{MediaJSONLD, MediaTurtle, MediaHTML} {
		b, err := Serialize(doc, mt, testContextURL)
		require.NoError(t, err, mt)
		assert.NotEmpty(t, b)
	}

	_, err = Serialize(doc, "application/unsupported+type", testContextURL)
	assert.Error(t, err)
}
