package representation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datapub/internal/model"
	"datapub/internal/rdf"
)

func boolPtr(b bool) *bool { return &b }

func fixtureDataset() *model.Dataset {
	return &model.Dataset{
		ID:                  "42",
		Name:                "Test Dataset",
		Description:         "This is a test dataset",
		URL:                 "http://example.com/datasets/42",
		SameAs:              "http://example.com/datasets/42",
		Version:             "1.0",
		IsAccessibleForFree: boolPtr(true),
		Keywords: []model.Keyword{
			{Term: "test"},
			{Defined: &model.DefinedTerm{
				Name:             "Precipitation",
				InDefinedTermSet: "https://vocab.example.org/params",
				TermCode:         "PRCP",
			}},
		},
		Identifier:       &model.Identifier{Value: "doi:10.1000/test"},
		VariableMeasured: "Test variable",
		Contributors: []model.Contributor{
			{Name: "Ada Example", ORCID: "https://orcid.org/0000-0002-1825-0097"},
			{Name: "Example Lab", Organization: true, ROR: "https://ror.org/05gq02987"},
		},
		Distributions: []model.Distribution{
			{MediaType: "text/csv", ContentSize: 2048, StoragePath: "datasets/42/data.csv", Filename: "data.csv"},
		},
	}
}

func TestBuildSchemaOrg(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/datasets/42", doc.ID)
	assert.Equal(t, rdf.SchemaDataset, doc.Type)
	assert.Equal(t, "Dataset", doc.TypeName)

	byName := propIndex(doc)
	assert.Equal(t, Text("Test Dataset"), byName["name"])
	assert.Equal(t, IRI("http://example.com/datasets/42"), byName["url"])
	assert.Equal(t, Flag(true), byName["isAccessibleForFree"])
	assert.Equal(t, Text("doi:10.1000/test"), byName["identifier"])

	kw, ok := byName["keywords"].(List)
	require.True(t, ok)
	require.Len(t, kw, 2)
	assert.Equal(t, Text("test"), kw[0])
	term, ok := kw[1].(*Node)
	require.True(t, ok)
	assert.Equal(t, "DefinedTerm", term.TypeName)

	contribs, ok := byName["contributor"].(List)
	require.True(t, ok)
	require.Len(t, contribs, 2)
	person := contribs[0].(*Node)
	assert.Equal(t, "Person", person.TypeName)
	assert.Equal(t, "https://orcid.org/0000-0002-1825-0097", person.ID)
	org := contribs[1].(*Node)
	assert.Equal(t, "Organization", org.TypeName)

	dists, ok := byName["distribution"].(List)
	require.True(t, ok)
	require.Len(t, dists, 1)
	dist := dists[0].(*Node)
	assert.Equal(t, "DataDownload", dist.TypeName)
	assert.Equal(t, "http://example.com/datasets/42#distribution-0", dist.ID)
}

func TestBuildSchemaOrgStructuredIdentifier(t *testing.T) {
	ds := fixtureDataset()
	ds.Identifier = &model.Identifier{PropertyID: "DOI", Value: "10.1000/test"}

	doc, err := Build(ds, ProfileSchemaOrg)
	require.NoError(t, err)

	id, ok := propIndex(doc)["identifier"].(*Node)
	require.True(t, ok)
	assert.Equal(t, "PropertyValue", id.TypeName)
	assert.NotEmpty(t, id.ID)
}

func TestBuildDCAT(t *testing.T) {
	doc, err := Build(fixtureDataset(), ProfileDCAT)
	require.NoError(t, err)

	assert.Equal(t, "dcat:Dataset", doc.TypeName)
	byName := propIndex(doc)
	assert.Equal(t, Text("Test Dataset"), byName["dct:title"])
	assert.Equal(t, IRI("http://example.com/datasets/42"), byName["dcat:landingPage"])

	// Defined terms flatten to their plain name in the DCAT projection.
	kw := byName["dcat:keyword"].(List)
	assert.Equal(t, List{Text("test"), Text("Precipitation")}, kw)

	// No contributor projection in the DCAT profile.
	assert.NotContains(t, byName, "contributor")

	dists := byName["dcat:distribution"].(List)
	dist := dists[0].(*Node)
	assert.Equal(t, "dcat:Distribution", dist.TypeName)
	assert.Equal(t, Text("text/csv"), propIndexNode(dist)["dcat:mediaType"])
	assert.Equal(t, Number(2048), propIndexNode(dist)["dcat:byteSize"])
}

func TestBuildUnrenderable(t *testing.T) {
	ds := fixtureDataset()
	ds.Name = ""

	for _, profile := range []Profile{ProfileSchemaOrg, ProfileDCAT} {
		_, err := Build(ds, profile)
		assert.ErrorIs(t, err, ErrUnrenderable, "profile %s", profile)
	}
}

func TestBuildUnknownProfile(t *testing.T) {
	_, err := Build(fixtureDataset(), Profile("https://example.org/unknown"))
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)
	b, err := Build(fixtureDataset(), ProfileSchemaOrg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func propIndex(doc *Doc) map[string]Value {
	return propIndexNode((*Node)(doc))
}

func propIndexNode(n *Node) map[string]Value {
	m := make(map[string]Value, len(n.Props))
	for _, p := range n.Props {
		m[p.Name] = p.Value
	}
	return m
}
