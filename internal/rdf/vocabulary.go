// Package rdf provides the vocabulary IRIs and the triple model used when
// exporting dataset descriptions as RDF text at the API boundary.
package rdf

// Namespace IRIs for the vocabularies this service emits.
//
// References:
// - Schema.org: https://schema.org/
// - DCAT: https://www.w3.org/TR/vocab-dcat-3/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
// - FOAF: http://xmlns.com/foaf/spec/
const (
	SchemaNS  = "https://schema.org/"
	DcatNS    = "http://www.w3.org/ns/dcat#"
	DctermsNS = "http://purl.org/dc/terms/"
	FoafNS    = "http://xmlns.com/foaf/0.1/"
	RdfNS     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XsdNS     = "http://www.w3.org/2001/XMLSchema#"
)

// Schema.org terms.
const (
	SchemaDataset             = SchemaNS + "Dataset"
	SchemaDataDownload        = SchemaNS + "DataDownload"
	SchemaPerson              = SchemaNS + "Person"
	SchemaOrganization        = SchemaNS + "Organization"
	SchemaDefinedTerm         = SchemaNS + "DefinedTerm"
	SchemaName                = SchemaNS + "name"
	SchemaDescription         = SchemaNS + "description"
	SchemaURL                 = SchemaNS + "url"
	SchemaSameAs              = SchemaNS + "sameAs"
	SchemaVersion             = SchemaNS + "version"
	SchemaIsAccessibleForFree = SchemaNS + "isAccessibleForFree"
	SchemaKeywords            = SchemaNS + "keywords"
	SchemaIdentifier          = SchemaNS + "identifier"
	SchemaVariableMeasured    = SchemaNS + "variableMeasured"
	SchemaContributor         = SchemaNS + "contributor"
	SchemaDistribution        = SchemaNS + "distribution"
	SchemaEncodingFormat      = SchemaNS + "encodingFormat"
	SchemaContentSize         = SchemaNS + "contentSize"
	SchemaInDefinedTermSet    = SchemaNS + "inDefinedTermSet"
	SchemaTermCode            = SchemaNS + "termCode"
)

// DCAT / Dublin Core terms used by the DCAT profile.
const (
	DcatDataset      = DcatNS + "Dataset"
	DcatDistribution = DcatNS + "Distribution"
	DcatLandingPage  = DcatNS + "landingPage"
	DcatKeyword      = DcatNS + "keyword"
	DcatMediaType    = DcatNS + "mediaType"
	DcatByteSize     = DcatNS + "byteSize"
	DcatDistProp     = DcatNS + "distribution"

	DctTitle       = DctermsNS + "title"
	DctDescription = DctermsNS + "description"
	DctIdentifier  = DctermsNS + "identifier"
)

// RDF and XSD terms.
const (
	RdfType = RdfNS + "type"

	XsdBoolean = XsdNS + "boolean"
	XsdInteger = XsdNS + "integer"
	XsdDecimal = XsdNS + "decimal"
)

// prefixes maps namespace IRIs to the prefix labels used in Turtle output,
// in declaration order.
var prefixes = []struct {
	Label string
	NS    string
}{
	{"schema", SchemaNS},
	{"dcat", DcatNS},
	{"dct", DctermsNS},
	{"foaf", FoafNS},
	{"rdf", RdfNS},
	{"xsd", XsdNS},
}
