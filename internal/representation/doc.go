// Package representation maps the dataset model into profile-shaped abstract
// documents and renders them as JSON-LD, Turtle, or HTML. All three outputs
// for a given dataset derive from the same Doc, so they stay projections of
// one set of facts.
package representation

import "errors"

// Profile identifies a vocabulary/structure variant by its canonical URI.
type Profile string

const (
	ProfileSchemaOrg Profile = "https://schema.org/"
	ProfileDCAT      Profile = "http://www.w3.org/ns/dcat#"
)

// ProfileAliases maps shorthand tokens accepted in Accept-Profile headers to
// canonical profile URIs.
func ProfileAliases() map[string]string {
	return map[string]string{
		"schemaorg":  string(ProfileSchemaOrg),
		"schema.org": string(ProfileSchemaOrg),
		"dcat":       string(ProfileDCAT),
	}
}

// Media types this package can serialize.
const (
	MediaJSONLD = "application/ld+json"
	MediaTurtle = "text/turtle"
	MediaHTML   = "text/html"
)

// ErrUnrenderable means the dataset lacks fields the requested profile
// treats as mandatory; callers must not fall back to a partial document.
var ErrUnrenderable = errors.New("dataset cannot be rendered in requested profile")

// ErrUnknownProfile means the profile URI is not one this builder knows.
var ErrUnknownProfile = errors.New("unknown profile")

// Doc is the abstract representation of one entity: an identity, a type tag,
// and an ordered property list. Nested entities appear as Node values.
// TypeName is the compact form used in JSON output (resolved through the
// context document); Type is the full IRI used in RDF.
type Doc struct {
	ID       string
	Type     string
	TypeName string
	Props    []Prop
}

// Prop is one property. Name is the short term used in JSON output (mapped
// through the context document); IRI is the full predicate used in RDF.
type Prop struct {
	Name  string
	IRI   string
	Value Value
}

// Value is a tagged property value.
type Value interface{ isValue() }

// Text is a plain string literal.
type Text string

// Flag is a boolean literal.
type Flag bool

// Number is an integer literal.
type Number int64

// IRI is a reference to another resource by IRI.
type IRI string

// List is an ordered sequence of values.
type List []Value

// Node is a nested entity.
type Node Doc

func (Text) isValue()   {}
func (Flag) isValue()   {}
func (Number) isValue() {}
func (IRI) isValue()    {}
func (List) isValue()   {}
func (*Node) isValue()  {}
