package representation

import (
	"fmt"

	"datapub/internal/model"
	"datapub/internal/rdf"
)

// Build projects a dataset into the abstract document for the given profile.
// It is a pure function; the same dataset and profile always produce the
// same Doc. Serializers never need to know which profile produced a Doc.
func Build(ds *model.Dataset, profile Profile) (*Doc, error) {
	switch profile {
	case ProfileSchemaOrg:
		return buildSchemaOrg(ds)
	case ProfileDCAT:
		return buildDCAT(ds)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}
}

func buildSchemaOrg(ds *model.Dataset) (*Doc, error) {
	if ds.Name == "" || ds.URL == "" {
		return nil, fmt.Errorf("%w: schema.org requires name and url", ErrUnrenderable)
	}

	doc := &Doc{ID: ds.URL, Type: rdf.SchemaDataset, TypeName: "Dataset"}
	add := func(name, iri string, v Value) {
		doc.Props = append(doc.Props, Prop{Name: name, IRI: iri, Value: v})
	}

	add("name", rdf.SchemaName, Text(ds.Name))
	if ds.Description != "" {
		add("description", rdf.SchemaDescription, Text(ds.Description))
	}
	add("url", rdf.SchemaURL, IRI(ds.URL))
	if ds.SameAs != "" {
		add("sameAs", rdf.SchemaSameAs, IRI(ds.SameAs))
	}
	if ds.Version != "" {
		add("version", rdf.SchemaVersion, Text(ds.Version))
	}
	if ds.IsAccessibleForFree != nil {
		add("isAccessibleForFree", rdf.SchemaIsAccessibleForFree, Flag(*ds.IsAccessibleForFree))
	}
	if kw := keywordList(ds); len(kw) > 0 {
		add("keywords", rdf.SchemaKeywords, kw)
	}
	if ds.Identifier != nil {
		add("identifier", rdf.SchemaIdentifier, identifierValue(ds))
	}
	if ds.VariableMeasured != "" {
		add("variableMeasured", rdf.SchemaVariableMeasured, Text(ds.VariableMeasured))
	}
	if nodes := contributorNodes(ds); len(nodes) > 0 {
		add("contributor", rdf.SchemaContributor, nodes)
	}
	if nodes := distributionNodes(ds); len(nodes) > 0 {
		add("distribution", rdf.SchemaDistribution, nodes)
	}
	return doc, nil
}

// buildDCAT projects the narrower DCAT field set. Contributors are omitted:
// DCAT models agents through FOAF and this profile does not carry them.
func buildDCAT(ds *model.Dataset) (*Doc, error) {
	if ds.Name == "" || ds.URL == "" {
		return nil, fmt.Errorf("%w: dcat requires title and landing page", ErrUnrenderable)
	}

	doc := &Doc{ID: ds.URL, Type: rdf.DcatDataset, TypeName: "dcat:Dataset"}
	add := func(name, iri string, v Value) {
		doc.Props = append(doc.Props, Prop{Name: name, IRI: iri, Value: v})
	}

	add("dct:title", rdf.DctTitle, Text(ds.Name))
	if ds.Description != "" {
		add("dct:description", rdf.DctDescription, Text(ds.Description))
	}
	add("dcat:landingPage", rdf.DcatLandingPage, IRI(ds.URL))
	if kw := plainKeywordList(ds); len(kw) > 0 {
		add("dcat:keyword", rdf.DcatKeyword, kw)
	}
	if ds.Identifier != nil {
		add("dct:identifier", rdf.DctIdentifier, Text(ds.Identifier.Value))
	}

	var dists List
	for i, d := range ds.Distributions {
		node := &Node{
			ID:       fragmentID(ds.URL, "distribution", i),
			Type:     rdf.DcatDistribution,
			TypeName: "dcat:Distribution",
			Props: []Prop{
				{Name: "dcat:mediaType", IRI: rdf.DcatMediaType, Value: Text(d.MediaType)},
			},
		}
		if d.Filename != "" {
			node.Props = append(node.Props, Prop{Name: "dct:title", IRI: rdf.DctTitle, Value: Text(d.Filename)})
		}
		if d.ContentSize > 0 {
			node.Props = append(node.Props, Prop{Name: "dcat:byteSize", IRI: rdf.DcatByteSize, Value: Number(d.ContentSize)})
		}
		dists = append(dists, node)
	}
	if len(dists) > 0 {
		add("dcat:distribution", rdf.DcatDistProp, dists)
	}
	return doc, nil
}

func keywordList(ds *model.Dataset) List {
	var out List
	for i, k := range ds.Keywords {
		if k.Defined == nil {
			out = append(out, Text(k.Term))
			continue
		}
		id := k.Defined.URL
		if id == "" {
			id = fragmentID(ds.URL, "keyword", i)
		}
		node := &Node{
			ID:       id,
			Type:     rdf.SchemaDefinedTerm,
			TypeName: "DefinedTerm",
			Props: []Prop{
				{Name: "name", IRI: rdf.SchemaName, Value: Text(k.Defined.Name)},
				{Name: "inDefinedTermSet", IRI: rdf.SchemaInDefinedTermSet, Value: IRI(k.Defined.InDefinedTermSet)},
			},
		}
		if k.Defined.TermCode != "" {
			node.Props = append(node.Props, Prop{Name: "termCode", IRI: rdf.SchemaTermCode, Value: Text(k.Defined.TermCode)})
		}
		out = append(out, node)
	}
	return out
}

func plainKeywordList(ds *model.Dataset) List {
	var out List
	for _, k := range ds.Keywords {
		if k.Defined != nil {
			out = append(out, Text(k.Defined.Name))
		} else {
			out = append(out, Text(k.Term))
		}
	}
	return out
}

func identifierValue(ds *model.Dataset) Value {
	id := ds.Identifier
	if id.PropertyID == "" {
		return Text(id.Value)
	}
	return &Node{
		ID:       fragmentID(ds.URL, "identifier", 0),
		Type:     rdf.SchemaNS + "PropertyValue",
		TypeName: "PropertyValue",
		Props: []Prop{
			{Name: "propertyID", IRI: rdf.SchemaNS + "propertyID", Value: Text(id.PropertyID)},
			{Name: "value", IRI: rdf.SchemaNS + "value", Value: Text(id.Value)},
		},
	}
}

func contributorNodes(ds *model.Dataset) List {
	var out List
	for i, c := range ds.Contributors {
		typ, typeName := rdf.SchemaPerson, "Person"
		if c.Organization {
			typ, typeName = rdf.SchemaOrganization, "Organization"
		}
		id := c.ORCID
		if id == "" {
			id = c.ROR
		}
		if id == "" {
			id = fragmentID(ds.URL, "contributor", i)
		}
		node := &Node{
			ID:       id,
			Type:     typ,
			TypeName: typeName,
			Props: []Prop{
				{Name: "name", IRI: rdf.SchemaName, Value: Text(c.Name)},
			},
		}
		if pid := firstNonEmpty(c.ORCID, c.ROR); pid != "" {
			node.Props = append(node.Props, Prop{Name: "sameAs", IRI: rdf.SchemaSameAs, Value: IRI(pid)})
		}
		out = append(out, node)
	}
	return out
}

func distributionNodes(ds *model.Dataset) List {
	var out List
	for i, d := range ds.Distributions {
		node := &Node{
			ID:       fragmentID(ds.URL, "distribution", i),
			Type:     rdf.SchemaDataDownload,
			TypeName: "DataDownload",
			Props: []Prop{
				{Name: "encodingFormat", IRI: rdf.SchemaEncodingFormat, Value: Text(d.MediaType)},
			},
		}
		if d.Filename != "" {
			node.Props = append(node.Props, Prop{Name: "name", IRI: rdf.SchemaName, Value: Text(d.Filename)})
		}
		if d.ContentSize > 0 {
			node.Props = append(node.Props, Prop{Name: "contentSize", IRI: rdf.SchemaContentSize, Value: Number(d.ContentSize)})
		}
		out = append(out, node)
	}
	return out
}

// fragmentID derives a stable IRI for a nested entity with no identifier of
// its own, keeping the triple projection free of blank nodes.
func fragmentID(base, kind string, i int) string {
	return fmt.Sprintf("%s#%s-%d", base, kind, i)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
