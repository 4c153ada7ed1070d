package representation

import (
	"datapub/internal/rdf"
)

// Turtle renders a Doc as RDF text. The triple set is derived from the same
// Doc the JSON-LD serializer consumes, so the two outputs carry the same
// facts by construction.
func Turtle(doc *Doc) ([]byte, error) {
	return []byte(rdf.Turtle(Triples(doc))), nil
}

// Triples flattens a Doc into its triple projection. Nested entities emit
// a reference triple from the parent plus their own statements; list values
// emit one triple per element.
func Triples(doc *Doc) []rdf.Triple {
	return nodeTriples((*Node)(doc))
}

func nodeTriples(n *Node) []rdf.Triple {
	triples := []rdf.Triple{
		{Subject: n.ID, Predicate: rdf.RdfType, Object: rdf.IRIRef(n.Type)},
	}
	var nested []rdf.Triple
	for _, p := range n.Props {
		for _, v := range flatten(p.Value) {
			switch v := v.(type) {
			case Text:
				triples = append(triples, rdf.Triple{Subject: n.ID, Predicate: p.IRI, Object: rdf.String(string(v))})
			case Flag:
				triples = append(triples, rdf.Triple{Subject: n.ID, Predicate: p.IRI, Object: rdf.Bool(bool(v))})
			case Number:
				triples = append(triples, rdf.Triple{Subject: n.ID, Predicate: p.IRI, Object: rdf.Int(int64(v))})
			case IRI:
				triples = append(triples, rdf.Triple{Subject: n.ID, Predicate: p.IRI, Object: rdf.IRIRef(string(v))})
			case *Node:
				triples = append(triples, rdf.Triple{Subject: n.ID, Predicate: p.IRI, Object: rdf.IRIRef(v.ID)})
				nested = append(nested, nodeTriples(v)...)
			}
		}
	}
	return append(triples, nested...)
}

func flatten(v Value) []Value {
	if l, ok := v.(List); ok {
		return l
	}
	return []Value{v}
}
