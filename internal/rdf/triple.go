package rdf

import (
	"fmt"
	"strings"
)

// Term is one RDF term: either an IRI reference or a literal with an
// optional datatype. Exactly one of IRI and Literal is meaningful.
type Term struct {
	IRI      string
	Literal  string
	Datatype string
}

// IRIRef returns an IRI term.
func IRIRef(iri string) Term { return Term{IRI: iri} }

// String returns a plain string literal term.
func String(v string) Term { return Term{Literal: v} }

// Bool returns an xsd:boolean literal term.
func Bool(v bool) Term {
	if v {
		return Term{Literal: "true", Datatype: XsdBoolean}
	}
	return Term{Literal: "false", Datatype: XsdBoolean}
}

// Int returns an xsd:integer literal term.
func Int(v int64) Term {
	return Term{Literal: fmt.Sprintf("%d", v), Datatype: XsdInteger}
}

// Triple is one fact: subject and predicate are IRIs, the object is a term.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Turtle renders a triple set as a Turtle document with prefix declarations.
// Triples are grouped by subject in first-appearance order and predicates
// keep their input order, so rendering is deterministic for a given input.
func Turtle(triples []Triple) string {
	var b strings.Builder

	used := usedNamespaces(triples)
	for _, p := range prefixes {
		if used[p.NS] {
			fmt.Fprintf(&b, "@prefix %s: <%s> .\n", p.Label, p.NS)
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	subjects, bySubject := groupBySubject(triples)
	for i, s := range subjects {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTerm(Term{IRI: s}))
		group := bySubject[s]
		for j, t := range group {
			if j == 0 {
				b.WriteString(" ")
			} else {
				b.WriteString(" ;\n    ")
			}
			b.WriteString(renderTerm(Term{IRI: t.Predicate}))
			b.WriteString(" ")
			b.WriteString(renderTerm(t.Object))
		}
		b.WriteString(" .\n")
	}
	return b.String()
}

func groupBySubject(triples []Triple) ([]string, map[string][]Triple) {
	var order []string
	grouped := make(map[string][]Triple, len(triples))
	for _, t := range triples {
		if _, ok := grouped[t.Subject]; !ok {
			order = append(order, t.Subject)
		}
		grouped[t.Subject] = append(grouped[t.Subject], t)
	}
	return order, grouped
}

func usedNamespaces(triples []Triple) map[string]bool {
	used := make(map[string]bool)
	mark := func(iri string) {
		for _, p := range prefixes {
			if local, ok := strings.CutPrefix(iri, p.NS); ok && isLocalName(local) {
				used[p.NS] = true
				return
			}
		}
	}
	for _, t := range triples {
		mark(t.Predicate)
		if t.Object.IRI != "" {
			mark(t.Object.IRI)
		}
		if t.Object.Datatype != "" {
			mark(t.Object.Datatype)
		}
	}
	return used
}

// renderTerm writes a term in Turtle syntax, compressing IRIs to prefixed
// names where a declared namespace matches.
func renderTerm(t Term) string {
	if t.IRI != "" {
		for _, p := range prefixes {
			if local, ok := strings.CutPrefix(t.IRI, p.NS); ok && isLocalName(local) {
				return p.Label + ":" + local
			}
		}
		return "<" + t.IRI + ">"
	}
	lit := `"` + escapeLiteral(t.Literal) + `"`
	if t.Datatype != "" {
		return lit + "^^" + renderTerm(Term{IRI: t.Datatype})
	}
	return lit
}

// isLocalName reports whether the remainder after a namespace prefix is a
// usable Turtle local name. Slashes or hashes mean the namespace only
// matched part of a deeper path, so the IRI must stay fully written.
func isLocalName(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/#:")
}

func escapeLiteral(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}
