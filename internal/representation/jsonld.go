package representation

import (
	"encoding/json"
	"fmt"
)

// JSONLD renders a Doc as a JSON-LD document. The context is referenced by
// URL rather than inlined so responses stay small and the context document
// stays independently cacheable. encoding/json sorts object keys, so output
// bytes are deterministic for a given Doc; the HTML serializer relies on
// that when embedding this output verbatim.
func JSONLD(doc *Doc, contextURL string) ([]byte, error) {
	m := nodeObject((*Node)(doc))
	m["@context"] = contextURL
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonld marshal: %w", err)
	}
	return b, nil
}

func nodeObject(n *Node) map[string]any {
	m := make(map[string]any, len(n.Props)+3)
	if n.ID != "" {
		m["@id"] = n.ID
	}
	m["@type"] = n.TypeName
	for _, p := range n.Props {
		m[p.Name] = jsonValue(p.Value)
	}
	return m
}

func jsonValue(v Value) any {
	switch v := v.(type) {
	case Text:
		return string(v)
	case Flag:
		return bool(v)
	case Number:
		return int64(v)
	case IRI:
		return string(v)
	case List:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = jsonValue(e)
		}
		return out
	case *Node:
		return nodeObject(v)
	default:
		return nil
	}
}
