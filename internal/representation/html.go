package representation

import (
	"bytes"
	"fmt"
	"html/template"
)

// htmlPage is the minimal human-readable rendering. The structured-data
// block receives the JSON-LD serializer's bytes verbatim; nothing in this
// template re-derives metadata from the Doc.
var htmlPage = template.Must(template.New("dataset").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}}</title>
  <script type="application/ld+json">{{.JSONLD}}</script>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <p><a href="{{.URL}}">{{.URL}}</a></p>
</body>
</html>
`))

// HTML renders the human-readable page with the JSON-LD output embedded as
// an application/ld+json script block. The embedded block is byte-identical
// to what the JSON-LD serializer returns for the same Doc and context URL.
func HTML(doc *Doc, contextURL string) ([]byte, error) {
	jsonld, err := JSONLD(doc, contextURL)
	if err != nil {
		return nil, err
	}

	data := struct {
		Title       string
		Description string
		URL         string
		JSONLD      template.JS
	}{
		Title:       textProp(doc, "name", "dct:title"),
		Description: textProp(doc, "description", "dct:description"),
		URL:         doc.ID,
		// encoding/json escapes <, > and & to \u sequences, so the raw
		// bytes are safe inside a script element.
		JSONLD: template.JS(jsonld),
	}

	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("html render: %w", err)
	}
	return buf.Bytes(), nil
}

func textProp(doc *Doc, names ...string) string {
	for _, p := range doc.Props {
		for _, n := range names {
			if p.Name == n {
				if t, ok := p.Value.(Text); ok {
					return string(t)
				}
			}
		}
	}
	return ""
}

// Serialize dispatches a Doc to the serializer for the given media type and
// returns the response bytes. Unknown media types are a programming error at
// the capability-table level, not a client-visible condition.
func Serialize(doc *Doc, mediaType, contextURL string) ([]byte, error) {
	switch mediaType {
	case MediaJSONLD:
		return JSONLD(doc, contextURL)
	case MediaTurtle:
		return Turtle(doc)
	case MediaHTML:
		return HTML(doc, contextURL)
	default:
		return nil, fmt.Errorf("no serializer for media type %q", mediaType)
	}
}
