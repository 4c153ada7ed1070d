package contextdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewETagIsContentDerived(t *testing.T) {
	a := New([]byte(`{"a":1}`), 3600)
	b := New([]byte(`{"a":1}`), 60)
	c := New([]byte(`{"a":2}`), 3600)

	// Same bytes, same tag; different bytes, different tag.
	assert.Equal(t, a.ETag(), b.ETag())
	assert.NotEqual(t, a.ETag(), c.ETag())
	assert.True(t, len(a.ETag()) > 2 && a.ETag()[0] == '"')
}

func TestMatches(t *testing.T) {
	d := New([]byte("body"), 3600)

	tests := []struct {
		name        string
		ifNoneMatch string
		want        bool
	}{
		{"exact", d.ETag(), true},
		{"weak validator", "W/" + d.ETag(), true},
		{"star", "*", true},
		{"in list", `"nope", ` + d.ETag(), true},
		{"mismatch", `"nope"`, false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Matches(tt.ifNoneMatch))
		})
	}
}

func TestMatchesIdempotent(t *testing.T) {
	d := New([]byte("stable"), 3600)
	tag := d.ETag()
	for i := 0; i < 5; i++ {
		assert.True(t, d.Matches(tag))
		assert.Equal(t, tag, d.ETag())
		assert.Equal(t, []byte("stable"), d.Body())
	}
}

func TestCacheControl(t *testing.T) {
	d := New(nil, 86400)
	assert.Equal(t, "public, max-age=86400", d.CacheControl())
}

func TestDefaultDocument(t *testing.T) {
	d := Default(3600)

	var m map[string]map[string]any
	require.NoError(t, json.Unmarshal(d.Body(), &m))

	ctx := m["@context"]
	require.NotNil(t, ctx)
	assert.Equal(t, "schema:name", ctx["name"])
	assert.Equal(t, "https://schema.org/", ctx["schema"])
	assert.Equal(t, "http://www.w3.org/ns/dcat#", ctx["dcat"])
}
