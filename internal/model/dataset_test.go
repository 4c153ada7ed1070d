package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Keyword
	}{
		{
			name: "plain term",
			in:   `"climate"`,
			want: Keyword{Term: "climate"},
		},
		{
			name: "defined term",
			in:   `{"name":"Precipitation","inDefinedTermSet":"https://vocab.example.org/params","termCode":"PRCP"}`,
			want: Keyword{Defined: &DefinedTerm{
				Name:             "Precipitation",
				InDefinedTermSet: "https://vocab.example.org/params",
				TermCode:         "PRCP",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k Keyword
			require.NoError(t, json.Unmarshal([]byte(tt.in), &k))
			assert.Equal(t, tt.want, k)

			// Round trip preserves the original shape.
			out, err := json.Marshal(k)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}
}

func TestKeywordJSONMalformed(t *testing.T) {
	var k Keyword
	assert.Error(t, json.Unmarshal([]byte(`42`), &k))
}

func TestIdentifierJSON(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var id Identifier
		require.NoError(t, json.Unmarshal([]byte(`"doi:10.1000/test"`), &id))
		assert.Equal(t, Identifier{Value: "doi:10.1000/test"}, id)

		out, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, `"doi:10.1000/test"`, string(out))
	})

	t.Run("property value", func(t *testing.T) {
		in := `{"@type":"PropertyValue","propertyID":"DOI","value":"10.1000/test"}`
		var id Identifier
		require.NoError(t, json.Unmarshal([]byte(in), &id))
		assert.Equal(t, Identifier{PropertyID: "DOI", Value: "10.1000/test"}, id)

		out, err := json.Marshal(id)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	})
}

func TestDatasetPID(t *testing.T) {
	var d Dataset
	assert.Empty(t, d.PID())

	d.Identifier = &Identifier{Value: "doi:10.1000/xyz"}
	assert.Equal(t, "doi:10.1000/xyz", d.PID())
}
