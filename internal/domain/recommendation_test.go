package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureInputEncodesAsPair(t *testing.T) {
	body, err := json.Marshal(map[string]any{
		"input": []FeatureInput{{Text: "Dune 2021", Rating: 7}, {Text: "Alien 1979", Rating: 6.5}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input": [["Dune 2021", 7], ["Alien 1979", 6.5]]}`, string(body))
}

func TestSuggestionYearStringOrNumber(t *testing.T) {
	var resp struct {
		Results []Suggestion `json:"results"`
	}
	err := json.Unmarshal([]byte(`{"results": [
		{"movie": "Dune", "year": "2021"},
		{"movie": "Alien", "year": 1979},
		{"movie": "Heat", "year": 1995.0},
		{"movie": "Unknown", "year": null}
	]}`), &resp)
	require.NoError(t, err)

	assert.Equal(t, []Suggestion{
		{Movie: "Dune", Year: "2021"},
		{Movie: "Alien", Year: "1979"},
		{Movie: "Heat", Year: "1995"},
		{Movie: "Unknown", Year: ""},
	}, resp.Results)
}
