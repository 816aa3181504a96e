package reported

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriods(t *testing.T) {
	payload := []byte(`{
		"cik": "320193",
		"data": [
			{"year": 2024, "quarter": 1, "report": {
				"ic": [{"concept": "us-gaap_Revenues", "label": "Total net sales", "value": 90753000000}],
				"bs": [{"concept": "us-gaap_StockholdersEquity", "value": "74194000000"}],
				"cf": []
			}},
			{"year": "2023", "quarter": "4", "report": {"ic": [{"concept": "us-gaap_Revenues", "value": 119575000000}]}},
			{"year": "FY", "quarter": 4, "report": {}},
			{"year": 2023, "quarter": null, "report": {}},
			{"year": 2023.5, "quarter": 1, "report": {}},
			{"year": 2022, "quarter": 3, "report": {"ic": {"unexpected": "shape"}}},
			"not an object"
		]
	}`)

	periods, err := ParsePeriods(payload)
	require.NoError(t, err)
	require.Len(t, periods, 3)

	assert.Equal(t, 2022, periods[0].Year)
	assert.Equal(t, 3, periods[0].Quarter)
	assert.Empty(t, periods[0].Income)

	assert.Equal(t, 2023, periods[1].Year)
	assert.Equal(t, 4, periods[1].Quarter)

	assert.Equal(t, 2024, periods[2].Year)
	require.Len(t, periods[2].Income, 1)
	assert.Equal(t, "us-gaap_Revenues", periods[2].Income[0].Concept)
	assert.Equal(t, "Total net sales", periods[2].Income[0].Label)

	table := DefaultConcepts()
	assertOptional(t, ptr(90753000000), table.Lookup(periods[2], Revenue))
	assertOptional(t, ptr(74194000000), table.Lookup(periods[2], Equity))
}

func TestParsePeriods_KeepsDuplicateKeysInOrder(t *testing.T) {
	payload := []byte(`{"data": [
		{"year": 2024, "quarter": 1, "report": {"ic": [{"label": "first", "value": 1}]}},
		{"year": 2023, "quarter": 4, "report": {}},
		{"year": 2024, "quarter": 1, "report": {"ic": [{"label": "second", "value": 2}]}}
	]}`)

	periods, err := ParsePeriods(payload)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, "first", periods[1].Income[0].Label)
	assert.Equal(t, "second", periods[2].Income[0].Label)
}

func TestParsePeriods_EmptyInputs(t *testing.T) {
	for _, payload := range []string{"", "   ", "null", "{}", `{"data": null}`, `{"data": []}`} {
		periods, err := ParsePeriods([]byte(payload))
		require.NoError(t, err, "payload %q", payload)
		assert.Empty(t, periods, "payload %q", payload)
	}
}

func TestParsePeriods_InvalidJSON(t *testing.T) {
	_, err := ParsePeriods([]byte(`<html>rate limited</html>`))
	assert.Error(t, err)
}
