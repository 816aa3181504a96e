package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuescreen/internal/contracts"
)

func fptr(v float64) *float64 {
	return &v
}

func sampleRun() *contracts.Run {
	return &contracts.Run{
		ID:             "3f1c2b9e-0000-4000-8000-000000000000",
		CreatedAt:      time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC),
		ThresholdsHash: "abcdef0123456789abcdef",
		Results: []contracts.RankedTicker{
			{Rank: 1, Evaluation: contracts.Evaluation{
				Ticker: "GOOD",
				Fundamentals: contracts.Fundamentals{
					ROIC:            fptr(0.153),
					OperatingMargin: fptr(0.2),
					PriceEarnings:   fptr(12.346),
				},
				Quality:   contracts.ScreenResult{Screen: contracts.ScreenQuality, Passed: true, Score: 90, Reasons: []string{"ROIC ok"}},
				Value:     contracts.ScreenResult{Screen: contracts.ScreenValue, Passed: true, Score: 100, Reasons: []string{"P/E ok"}},
				Composite: contracts.CompositeScore{Score: 94, Verdict: contracts.VerdictStrong},
			}},
			{Rank: 2, Evaluation: contracts.Evaluation{
				Ticker:    "BAD",
				Error:     "decode financials payload: invalid character",
				Composite: contracts.CompositeScore{Score: 0, Verdict: contracts.VerdictWeak},
			}},
		},
	}
}

func TestRankingRow(t *testing.T) {
	run := sampleRun()

	assert.Equal(t,
		[]string{"1", "GOOD", "94", "strong", "90✓", "100✓", "15.3%", "20.0%", "12.35", "-"},
		rankingRow(run.Results[0]))
	assert.Equal(t,
		[]string{"2", "BAD", "-", "error", "-", "-", "-", "-", "-", "-"},
		rankingRow(run.Results[1]))
}

func TestPrintRanking(t *testing.T) {
	run := sampleRun()

	var buf bytes.Buffer
	PrintRanking(&buf, run.Results, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows
	assert.True(t, strings.HasPrefix(lines[2], "1     GOOD"))

	buf.Reset()
	PrintRanking(&buf, run.Results, true)
	out := buf.String()
	assert.Contains(t, out, "• quality: ROIC ok")
	assert.Contains(t, out, "• value: P/E ok")
	assert.Contains(t, out, "• error: decode financials payload")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintRunSummary(&buf, sampleRun())

	out := buf.String()
	assert.Contains(t, out, "3f1c2b9e-0000-4000-8000-000000000000")
	assert.Contains(t, out, "abcdef012345")
	assert.NotContains(t, out, "abcdef0123456")
	assert.Contains(t, out, "Passed both  : 1")
	assert.Contains(t, out, "Errors       : 1")
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "-", formatPercent(nil))
	assert.Equal(t, "-", formatRatio(nil))
	assert.Equal(t, "-12.0%", formatPercent(fptr(-0.12)))
	assert.Equal(t, "0.50", formatRatio(fptr(0.5)))
}
