package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wonny/valuescreen/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	separator       = "───────────────────────────────────────────────────────────"
	doubleSeparator = "═══════════════════════════════════════════════════════════"
)

// PrintHeader prints a formatted command header
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, separator)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, separator)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintList prints a bulleted list
func PrintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	cells := make([]string, len(values))
	for i, val := range values {
		if i == len(values)-1 {
			cells[i] = val
			continue
		}
		cells[i] = fmt.Sprintf("%-*s", widths[i], val)
	}
	fmt.Fprintln(w, strings.Join(cells, "  "))
}

var (
	rankingColumns = []string{"#", "TICKER", "COMP", "VERDICT", "QUAL", "VALUE", "ROIC", "MARGIN", "PE", "PB"}
	rankingWidths  = []int{4, 8, 5, 10, 6, 6, 8, 8, 7, 6}
)

// PrintRanking prints ranked tickers, optionally with the reasons behind every score
func PrintRanking(w io.Writer, ranked []contracts.RankedTicker, withReasons bool) {
	PrintTableHeader(w, rankingColumns, rankingWidths)

	for _, r := range ranked {
		PrintTableRow(w, rankingRow(r), rankingWidths)

		if !withReasons {
			continue
		}
		if r.Failed() {
			PrintList(w, []string{"error: " + r.Error})
			continue
		}
		PrintList(w, screenLines(r.Quality))
		PrintList(w, screenLines(r.Value))
	}
}

func rankingRow(r contracts.RankedTicker) []string {
	if r.Failed() {
		return []string{
			strconv.Itoa(r.Rank), r.Ticker, "-", "error", "-", "-", "-", "-", "-", "-",
		}
	}

	f := r.Fundamentals
	return []string{
		strconv.Itoa(r.Rank),
		r.Ticker,
		strconv.Itoa(r.Composite.Score),
		string(r.Composite.Verdict),
		passMark(r.Quality),
		passMark(r.Value),
		formatPercent(f.ROIC),
		formatPercent(f.OperatingMargin),
		formatRatio(f.PriceEarnings),
		formatRatio(f.PriceBook),
	}
}

// passMark renders a screen score with a pass marker, e.g. "90✓"
func passMark(s contracts.ScreenResult) string {
	if s.Passed {
		return strconv.Itoa(s.Score) + "✓"
	}
	return strconv.Itoa(s.Score)
}

func screenLines(s contracts.ScreenResult) []string {
	lines := make([]string, len(s.Reasons))
	for i, reason := range s.Reasons {
		lines[i] = s.Screen + ": " + reason
	}
	return lines
}

// formatPercent renders a ratio as a percentage, "-" when absent
func formatPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// formatRatio renders a multiple, "-" when absent
func formatRatio(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// PrintRunSummary prints the run header block
func PrintRunSummary(w io.Writer, run *contracts.Run) {
	passed, failed := 0, 0
	for i := range run.Results {
		if run.Results[i].Failed() {
			failed++
		} else if run.Results[i].PassedBoth() {
			passed++
		}
	}

	PrintKeyValue(w, "Run ID", run.ID, 12)
	PrintKeyValue(w, "Created", run.CreatedAt.Format("2006-01-02 15:04:05 MST"), 12)
	PrintKeyValue(w, "Thresholds", shortHash(run.ThresholdsHash), 12)
	PrintKeyValue(w, "Tickers", strconv.Itoa(run.Count()), 12)
	PrintKeyValue(w, "Passed both", strconv.Itoa(passed), 12)
	PrintKeyValue(w, "Errors", strconv.Itoa(failed), 12)
	PrintSeparator(w)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
