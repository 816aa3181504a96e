package reported

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/wonny/valuescreen/internal/contracts"
)

type payloadEnvelope struct {
	Data []json.RawMessage `json:"data"`
}

type payloadEntry struct {
	Year    interface{}   `json:"year"`
	Quarter interface{}   `json:"quarter"`
	Report  payloadReport `json:"report"`
}

type payloadReport struct {
	IC json.RawMessage `json:"ic"`
	BS json.RawMessage `json:"bs"`
	CF json.RawMessage `json:"cf"`
}

// ParsePeriods decodes a financials-reported payload into periods sorted by (year, quarter).
// Entries with a non-numeric year or quarter, and entries that are not objects, are dropped.
// Duplicate (year, quarter) keys are kept as delivered.
// Only a body that is not JSON at all is an error.
func ParsePeriods(payload []byte) ([]contracts.Period, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return []contracts.Period{}, nil
	}

	var envelope payloadEnvelope
	if err := decode(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode financials payload: %w", err)
	}

	periods := make([]contracts.Period, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		var entry payloadEntry
		if err := decode(raw, &entry); err != nil {
			continue
		}

		year, ok := toInt(entry.Year)
		if !ok {
			continue
		}
		quarter, ok := toInt(entry.Quarter)
		if !ok {
			continue
		}

		periods = append(periods, contracts.Period{
			Year:     year,
			Quarter:  quarter,
			Income:   decodeItems(entry.Report.IC),
			Balance:  decodeItems(entry.Report.BS),
			CashFlow: decodeItems(entry.Report.CF),
		})
	}

	SortPeriods(periods)
	return periods, nil
}

// SortPeriods sorts periods ascending by (year, quarter), keeping the order of equal keys
func SortPeriods(periods []contracts.Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
}

func decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// decodeItems is lenient: a statement that is not a list of objects yields no items
func decodeItems(raw json.RawMessage) []contracts.RawStatementItem {
	if len(raw) == 0 {
		return nil
	}

	var rows []map[string]interface{}
	if err := decode(raw, &rows); err != nil {
		return nil
	}

	items := make([]contracts.RawStatementItem, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, contracts.RawStatementItem{
			Concept: toString(row["concept"]),
			Label:   toString(row["label"]),
			Value:   row["value"],
		})
	}
	return items
}

func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
