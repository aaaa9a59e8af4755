package features

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"falhaaudiencia/internal/data"
)

// DateLayouts are tried in order when parsing timestamps.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Timestamps outside the range of int64 nanoseconds since the Unix epoch
// (1677-09-21 to 2262-04-11) are rejected.
var (
	minTimestamp = time.Unix(0, math.MinInt64).UTC()
	maxTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

// ParseStats counts, per column, the non-blank values that failed to parse.
type ParseStats map[string]int

// ParseTimestamp parses s with DateLayouts. Blank, unparseable or
// out-of-range values report ok=false.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Before(minTimestamp) || t.After(maxTimestamp) {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the whole days from -> to, rounded towards negative
// infinity.
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// Derive returns a copy of df with antecedencia_dias,
// duracao_abertura_finalizacao and mes_audiencia appended. Dates that are
// missing or unparseable leave the derived cells NA.
func Derive(df dataframe.DataFrame, cols DateColumns) (dataframe.DataFrame, ParseStats, error) {
	if err := requireColumns(df, cols.Opened, cols.Hearing, cols.Closed); err != nil {
		return df, nil, err
	}
	stats := ParseStats{}
	opened := parseColumn(df.Col(cols.Opened), stats)
	hearing := parseColumn(df.Col(cols.Hearing), stats)
	closed := parseColumn(df.Col(cols.Closed), stats)

	n := df.Nrow()
	lead := make([]string, n)
	duration := make([]string, n)
	month := make([]string, n)
	for i := 0; i < n; i++ {
		lead[i] = daysRecord(opened[i], hearing[i])
		duration[i] = daysRecord(opened[i], closed[i])
		month[i] = "NaN"
		if !hearing[i].IsZero() {
			month[i] = strconv.Itoa(int(hearing[i].Month()))
		}
	}

	out := df.Copy()
	out = out.Mutate(series.New(lead, series.Int, data.ColLeadDays))
	out = out.Mutate(series.New(duration, series.Int, data.ColOpenToCloseDays))
	out = out.Mutate(series.New(month, series.Int, data.ColHearingMonth))
	if out.Err != nil {
		return df, stats, out.Err
	}
	return out, stats, nil
}

func parseColumn(s series.Series, stats ParseStats) []time.Time {
	recs := s.Records()
	nan := s.IsNaN()
	out := make([]time.Time, len(recs))
	for i, v := range recs {
		if nan[i] {
			continue
		}
		t, ok := ParseTimestamp(v)
		if !ok {
			if strings.TrimSpace(v) != "" {
				stats[s.Name]++
			}
			continue
		}
		out[i] = t
	}
	return out
}

func daysRecord(from, to time.Time) string {
	if from.IsZero() || to.IsZero() {
		return "NaN"
	}
	return strconv.Itoa(DaysBetween(from, to))
}
