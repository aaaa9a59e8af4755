package features

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FillPolicy sets the replacement for missing cells by column kind.
type FillPolicy struct {
	Numeric     float64
	Categorical string
}

func DefaultFillPolicy() FillPolicy {
	return FillPolicy{Numeric: 0, Categorical: "desconhecido"}
}

// Fill returns a copy of df where every missing cell of the schema's feature
// columns holds the policy value for its kind.
func Fill(df dataframe.DataFrame, schema Schema, policy FillPolicy) (dataframe.DataFrame, error) {
	if err := requireColumns(df, schema.Features...); err != nil {
		return df, err
	}
	numeric := strconv.FormatFloat(policy.Numeric, 'f', -1, 64)
	out := df.Copy()
	for _, col := range schema.Features {
		s := out.Col(col)
		fill, typ := numeric, s.Type()
		if schema.IsCategorical(col) {
			fill, typ = policy.Categorical, series.String
		} else if typ == series.Int && policy.Numeric != math.Trunc(policy.Numeric) {
			typ = series.Float
		}
		recs := s.Records()
		nan := s.IsNaN()
		changed := false
		for i := range recs {
			if nan[i] || strings.TrimSpace(recs[i]) == "" {
				recs[i] = fill
				changed = true
			}
		}
		if changed {
			out = out.Mutate(series.New(recs, typ, col))
		}
	}
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// CountMissing returns the number of missing cells per column.
func CountMissing(df dataframe.DataFrame, cols []string) (map[string]int, error) {
	if err := requireColumns(df, cols...); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(cols))
	for _, col := range cols {
		s := df.Col(col)
		recs := s.Records()
		for i, na := range s.IsNaN() {
			if na || strings.TrimSpace(recs[i]) == "" {
				out[col]++
			}
		}
	}
	return out, nil
}
