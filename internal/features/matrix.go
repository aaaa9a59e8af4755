package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

var boolWords = map[string]float64{
	"true": 1, "false": 0,
	"verdadeiro": 1, "falso": 0,
	"sim": 1, "não": 0, "nao": 0,
	"s": 1, "n": 0,
	"yes": 1, "no": 0,
}

// ParseNumber reads v as a float, accepting boolean words as 1/0.
func ParseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f, true
	}
	f, ok := boolWords[strings.ToLower(v)]
	return f, ok
}

// Matrix returns the rows of df as float vectors over cols, in cols order.
func Matrix(df dataframe.DataFrame, cols []string) ([][]float64, error) {
	if err := requireColumns(df, cols...); err != nil {
		return nil, err
	}
	n := df.Nrow()
	X := make([][]float64, n)
	for i := range X {
		X[i] = make([]float64, len(cols))
	}
	for j, col := range cols {
		s := df.Col(col)
		nan := s.IsNaN()
		for i, r := range s.Records() {
			v, ok := ParseNumber(r)
			if nan[i] || !ok {
				return nil, fmt.Errorf("%w: coluna %q linha %d valor %q", ErrNonNumeric, col, i, r)
			}
			X[i][j] = v
		}
	}
	return X, nil
}

// Labels reads target as 0/1 labels.
func Labels(df dataframe.DataFrame, target string) ([]int, error) {
	if err := requireColumns(df, target); err != nil {
		return nil, err
	}
	s := df.Col(target)
	nan := s.IsNaN()
	recs := s.Records()
	y := make([]int, len(recs))
	for i, r := range recs {
		v, ok := ParseNumber(r)
		if nan[i] || !ok || (v != 0 && v != 1) {
			return nil, fmt.Errorf("%w: coluna %q linha %d valor %q", ErrInvalidTarget, target, i, r)
		}
		y[i] = int(v)
	}
	return y, nil
}
