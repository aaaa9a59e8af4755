package features

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/goccy/go-json"
)

// UnseenCode is the code given to values absent from the vocabulary.
const UnseenCode = -1

type CategoryColumn struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Vocabulary maps categorical string values to integer codes. A value's
// code is its position in the sorted Values of its column.
type Vocabulary struct {
	Columns []CategoryColumn `json:"columns"`

	index map[string]map[string]int
}

// FitVocabulary collects the sorted distinct string form of every value in
// cols. Missing cells contribute their string form ("NaN") like any other
// value.
func FitVocabulary(df dataframe.DataFrame, cols []string) (*Vocabulary, error) {
	if err := requireColumns(df, cols...); err != nil {
		return nil, err
	}
	v := &Vocabulary{Columns: make([]CategoryColumn, 0, len(cols))}
	for _, col := range cols {
		seen := map[string]struct{}{}
		values := []string{}
		for _, r := range df.Col(col).Records() {
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				values = append(values, r)
			}
		}
		sort.Strings(values)
		v.Columns = append(v.Columns, CategoryColumn{Name: col, Values: values})
	}
	v.buildIndex()
	return v, nil
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]map[string]int, len(v.Columns))
	for _, c := range v.Columns {
		m := make(map[string]int, len(c.Values))
		for i, val := range c.Values {
			m[val] = i
		}
		v.index[c.Name] = m
	}
}

// Code returns the code of value in col.
func (v *Vocabulary) Code(col, value string) (int, bool) {
	if v.index == nil {
		v.buildIndex()
	}
	code, ok := v.index[col][value]
	return code, ok
}

// Value returns the string behind code in col.
func (v *Vocabulary) Value(col string, code int) (string, bool) {
	for _, c := range v.Columns {
		if c.Name == col && code >= 0 && code < len(c.Values) {
			return c.Values[code], true
		}
	}
	return "", false
}

// Transform returns a copy of df with every vocabulary column rewritten as
// integer codes, plus the number of unseen values per column.
func (v *Vocabulary) Transform(df dataframe.DataFrame) (dataframe.DataFrame, map[string]int, error) {
	if v.index == nil {
		v.buildIndex()
	}
	cols := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		cols[i] = c.Name
	}
	if err := requireColumns(df, cols...); err != nil {
		return df, nil, err
	}
	unseen := map[string]int{}
	out := df.Copy()
	for _, col := range cols {
		idx := v.index[col]
		recs := out.Col(col).Records()
		codes := make([]int, len(recs))
		for i, r := range recs {
			code, ok := idx[r]
			if !ok {
				code = UnseenCode
				unseen[col]++
			}
			codes[i] = code
		}
		out = out.Mutate(series.New(codes, series.Int, col))
	}
	if out.Err != nil {
		return df, unseen, out.Err
	}
	return out, unseen, nil
}

// WriteJSON writes the vocabulary as JSON.
func (v *Vocabulary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ReadVocabulary(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return nil, fmt.Errorf("features: ler vocabulário: %w", err)
	}
	v.buildIndex()
	return v, nil
}
