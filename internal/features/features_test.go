package features

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falhaaudiencia/internal/data"
)

func frame(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(data.NaNValues),
	)
}

func dateFrame(rows ...[3]string) dataframe.DataFrame {
	recs := [][]string{{data.ColOpenedAt, data.ColHearingAt, data.ColClosedAt}}
	for _, r := range rows {
		recs = append(recs, []string{r[0], r[1], r[2]})
	}
	return frame(recs)
}

var smallSchema = Schema{
	Features:    []string{"parceiro", "qtd"},
	Categorical: []string{"parceiro"},
}

func TestDeriveComputesDayDifferencesAndMonth(t *testing.T) {
	df := dateFrame([3]string{"2024-01-01", "2024-01-10", "2024-01-20"})

	out, stats, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.Equal(t, []string{"9"}, out.Col(data.ColLeadDays).Records())
	assert.Equal(t, []string{"19"}, out.Col(data.ColOpenToCloseDays).Records())
	assert.Equal(t, []string{"1"}, out.Col(data.ColHearingMonth).Records())
}

func TestDeriveAcceptsSeveralLayouts(t *testing.T) {
	df := dateFrame(
		[3]string{"2024-03-01 08:30:00", "2024-03-05T10:00:00", "05/04/2024"},
		[3]string{"2024-03-01T08:30:00Z", "15/06/2024 14:00", "2024-06-20"},
	)

	out, _, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "106"}, out.Col(data.ColLeadDays).Records())
	assert.Equal(t, []string{"3", "6"}, out.Col(data.ColHearingMonth).Records())
	// 05/04/2024 is 5 April.
	assert.Equal(t, "34", out.Col(data.ColOpenToCloseDays).Records()[0])
}

func TestDeriveUnparseableDatesBecomeMissing(t *testing.T) {
	df := dateFrame(
		[3]string{"2024-01-01", "não informado", "2024-01-20"},
		[3]string{"2024-01-01", "2024-02-01", ""},
	)

	out, stats, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[data.ColHearingAt])
	assert.Zero(t, stats[data.ColClosedAt], "células vazias não contam como falha de parse")

	assert.Equal(t, []bool{true, false}, out.Col(data.ColLeadDays).IsNaN())
	assert.Equal(t, []bool{true, false}, out.Col(data.ColHearingMonth).IsNaN())
	assert.Equal(t, []bool{false, true}, out.Col(data.ColOpenToCloseDays).IsNaN())
	assert.Equal(t, "19", out.Col(data.ColOpenToCloseDays).Records()[0])
}

func TestDeriveOutOfRangeYearsBecomeMissing(t *testing.T) {
	df := dateFrame(
		[3]string{"0024-01-01", "2024-01-10", "2024-01-20"},
		[3]string{"2024-01-01", "9999-01-10", "2024-01-20"},
	)

	out, stats, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[data.ColOpenedAt])
	assert.Equal(t, 1, stats[data.ColHearingAt])

	assert.Equal(t, []bool{true, true}, out.Col(data.ColLeadDays).IsNaN())
	assert.Equal(t, []bool{false, true}, out.Col(data.ColHearingMonth).IsNaN())
	assert.Equal(t, []bool{true, false}, out.Col(data.ColOpenToCloseDays).IsNaN())
	assert.Equal(t, "19", out.Col(data.ColOpenToCloseDays).Records()[1])
}

func TestParseTimestampRange(t *testing.T) {
	for _, s := range []string{"1677-09-22", "2262-04-10", "2024-02-29 10:00:00"} {
		_, ok := ParseTimestamp(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"0024-01-01", "1677-09-20", "2262-04-12", "9999-01-10"} {
		_, ok := ParseTimestamp(s)
		assert.False(t, ok, s)
	}
}

func TestDeriveLeavesInputUntouched(t *testing.T) {
	df := dateFrame([3]string{"2024-01-01", "2024-01-10", "2024-01-20"})
	before := df.Names()

	_, _, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)
	assert.Equal(t, before, df.Names())
}

func TestDeriveMissingDateColumn(t *testing.T) {
	df := frame([][]string{{data.ColOpenedAt, data.ColHearingAt}, {"2024-01-01", "2024-01-02"}})

	_, _, err := Derive(df, DefaultSchema().Dates)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), data.ColClosedAt)
}

func TestDaysBetweenRoundsDown(t *testing.T) {
	from := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, -2, DaysBetween(from, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(from, time.Date(2024, 1, 3, 11, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysBetween(from, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)))
}

func TestFillRemovesMissingByKind(t *testing.T) {
	df := frame([][]string{
		{"parceiro", "qtd", "outra"},
		{"", "3", ""},
		{"Costa", "", "x"},
	})
	before, err := CountMissing(df, smallSchema.Features)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"parceiro": 1, "qtd": 1}, before)

	out, err := Fill(df, smallSchema, DefaultFillPolicy())
	require.NoError(t, err)
	after, err := CountMissing(out, smallSchema.Features)
	require.NoError(t, err)
	for _, col := range smallSchema.Features {
		assert.Zero(t, after[col], col)
	}
	assert.Equal(t, []string{"desconhecido", "Costa"}, out.Col("parceiro").Records())
	assert.Equal(t, []string{"3", "0"}, out.Col("qtd").Records())
	assert.Equal(t, []bool{true, false}, out.Col("outra").IsNaN(), "colunas fora das features ficam como estão")
}

func TestFillDerivedColumns(t *testing.T) {
	df := data.Table(data.SyntheticHearings(40, 0.2, 5))
	df, _, err := Derive(df, DefaultSchema().Dates)
	require.NoError(t, err)

	out, err := Fill(df, DefaultSchema(), FillPolicy{Numeric: 0, Categorical: "?"})
	require.NoError(t, err)
	missing, err := CountMissing(out, DefaultSchema().Features)
	require.NoError(t, err)
	for _, col := range DefaultSchema().Features {
		assert.Zero(t, missing[col], col)
	}
}

func TestFillMissingFeatureColumns(t *testing.T) {
	df := frame([][]string{{"outra"}, {"1"}})

	_, err := Fill(df, smallSchema, DefaultFillPolicy())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "parceiro")
	assert.Contains(t, err.Error(), "qtd")
}

func TestVocabularyUsesSortedCodes(t *testing.T) {
	df := frame([][]string{{"parceiro"}, {"b"}, {"a"}, {"c"}, {"a"}})

	v, err := FitVocabulary(df, []string{"parceiro"})
	require.NoError(t, err)
	out, unseen, err := v.Transform(df)
	require.NoError(t, err)
	assert.Empty(t, unseen)
	assert.Equal(t, []string{"1", "0", "2", "0"}, out.Col("parceiro").Records())

	val, ok := v.Value("parceiro", 2)
	assert.True(t, ok)
	assert.Equal(t, "c", val)
}

func TestVocabularyEncodingIsStable(t *testing.T) {
	df := data.Table(data.SyntheticHearings(30, 0.1, 11))
	cols := DefaultSchema().Categorical

	v, err := FitVocabulary(df, cols)
	require.NoError(t, err)
	first, _, err := v.Transform(df)
	require.NoError(t, err)
	second, _, err := v.Transform(df)
	require.NoError(t, err)
	for _, col := range cols {
		assert.Equal(t, first.Col(col).Records(), second.Col(col).Records(), col)
	}
}

func TestVocabularyMissingValuesGetTheirOwnCode(t *testing.T) {
	df := frame([][]string{{"parceiro"}, {"b"}, {""}, {"b"}})

	v, err := FitVocabulary(df, []string{"parceiro"})
	require.NoError(t, err)
	assert.Len(t, v.Columns[0].Values, 2)
}

func TestVocabularyUnseenValues(t *testing.T) {
	train := frame([][]string{{"parceiro"}, {"a"}, {"b"}})
	score := frame([][]string{{"parceiro"}, {"b"}, {"z"}})

	v, err := FitVocabulary(train, []string{"parceiro"})
	require.NoError(t, err)
	out, unseen, err := v.Transform(score)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"parceiro": 1}, unseen)
	assert.Equal(t, []string{"1", "-1"}, out.Col("parceiro").Records())
}

func TestVocabularyJSON(t *testing.T) {
	df := frame([][]string{{"parceiro", "comarca"}, {"b", "Bauru"}, {"a", "Santos"}})
	v, err := FitVocabulary(df, []string{"parceiro", "comarca"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.WriteJSON(&buf))
	got, err := ReadVocabulary(&buf)
	require.NoError(t, err)

	code, ok := got.Code("comarca", "Santos")
	assert.True(t, ok)
	assert.Equal(t, 1, code)
	assert.Equal(t, v.Columns, got.Columns)
}

func TestVocabularyMissingColumn(t *testing.T) {
	_, err := FitVocabulary(frame([][]string{{"a"}, {"1"}}), []string{"parceiro"})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestMatrixParsesNumbersAndFlags(t *testing.T) {
	df := frame([][]string{{"qtd", "revelia"}, {"2", "Sim"}, {"0.5", "false"}})

	X, err := Matrix(df, []string{"revelia", "qtd"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {0, 0.5}}, X)
}

func TestMatrixRejectsText(t *testing.T) {
	df := frame([][]string{{"qtd"}, {"duas"}})

	_, err := Matrix(df, []string{"qtd"})
	assert.ErrorIs(t, err, ErrNonNumeric)
}

func TestLabels(t *testing.T) {
	y, err := Labels(frame([][]string{{"falha"}, {"1"}, {"0"}, {"1.0"}}), "falha")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, y)

	_, err = Labels(frame([][]string{{"falha"}, {"2"}}), "falha")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = Labels(frame([][]string{{"falha"}, {""}}), "falha")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = Labels(frame([][]string{{"outra"}, {"1"}}), "falha")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestSchemaCheck(t *testing.T) {
	assert.Empty(t, DefaultSchema().Check())

	s := Schema{Features: []string{"a"}, Categorical: []string{"a", "b"}}
	assert.Equal(t, []string{"b"}, s.Check())
	assert.True(t, s.IsCategorical("b"))
	assert.False(t, s.IsCategorical("c"))
}
