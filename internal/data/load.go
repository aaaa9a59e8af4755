package data

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	ErrEmptyTable      = errors.New("data: tabela sem registros")
	ErrUnknownEncoding = errors.New("data: codificação desconhecida")
)

// NaNValues are the raw cell values read as missing.
var NaNValues = []string{"", "NA", "NaN", "nan", "NaT", "null", "<nil>"}

type LoadOptions struct {
	Delimiter rune
	// Encoding is "utf-8" (default) or "latin1".
	Encoding string
}

// ReadTable loads a delimited file with a header row. Every column is kept
// as a string series; typing happens in the feature stages.
func ReadTable(r io.Reader, opts LoadOptions) (dataframe.DataFrame, error) {
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnknownEncoding, opts.Encoding)
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NaNValues),
	)
	if df.Err != nil {
		return df, fmt.Errorf("data: ler CSV: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return df, ErrEmptyTable
	}
	return df, nil
}

func ReadTableFile(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	return ReadTable(f, opts)
}

// Table builds an in-memory frame from hearings, typed the same way
// ReadTable types a file.
func Table(hs []Hearing) dataframe.DataFrame {
	return dataframe.LoadRecords(Records(hs),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NaNValues),
	)
}
