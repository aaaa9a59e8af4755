package features

import (
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/multierr"

	"falhaaudiencia/internal/data"
)

type DateColumns struct {
	Opened  string
	Hearing string
	Closed  string
}

// Schema declares the columns the pipeline reads. Features and Categorical
// are maintained separately; Check reports where they disagree.
type Schema struct {
	Dates       DateColumns
	Features    []string
	Categorical []string
}

func DefaultSchema() Schema {
	return Schema{
		Dates: DateColumns{
			Opened:  data.ColOpenedAt,
			Hearing: data.ColHearingAt,
			Closed:  data.ColClosedAt,
		},
		Features: []string{
			data.ColPartner, data.ColClient, data.ColType, data.ColDemandType, data.ColCaseArea,
			data.ColHearingType, data.ColStatus, data.ColCourt, data.ColDistrict, data.ColDistrictState,
			data.ColDataStatus, data.ColClientGuidance, data.ColSwaps,
			data.ColDeclines, data.ColDefault, data.ColAbsence, data.ColMisconduct,
			data.ColHearingMonth, data.ColOpenToCloseDays, data.ColLeadDays,
		},
		Categorical: []string{
			data.ColPartner, data.ColClient, data.ColType, data.ColDemandType, data.ColCaseArea,
			data.ColHearingType, data.ColStatus, data.ColCourt, data.ColDistrict, data.ColDistrictState,
			data.ColDataStatus, data.ColClientGuidance,
		},
	}
}

func (s Schema) IsCategorical(col string) bool { return slices.Contains(s.Categorical, col) }

// Check returns the categorical columns that are not features. They are
// still encoded but never reach the model.
func (s Schema) Check() []string {
	var out []string
	for _, c := range s.Categorical {
		if !slices.Contains(s.Features, c) {
			out = append(out, c)
		}
	}
	return out
}

// requireColumns fails with one ErrMissingColumn per absent column.
func requireColumns(df dataframe.DataFrame, cols ...string) error {
	names := df.Names()
	var err error
	for _, c := range cols {
		if !slices.Contains(names, c) {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrMissingColumn, c))
		}
	}
	return err
}
