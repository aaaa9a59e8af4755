package models

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SMOTE oversamples the minority class with synthetic rows placed on the
// segment between a minority row and one of its KNeighbors nearest
// minority neighbours, until both classes have the same size.
type SMOTE struct {
	KNeighbors int
	Seed       int64
}

func NewSMOTE() *SMOTE { return &SMOTE{KNeighbors: 5, Seed: 42} }

// Resample returns the original rows followed by the synthetic ones. The
// inputs are not modified.
func (s *SMOTE) Resample(X [][]float64, y []int) ([][]float64, []int, error) {
	if err := validateXY(X, y); err != nil {
		return nil, nil, err
	}
	c := classCounts(y)
	if c[0] == 0 || c[1] == 0 {
		return nil, nil, ErrSingleClass
	}
	minority := 1
	if c[0] < c[1] {
		minority = 0
	}
	nNew := c[1-minority] - c[minority]

	Xr := make([][]float64, len(X), len(X)+nNew)
	copy(Xr, X)
	yr := make([]int, len(y), len(y)+nNew)
	copy(yr, y)
	if nNew == 0 {
		return Xr, yr, nil
	}

	k := s.KNeighbors
	if k <= 0 {
		k = 5
	}
	if c[minority] <= k {
		return nil, nil, fmt.Errorf("%w: k_neighbors=%d exige ao menos %d amostras, há %d", ErrTooFewSamples, k, k+1, c[minority])
	}
	var pool [][]float64
	for i := range X {
		if y[i] == minority {
			pool = append(pool, X[i])
		}
	}
	nn := nearestNeighbors(pool, k)

	rng := rand.New(rand.NewSource(s.Seed))
	for j := 0; j < nNew; j++ {
		i := rng.Intn(len(pool))
		nb := pool[nn[i][rng.Intn(k)]]
		gap := rng.Float64()
		row := make([]float64, len(pool[i]))
		floats.SubTo(row, nb, pool[i])
		floats.Scale(gap, row)
		floats.Add(row, pool[i])
		Xr = append(Xr, row)
		yr = append(yr, minority)
	}
	return Xr, yr, nil
}

// nearestNeighbors returns, for each row, the indices of its k closest
// other rows by Euclidean distance. Ties keep the lower index first.
func nearestNeighbors(rows [][]float64, k int) [][]int {
	out := make([][]int, len(rows))
	type cand struct {
		d float64
		j int
	}
	cands := make([]cand, 0, len(rows)-1)
	for i := range rows {
		cands = cands[:0]
		for j := range rows {
			if j == i {
				continue
			}
			cands = append(cands, cand{floats.Distance(rows[i], rows[j], 2), j})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].d != cands[b].d {
				return cands[a].d < cands[b].d
			}
			return cands[a].j < cands[b].j
		})
		out[i] = make([]int, k)
		for m := 0; m < k; m++ {
			out[i][m] = cands[m].j
		}
	}
	return out
}
