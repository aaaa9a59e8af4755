// Package split partitions labelled rows into train and test sets keeping
// the class proportions of the full set.
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var (
	ErrInvalidTestSize   = errors.New("split: test_size deve estar em (0, 1)")
	ErrLengthMismatch    = errors.New("split: X e y com tamanhos diferentes")
	ErrTooFewMembers     = errors.New("split: classe com menos de 2 membros")
	ErrPartitionTooSmall = errors.New("split: partição menor que o número de classes")
)

type Partitions struct {
	XTrain [][]float64
	XTest  [][]float64
	YTrain []int
	YTest  []int
}

// Stratified splits X and y so that ceil(testSize*n) rows go to the test
// partition, each class contributing in proportion to its size. The seed
// fixes both the allocation tie-breaks and the row order.
func Stratified(X [][]float64, y []int, testSize float64, seed int64) (Partitions, error) {
	if len(X) != len(y) {
		return Partitions{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(X), len(y))
	}
	train, test, err := Indices(y, testSize, seed)
	if err != nil {
		return Partitions{}, err
	}
	p := Partitions{
		XTrain: make([][]float64, len(train)),
		XTest:  make([][]float64, len(test)),
		YTrain: make([]int, len(train)),
		YTest:  make([]int, len(test)),
	}
	for i, idx := range train {
		p.XTrain[i], p.YTrain[i] = X[idx], y[idx]
	}
	for i, idx := range test {
		p.XTest[i], p.YTest[i] = X[idx], y[idx]
	}
	return p, nil
}

// Indices returns the row indices of the train and test partitions.
func Indices(y []int, testSize float64, seed int64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, ErrInvalidTestSize
	}
	n := len(y)
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest

	byClass := map[int][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	counts := make([]int, len(classes))
	for k, c := range classes {
		counts[k] = len(byClass[c])
		if counts[k] < 2 {
			return nil, nil, fmt.Errorf("%w: classe %d tem %d", ErrTooFewMembers, c, counts[k])
		}
	}
	if nTrain < len(classes) || nTest < len(classes) {
		return nil, nil, fmt.Errorf("%w: treino=%d teste=%d classes=%d", ErrPartitionTooSmall, nTrain, nTest, len(classes))
	}

	rng := rand.New(rand.NewSource(seed))
	trainCounts := approximateMode(counts, nTrain, rng)
	rest := make([]int, len(counts))
	for k := range counts {
		rest[k] = counts[k] - trainCounts[k]
	}
	testCounts := approximateMode(rest, nTest, rng)

	train = make([]int, 0, nTrain)
	test = make([]int, 0, nTest)
	for k, c := range classes {
		members := byClass[c]
		perm := rng.Perm(len(members))
		for j, p := range perm {
			switch {
			case j < trainCounts[k]:
				train = append(train, members[p])
			case j < trainCounts[k]+testCounts[k]:
				test = append(test, members[p])
			}
		}
	}
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test, nil
}

// approximateMode draws total items from classes of the given counts: each
// class gets the floor of its proportional share and the leftover goes to
// the largest fractional remainders. Equal remainders are ordered by rng.
func approximateMode(counts []int, total int, rng *rand.Rand) []int {
	sum := 0
	for _, c := range counts {
		sum += c
	}
	out := make([]int, len(counts))
	if sum == 0 {
		return out
	}
	remainders := make([]float64, len(counts))
	assigned := 0
	for k, c := range counts {
		share := float64(c) * float64(total) / float64(sum)
		out[k] = int(math.Floor(share))
		remainders[k] = share - float64(out[k])
		assigned += out[k]
	}
	order := rng.Perm(len(counts))
	sort.SliceStable(order, func(a, b int) bool { return remainders[order[a]] > remainders[order[b]] })
	for i := 0; assigned < total; i = (i + 1) % len(order) {
		k := order[i]
		if out[k] < counts[k] {
			out[k]++
			assigned++
		}
	}
	return out
}
