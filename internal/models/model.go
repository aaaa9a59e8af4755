package models

import "errors"

var (
	ErrEmptyInput        = errors.New("models: conjunto de treino vazio")
	ErrDimensionMismatch = errors.New("models: dimensões inconsistentes")
	ErrInvalidLabel      = errors.New("models: rótulo fora de {0, 1}")
	ErrSingleClass       = errors.New("models: y precisa de mais de uma classe")
	ErrTooFewSamples     = errors.New("models: amostras insuficientes na classe minoritária")
)

// Model is a binary classifier over dense float features. PredictProba
// returns the probability of class 1.
type Model interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	PredictProba(X [][]float64) []float64
	Name() string
}

// Sampler rebalances a training set. It is applied at fit time only.
type Sampler interface {
	Resample(X [][]float64, y []int) ([][]float64, []int, error)
}

// TreeModel is implemented by models that can expose a single tree.
type TreeModel interface {
	Tree() *DTNode
}

func validateXY(X [][]float64, y []int) error {
	if len(X) == 0 {
		return ErrEmptyInput
	}
	if len(X) != len(y) {
		return ErrDimensionMismatch
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return ErrDimensionMismatch
		}
		if y[i] != 0 && y[i] != 1 {
			return ErrInvalidLabel
		}
	}
	return nil
}

func classCounts(y []int) [2]int {
	var c [2]int
	for _, v := range y {
		c[v]++
	}
	return c
}

func probaToPred(ps []float64) []int {
	out := make([]int, len(ps))
	for i := range ps {
		if ps[i] > 0.5 {
			out[i] = 1
		}
	}
	return out
}
