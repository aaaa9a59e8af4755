package models

import (
	"math"
	"math/rand"
)

// RandomForest averages DecisionTree probabilities over bootstrap samples.
// Each tree considers MaxFeatures random features per node (sqrt of the
// feature count when zero).
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	ClassWeight     string
	Seed            int64
	Trees           []*DecisionTree
}

func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 30, MaxDepth: 4, MinSamplesSplit: 2, ClassWeight: "balanced", Seed: 42}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := validateXY(X, y); err != nil {
		return err
	}
	if rf.NEstimators <= 0 {
		rf.NEstimators = 30
	}
	n := len(X)
	maxFeats := rf.MaxFeatures
	if maxFeats <= 0 {
		maxFeats = int(math.Max(1, math.Sqrt(float64(len(X[0])))))
	}
	rng := rand.New(rand.NewSource(rf.Seed))
	rf.Trees = make([]*DecisionTree, 0, rf.NEstimators)
	for k := 0; k < rf.NEstimators; k++ {
		Xb := make([][]float64, n)
		yb := make([]int, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			Xb[i], yb[i] = X[j], y[j]
		}
		dt := &DecisionTree{
			MaxDepth:        rf.MaxDepth,
			MinSamplesSplit: rf.MinSamplesSplit,
			MinSamplesLeaf:  1,
			MaxFeatures:     maxFeats,
			ClassWeight:     rf.ClassWeight,
			Seed:            rng.Int63(),
		}
		if err := dt.Fit(Xb, yb); err != nil {
			return err
		}
		rf.Trees = append(rf.Trees, dt)
	}
	return nil
}

func (rf *RandomForest) Predict(X [][]float64) []int {
	return probaToPred(rf.PredictProba(X))
}

func (rf *RandomForest) PredictProba(X [][]float64) []float64 {
	n := len(X)
	out := make([]float64, n)
	if len(rf.Trees) == 0 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for _, dt := range rf.Trees {
		p := dt.PredictProba(X)
		for i := 0; i < n; i++ {
			out[i] += p[i]
		}
	}
	m := float64(len(rf.Trees))
	for i := 0; i < n; i++ {
		out[i] /= m
	}
	return out
}

// Tree returns the first tree of the forest.
func (rf *RandomForest) Tree() *DTNode {
	if len(rf.Trees) == 0 {
		return nil
	}
	return rf.Trees[0].Root
}
