package models

import (
	"math/rand"
	"sort"
)

// Values closer than this are treated as equal when placing thresholds.
const featureThreshold = 1e-7

type DTNode struct {
	Feature   int
	Threshold float64
	Left      *DTNode
	Right     *DTNode
	IsLeaf    bool
	ProbaLeaf float64
	Samples   int
	Value     [2]float64
	Impurity  float64
}

// DecisionTree is a binary CART classifier using Gini impurity over
// class-weighted counts. Rows with x[Feature] <= Threshold go left.
type DecisionTree struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	ClassWeight     string
	Seed            int64
	Root            *DTNode
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MaxDepth: 4, MinSamplesSplit: 2, MinSamplesLeaf: 1, ClassWeight: "balanced", Seed: 42}
}

func (dt *DecisionTree) Name() string { return "DecisionTree" }

func (dt *DecisionTree) Tree() *DTNode { return dt.Root }

func (dt *DecisionTree) Fit(X [][]float64, y []int) error {
	if err := validateXY(X, y); err != nil {
		return err
	}
	w := dt.classWeights(y)
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(dt.Seed))
	dt.Root = dt.build(X, y, w, idx, 0, rng)
	return nil
}

// classWeights returns n/(2*count) per class when ClassWeight is
// "balanced", 1 otherwise.
func (dt *DecisionTree) classWeights(y []int) [2]float64 {
	w := [2]float64{1, 1}
	if dt.ClassWeight != "balanced" {
		return w
	}
	c := classCounts(y)
	for k := range w {
		if c[k] > 0 {
			w[k] = float64(len(y)) / (2 * float64(c[k]))
		}
	}
	return w
}

func (dt *DecisionTree) Predict(X [][]float64) []int {
	return probaToPred(dt.PredictProba(X))
}

func (dt *DecisionTree) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = dt.predictProbaOne(X[i])
	}
	return out
}

func (dt *DecisionTree) predictProbaOne(x []float64) float64 {
	n := dt.Root
	if n == nil {
		return 0.5
	}
	for !n.IsLeaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
		if n == nil {
			return 0.5
		}
	}
	return n.ProbaLeaf
}

// Depth returns the depth of the fitted tree; a lone leaf has depth 0.
func (dt *DecisionTree) Depth() int { return nodeDepth(dt.Root) }

func nodeDepth(n *DTNode) int {
	if n == nil || n.IsLeaf {
		return 0
	}
	return 1 + max(nodeDepth(n.Left), nodeDepth(n.Right))
}

func (dt *DecisionTree) build(X [][]float64, y []int, w [2]float64, idx []int, depth int, rng *rand.Rand) *DTNode {
	node := &DTNode{Samples: len(idx), IsLeaf: true}
	for _, i := range idx {
		node.Value[y[i]] += w[y[i]]
	}
	node.Impurity = gini(node.Value)
	node.ProbaLeaf = proba(node.Value)

	if dt.MaxDepth > 0 && depth >= dt.MaxDepth {
		return node
	}
	if len(idx) < dt.MinSamplesSplit || len(idx) < 2*max(dt.MinSamplesLeaf, 1) || node.Impurity <= 0 {
		return node
	}
	s := dt.bestSplit(X, y, w, idx, node, rng)
	if s.feature < 0 {
		return node
	}
	left, right := splitIdx(X, idx, s.feature, s.threshold)
	node.IsLeaf = false
	node.Feature = s.feature
	node.Threshold = s.threshold
	node.Left = dt.build(X, y, w, left, depth+1, rng)
	node.Right = dt.build(X, y, w, right, depth+1, rng)
	return node
}

type split struct {
	feature     int
	threshold   float64
	improvement float64
}

// bestSplit scans every feature, visited in an order drawn from rng, and
// keeps the first split with the largest weighted impurity decrease.
func (dt *DecisionTree) bestSplit(X [][]float64, y []int, w [2]float64, idx []int, node *DTNode, rng *rand.Rand) split {
	best := split{feature: -1}
	feats := rng.Perm(len(X[0]))
	if dt.MaxFeatures > 0 && dt.MaxFeatures < len(feats) {
		feats = feats[:dt.MaxFeatures]
	}
	minLeaf := max(dt.MinSamplesLeaf, 1)
	parent := (node.Value[0] + node.Value[1]) * node.Impurity
	sorted := make([]int, len(idx))
	for _, f := range feats {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })
		var left [2]float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			left[y[i]] += w[y[i]]
			v, next := X[i][f], X[sorted[k+1]][f]
			if next <= v+featureThreshold {
				continue
			}
			nLeft := k + 1
			if nLeft < minLeaf || len(sorted)-nLeft < minLeaf {
				continue
			}
			right := [2]float64{node.Value[0] - left[0], node.Value[1] - left[1]}
			imp := parent - (left[0]+left[1])*gini(left) - (right[0]+right[1])*gini(right)
			if imp > best.improvement+1e-12 {
				thr := (v + next) / 2
				if thr >= next {
					thr = v
				}
				best = split{feature: f, threshold: thr, improvement: imp}
			}
		}
	}
	return best
}

func splitIdx(X [][]float64, idx []int, f int, thr float64) ([]int, []int) {
	l := make([]int, 0, len(idx))
	r := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][f] <= thr {
			l = append(l, i)
		} else {
			r = append(r, i)
		}
	}
	return l, r
}

func gini(v [2]float64) float64 {
	t := v[0] + v[1]
	if t <= 0 {
		return 0
	}
	p0, p1 := v[0]/t, v[1]/t
	return 1 - p0*p0 - p1*p1
}

func proba(v [2]float64) float64 {
	t := v[0] + v[1]
	if t <= 0 {
		return 0.5
	}
	return v[1] / t
}
