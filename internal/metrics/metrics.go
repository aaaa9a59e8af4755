package metrics

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("metrics: rótulos e previsões com tamanhos diferentes")
	ErrUndefinedAUC   = errors.New("metrics: AUC indefinida com uma só classe em y_true")
)

// Evaluation summarises a classifier on held-out data.
type Evaluation struct {
	Report   Report  `json:"report"`
	Accuracy float64 `json:"accuracy"`
	AUC      float64 `json:"roc_auc"`
	PRAUC    float64 `json:"pr_auc"`

	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
}

// Evaluate scores hard predictions and class-1 probabilities against yTrue.
func Evaluate(yTrue, yPred []int, proba []float64) (Evaluation, error) {
	if len(yTrue) != len(yPred) || len(yTrue) != len(proba) {
		return Evaluation{}, ErrLengthMismatch
	}
	fpr, tpr, err := ROCCurve(yTrue, proba)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Report:   ClassificationReport(yTrue, yPred),
		Accuracy: Accuracy(yTrue, yPred),
		AUC:      integrate.Trapezoidal(fpr, tpr),
		PRAUC:    PRAUC(yTrue, proba),
		FPR:      fpr,
		TPR:      tpr,
	}, nil
}

func Accuracy(y, p []int) float64 {
	if len(y) == 0 {
		return 0
	}
	c := 0
	for i := range y {
		if y[i] == p[i] {
			c++
		}
	}
	return float64(c) / float64(len(y))
}

// Confusion counts outcomes treating label as the positive class.
func Confusion(y, p []int, label int) (tp, fp, tn, fn int) {
	for i := range y {
		switch {
		case p[i] == label && y[i] == label:
			tp++
		case p[i] == label:
			fp++
		case y[i] == label:
			fn++
		default:
			tn++
		}
	}
	return
}

// PRF1 returns precision, recall and F1 of label. Undefined ratios are 0.
func PRF1(y, p []int, label int) (precision, recall, f1 float64) {
	tp, fp, _, fn := Confusion(y, p, label)
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return
}

// ROCCurve returns the false and true positive rates over every distinct
// score, from the strictest cutoff to the loosest.
func ROCCurve(y []int, scores []float64) (fpr, tpr []float64, err error) {
	if len(y) != len(scores) {
		return nil, nil, ErrLengthMismatch
	}
	s := append([]float64(nil), scores...)
	classes := make([]bool, len(y))
	pos := 0
	for i := range y {
		classes[i] = y[i] == 1
		if classes[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(y) {
		return nil, nil, fmt.Errorf("%w: positivos=%d negativos=%d", ErrUndefinedAUC, pos, len(y)-pos)
	}
	stat.SortWeightedLabeled(s, classes, nil)
	tpr, fpr, _ = stat.ROC(nil, s, classes, nil)
	return fpr, tpr, nil
}

// ROCAUC is the area under ROCCurve.
func ROCAUC(y []int, scores []float64) (float64, error) {
	fpr, tpr, err := ROCCurve(y, scores)
	if err != nil {
		return 0, err
	}
	return integrate.Trapezoidal(fpr, tpr), nil
}

// PRAUC integrates precision over recall, one step per ranked row.
func PRAUC(y []int, ps []float64) float64 {
	type pair struct {
		s float64
		y int
	}
	n := len(y)
	pairs := make([]pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = pair{ps[i], y[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].s > pairs[j].s })
	var tp, fp, fn int
	for _, p := range pairs {
		if p.y == 1 {
			fn++
		}
	}
	var prevRec, auc float64
	for i := 0; i < n; i++ {
		if pairs[i].y == 1 {
			tp++
			fn--
		} else {
			fp++
		}
		var prec, rec float64
		if tp+fp > 0 {
			prec = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			rec = float64(tp) / float64(tp+fn)
		}
		auc += (rec - prevRec) * prec
		prevRec = rec
	}
	return auc
}
