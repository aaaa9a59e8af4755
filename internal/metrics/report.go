package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report holds per-class precision, recall, F1 and support for labels 0
// and 1, with accuracy and macro/support-weighted averages.
type Report struct {
	Classes     []ClassMetrics `json:"classes"`
	Accuracy    float64        `json:"accuracy"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Total       int            `json:"total"`
}

func ClassificationReport(y, p []int) Report {
	r := Report{Total: len(y), Accuracy: Accuracy(y, p)}
	r.MacroAvg.Label = "macro avg"
	r.WeightedAvg.Label = "weighted avg"
	for _, label := range []int{0, 1} {
		prec, rec, f1 := PRF1(y, p, label)
		support := 0
		for _, v := range y {
			if v == label {
				support++
			}
		}
		r.Classes = append(r.Classes, ClassMetrics{
			Label:     strconv.Itoa(label),
			Precision: prec,
			Recall:    rec,
			F1:        f1,
			Support:   support,
		})
	}
	nc := float64(len(r.Classes))
	for _, c := range r.Classes {
		r.MacroAvg.Precision += c.Precision / nc
		r.MacroAvg.Recall += c.Recall / nc
		r.MacroAvg.F1 += c.F1 / nc
		if r.Total > 0 {
			w := float64(c.Support) / float64(r.Total)
			r.WeightedAvg.Precision += c.Precision * w
			r.WeightedAvg.Recall += c.Recall * w
			r.WeightedAvg.F1 += c.F1 * w
		}
	}
	r.MacroAvg.Support = r.Total
	r.WeightedAvg.Support = r.Total
	return r
}

// String renders the report as a fixed-width table.
func (r Report) String() string {
	const width = len("weighted avg")
	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	row := func(c ClassMetrics) {
		fmt.Fprintf(&b, "%*s  %9.2f %9.2f %9.2f %9d\n", width, c.Label, c.Precision, c.Recall, c.F1, c.Support)
	}
	for _, c := range r.Classes {
		row(c)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s  %9s %9s %9.2f %9d\n", width, "accuracy", "", "", r.Accuracy, r.Total)
	row(r.MacroAvg)
	row(r.WeightedAvg)
	return b.String()
}
