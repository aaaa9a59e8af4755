package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RenderROC draws the ROC curve against the chance diagonal.
func RenderROC(fpr, tpr []float64, auc float64, path string) error {
	if len(fpr) != len(tpr) {
		return fmt.Errorf("report: fpr e tpr com tamanhos diferentes (%d != %d)", len(fpr), len(tpr))
	}
	p := plot.New()
	p.Title.Text = "Curva ROC"
	p.X.Label.Text = "Taxa de falsos positivos"
	p.Y.Label.Text = "Taxa de verdadeiros positivos"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(fpr))
	for i := range fpr {
		pts[i].X = fpr[i]
		pts[i].Y = tpr[i]
	}
	diag := plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if err := plotutil.AddLines(p, fmt.Sprintf("ROC (AUC = %.3f)", auc), pts, "Aleatório", diag); err != nil {
		return err
	}
	p.Legend.Top = false
	p.Legend.Left = false
	return save(p, 6*vg.Inch, 6*vg.Inch, path)
}

// RenderCurve draws train and test AUC against maximum tree depth.
func RenderCurve(depths []int, trainAUC, testAUC []float64, path string) error {
	if len(depths) != len(trainAUC) || len(depths) != len(testAUC) {
		return fmt.Errorf("report: séries da curva com tamanhos diferentes")
	}
	p := plot.New()
	p.Title.Text = "AUC por profundidade da árvore"
	p.X.Label.Text = "Profundidade máxima"
	p.Y.Label.Text = "ROC AUC"
	p.Y.Min = 0
	p.Y.Max = 1

	toXY := func(xs []int, ys []float64) plotter.XYs {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = float64(xs[i])
			pts[i].Y = ys[i]
		}
		return pts
	}
	if err := plotutil.AddLinePoints(p, "Treino", toXY(depths, trainAUC), "Teste", toXY(depths, testAUC)); err != nil {
		return err
	}
	return save(p, 8*vg.Inch, 4*vg.Inch, path)
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return p.Save(w, h, path)
}
