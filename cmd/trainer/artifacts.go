package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"falhaaudiencia/internal/config"
	"falhaaudiencia/internal/metrics"
	"falhaaudiencia/internal/pipeline"
	"falhaaudiencia/internal/report"
)

type reportFile struct {
	Model     string             `json:"model"`
	Features  []string           `json:"features"`
	TrainRows int                `json:"train_rows"`
	TestRows  int                `json:"test_rows"`
	FitRows   int                `json:"fit_rows"`
	Holdout   metrics.Evaluation `json:"holdout"`
}

// writeArtifacts writes every non-empty output path concurrently and
// returns the first error.
func writeArtifacts(out config.Output, res *pipeline.Result, ev metrics.Evaluation) error {
	var g errgroup.Group
	if out.TreeImage != "" {
		g.Go(func() error {
			return report.RenderTree(res.Estimator.Tree(), res.FeatureNames, report.ClassNames, out.TreeImage)
		})
	}
	if out.ROCImage != "" {
		g.Go(func() error { return report.RenderROC(ev.FPR, ev.TPR, ev.AUC, out.ROCImage) })
	}
	if out.Report != "" {
		rf := reportFile{
			Model:     res.Estimator.Name(),
			Features:  res.FeatureNames,
			TrainRows: len(res.Split.YTrain),
			TestRows:  len(res.Split.YTest),
			FitRows:   res.Estimator.FitRows,
			Holdout:   ev,
		}
		g.Go(func() error {
			return writeFile(out.Report, func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rf)
			})
		})
	}
	if out.Vocabulary != "" {
		g.Go(func() error { return writeFile(out.Vocabulary, res.Vocabulary.WriteJSON) })
	}
	return g.Wait()
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
