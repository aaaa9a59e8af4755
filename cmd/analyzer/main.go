package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"falhaaudiencia/internal/config"
	"falhaaudiencia/internal/data"
	"falhaaudiencia/internal/pipeline"
	"falhaaudiencia/internal/report"
	"falhaaudiencia/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "", "Arquivo de configuração (.yaml, .yml ou .toml)")
	dataPath := flag.String("data", "", "CSV de entrada (padrão: data.path da configuração)")
	depthMax := flag.Int("depth_max", 10, "Maior profundidade avaliada")
	outImg := flag.String("out_img", "reports/curva_profundidade.png", "PNG de saída")
	outCsv := flag.String("out_csv", "reports/curva_profundidade.csv", "CSV de saída")
	flag.Parse()

	logger := utils.Logger()
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	df, err := data.ReadTableFile(cfg.Data.Path, data.LoadOptions{
		Delimiter: cfg.Data.DelimiterRune(),
		Encoding:  cfg.Data.Encoding,
	})
	if err != nil {
		logger.Fatal("Falha ao ler CSV", zap.String("path", cfg.Data.Path), zap.Error(err))
	}

	c, err := depthCurve(df, pipeline.FromConfig(cfg.Train, nil), *depthMax)
	if err != nil {
		logger.Fatal("Falha na varredura de profundidade", zap.Error(err))
	}
	for i, d := range c.depths {
		fmt.Printf("max_depth=%d | train_auc=%.3f | test_auc=%.3f\n", d, c.train[i], c.test[i])
	}

	if err := c.writeCSV(*outCsv); err != nil {
		logger.Warn("Falha ao salvar CSV", zap.Error(err))
	} else {
		logger.Info("Curva salva", zap.String("csv", *outCsv))
	}
	if err := report.RenderCurve(c.depths, c.train, c.test, *outImg); err != nil {
		logger.Warn("Falha ao salvar PNG", zap.Error(err))
	} else {
		logger.Info("Gráfico salvo", zap.String("png", *outImg))
	}
}

type curve struct {
	depths []int
	train  []float64
	test   []float64
}

// depthCurve retrains the pipeline for every max depth in 1..depthMax and
// records ROC AUC on the training and test partitions.
func depthCurve(df dataframe.DataFrame, opts pipeline.Options, depthMax int) (curve, error) {
	var c curve
	for d := 1; d <= depthMax; d++ {
		opts.MaxDepth = d
		res, err := pipeline.PreprocessAndTrain(df, opts)
		if err != nil {
			return c, err
		}
		trainEv, err := pipeline.EvaluateTrain(res)
		if err != nil {
			return c, err
		}
		testEv, err := pipeline.Evaluate(res)
		if err != nil {
			return c, err
		}
		c.depths = append(c.depths, d)
		c.train = append(c.train, trainEv.AUC)
		c.test = append(c.test, testEv.AUC)
	}
	return c, nil
}

func (c curve) writeCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	df := dataframe.New(
		series.New(c.depths, series.Int, "max_depth"),
		series.New(c.train, series.Float, "train_auc"),
		series.New(c.test, series.Float, "test_auc"),
	)
	return df.WriteCSV(f)
}
