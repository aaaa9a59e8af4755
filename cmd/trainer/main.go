package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"falhaaudiencia/internal/data"
	"falhaaudiencia/internal/pipeline"
	"falhaaudiencia/pkg/utils"
)

func main() {
	tf := registerFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := loadConfig(*tf.config, tf, visited(flag.CommandLine))
	if err != nil {
		utils.Logger().Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = os.Getenv("LOG_FILE")
	}
	logger, err := utils.NewLogger(logFile, cfg.Log.Level)
	if err != nil {
		utils.Logger().Fatal("Falha ao criar logger", zap.Error(err))
	}
	utils.SetLogger(logger)
	defer logger.Sync()

	if cfg.Data.Regen {
		logger.Info("Gerando dataset sintético",
			zap.Int("n", cfg.Data.Rows),
			zap.Float64("fail_rate", cfg.Data.FailRate),
			zap.String("out", cfg.Data.Path),
		)
		if err := data.GenerateSyntheticHearings(cfg.Data.Rows, cfg.Data.FailRate, cfg.Train.Seed, cfg.Data.Path); err != nil {
			logger.Fatal("Falha ao gerar dataset", zap.Error(err))
		}
	}

	df, err := data.ReadTableFile(cfg.Data.Path, data.LoadOptions{
		Delimiter: cfg.Data.DelimiterRune(),
		Encoding:  cfg.Data.Encoding,
	})
	if err != nil {
		logger.Fatal("Falha ao ler CSV", zap.String("path", cfg.Data.Path), zap.Error(err))
	}
	logger.Info("Tabela carregada", zap.Int("linhas", df.Nrow()), zap.Int("colunas", df.Ncol()))

	res, err := pipeline.PreprocessAndTrain(df, pipeline.FromConfig(cfg.Train, logger))
	if err != nil {
		logger.Fatal("Falha ao treinar", zap.Error(err))
	}

	ev, err := pipeline.Evaluate(res)
	if err != nil {
		logger.Fatal("Falha ao avaliar", zap.Error(err))
	}
	logger.Info("Métricas holdout",
		zap.String("model", res.Estimator.Name()),
		zap.Float64("accuracy", ev.Accuracy),
		zap.Float64("roc_auc", ev.AUC),
		zap.Float64("pr_auc", ev.PRAUC),
	)
	fmt.Println("Modelo:", res.Estimator.Name())
	fmt.Println(ev.Report.String())
	fmt.Printf("ROC AUC: %.4f\n", ev.AUC)

	if err := writeArtifacts(cfg.Output, res, ev); err != nil {
		logger.Fatal("Falha ao gravar artefatos", zap.Error(err))
	}
	logger.Info("Artefatos gravados",
		zap.String("arvore", cfg.Output.TreeImage),
		zap.String("roc", cfg.Output.ROCImage),
		zap.String("relatorio", cfg.Output.Report),
		zap.String("vocabulario", cfg.Output.Vocabulary),
	)
}
