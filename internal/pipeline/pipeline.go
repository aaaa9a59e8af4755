// Package pipeline turns a raw hearings table into a fitted SMOTE + tree
// classifier and evaluates it on the held-out partition.
package pipeline

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"falhaaudiencia/internal/config"
	"falhaaudiencia/internal/features"
	"falhaaudiencia/internal/metrics"
	"falhaaudiencia/internal/models"
	"falhaaudiencia/internal/split"
)

type Options struct {
	Target     string
	TestSize   float64
	Seed       int64
	Algo       string
	MaxDepth   int
	KNeighbors int
	Estimators int

	Schema features.Schema
	Fill   features.FillPolicy
	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Target:     "falha",
		TestSize:   0.2,
		Seed:       42,
		Algo:       "dt",
		MaxDepth:   4,
		KNeighbors: 5,
		Estimators: 30,
		Schema:     features.DefaultSchema(),
		Fill:       features.DefaultFillPolicy(),
	}
}

// FromConfig returns DefaultOptions overridden by the train section of cfg.
func FromConfig(cfg config.Train, logger *zap.Logger) Options {
	opts := DefaultOptions()
	opts.Target = cfg.Target
	opts.TestSize = cfg.TestSize
	opts.Seed = cfg.Seed
	opts.Algo = cfg.Algo
	opts.MaxDepth = cfg.MaxDepth
	opts.KNeighbors = cfg.KNeighbors
	opts.Estimators = cfg.Estimators
	opts.Logger = logger
	return opts
}

// Result holds everything needed to score new tables and to report on the
// held-out partition.
type Result struct {
	Estimator    *models.Pipeline
	Vocabulary   *features.Vocabulary
	FeatureNames []string
	Split        split.Partitions

	schema features.Schema
	fill   features.FillPolicy
	logger *zap.Logger
}

func (o Options) classifier() models.Model {
	if o.Algo == "rf" {
		rf := models.NewRandomForest()
		rf.NEstimators = o.Estimators
		rf.MaxDepth = o.MaxDepth
		rf.Seed = o.Seed
		return rf
	}
	dt := models.NewDecisionTree()
	dt.MaxDepth = o.MaxDepth
	dt.Seed = o.Seed
	return dt
}

// PreprocessAndTrain derives the date features, fills missing values,
// label-encodes the categorical columns, splits 80/20 by class and fits
// SMOTE followed by the classifier on the training partition. df is not
// modified.
func PreprocessAndTrain(df dataframe.DataFrame, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if extra := opts.Schema.Check(); len(extra) > 0 {
		logger.Warn("Colunas categóricas fora da lista de features", zap.Strings("colunas", extra))
	}

	y, err := features.Labels(df, opts.Target)
	if err != nil {
		return nil, err
	}
	encoded, err := prepare(df, opts.Schema, opts.Fill, nil, logger)
	if err != nil {
		return nil, err
	}
	vocab := encoded.vocab
	X, err := features.Matrix(encoded.df, opts.Schema.Features)
	if err != nil {
		return nil, err
	}

	parts, err := split.Stratified(X, y, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("pipeline: dividir treino/teste: %w", err)
	}
	logger.Info("Divisão estratificada",
		zap.Int("treino", len(parts.YTrain)),
		zap.Int("teste", len(parts.YTest)),
	)

	smote := models.NewSMOTE()
	smote.KNeighbors = opts.KNeighbors
	smote.Seed = opts.Seed
	est := models.NewPipeline(smote, opts.classifier())
	if err := est.Fit(parts.XTrain, parts.YTrain); err != nil {
		return nil, fmt.Errorf("pipeline: treinar %s: %w", est.Name(), err)
	}
	logger.Info("Modelo treinado",
		zap.String("modelo", est.Name()),
		zap.Int("linhas_ajuste", est.FitRows),
		zap.Int("features", len(opts.Schema.Features)),
	)

	return &Result{
		Estimator:    est,
		Vocabulary:   vocab,
		FeatureNames: append([]string(nil), opts.Schema.Features...),
		Split:        parts,
		schema:       opts.Schema,
		fill:         opts.Fill,
		logger:       logger,
	}, nil
}

type prepared struct {
	df    dataframe.DataFrame
	vocab *features.Vocabulary
}

// prepare runs derive, fill and encode. A nil vocab is fitted on the
// filled table.
func prepare(df dataframe.DataFrame, schema features.Schema, fill features.FillPolicy, vocab *features.Vocabulary, logger *zap.Logger) (prepared, error) {
	derived, stats, err := features.Derive(df, schema.Dates)
	if err != nil {
		return prepared{}, fmt.Errorf("pipeline: derivar datas: %w", err)
	}
	for col, n := range stats {
		logger.Debug("Datas não interpretadas tratadas como ausentes", zap.String("coluna", col), zap.Int("n", n))
	}

	missing, err := features.CountMissing(derived, schema.Features)
	if err != nil {
		return prepared{}, err
	}
	total := 0
	for _, n := range missing {
		total += n
	}
	filled, err := features.Fill(derived, schema, fill)
	if err != nil {
		return prepared{}, err
	}
	logger.Info("Valores ausentes preenchidos", zap.Int("celulas", total))

	if vocab == nil {
		if vocab, err = features.FitVocabulary(filled, schema.Categorical); err != nil {
			return prepared{}, err
		}
	}
	encoded, unseen, err := vocab.Transform(filled)
	if err != nil {
		return prepared{}, err
	}
	for col, n := range unseen {
		logger.Warn("Categorias não vistas no treino", zap.String("coluna", col), zap.Int("n", n), zap.Int("codigo", features.UnseenCode))
	}
	return prepared{df: encoded, vocab: vocab}, nil
}

// Score returns P(falha) and the predicted class for each row of df, using
// the vocabulary fitted at training time. df needs no target column.
func (r *Result) Score(df dataframe.DataFrame) ([]float64, []int, error) {
	p, err := prepare(df, r.schema, r.fill, r.Vocabulary, r.logger)
	if err != nil {
		return nil, nil, err
	}
	X, err := features.Matrix(p.df, r.FeatureNames)
	if err != nil {
		return nil, nil, err
	}
	return r.Estimator.PredictProba(X), r.Estimator.Predict(X), nil
}

// Evaluate scores the estimator on the test partition.
func Evaluate(r *Result) (metrics.Evaluation, error) {
	proba := r.Estimator.PredictProba(r.Split.XTest)
	pred := r.Estimator.Predict(r.Split.XTest)
	ev, err := metrics.Evaluate(r.Split.YTest, pred, proba)
	if err != nil {
		return metrics.Evaluation{}, fmt.Errorf("pipeline: avaliar: %w", err)
	}
	return ev, nil
}

// EvaluateTrain scores the estimator on the original (not resampled)
// training partition.
func EvaluateTrain(r *Result) (metrics.Evaluation, error) {
	proba := r.Estimator.PredictProba(r.Split.XTrain)
	pred := r.Estimator.Predict(r.Split.XTrain)
	return metrics.Evaluate(r.Split.YTrain, pred, proba)
}
