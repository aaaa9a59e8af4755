package main

import (
	"flag"

	"falhaaudiencia/internal/config"
)

type trainerFlags struct {
	config     *string
	data       *string
	regen      *bool
	n          *int
	failRate   *float64
	target     *string
	algo       *string
	estimators *int
	maxDepth   *int
	kNeighbors *int
	seed       *int64
	testSize   *float64
	treeOut    *string
	rocOut     *string
	reportOut  *string
	vocabOut   *string
}

func registerFlags(fs *flag.FlagSet) *trainerFlags {
	d := config.Default()
	return &trainerFlags{
		config:     fs.String("config", "", "Arquivo de configuração (.yaml, .yml ou .toml)"),
		data:       fs.String("data", d.Data.Path, "CSV de entrada"),
		regen:      fs.Bool("regen", d.Data.Regen, "Regenerar dataset sintético em -data"),
		n:          fs.Int("n", d.Data.Rows, "Número de registros sintéticos"),
		failRate:   fs.Float64("fail_rate", d.Data.FailRate, "Proporção de falhas no dataset sintético"),
		target:     fs.String("target", d.Train.Target, "Coluna alvo"),
		algo:       fs.String("algo", d.Train.Algo, "Algoritmo: dt|rf"),
		estimators: fs.Int("estimators", d.Train.Estimators, "Número de árvores (rf)"),
		maxDepth:   fs.Int("max_depth", d.Train.MaxDepth, "Profundidade máxima da árvore"),
		kNeighbors: fs.Int("k_neighbors", d.Train.KNeighbors, "Vizinhos considerados pelo SMOTE"),
		seed:       fs.Int64("seed", d.Train.Seed, "Semente da divisão, do SMOTE e da árvore"),
		testSize:   fs.Float64("test_size", d.Train.TestSize, "Fração do conjunto de teste"),
		treeOut:    fs.String("tree_out", d.Output.TreeImage, "Imagem da árvore (png, svg, pdf)"),
		rocOut:     fs.String("roc_out", d.Output.ROCImage, "Imagem da curva ROC"),
		reportOut:  fs.String("report_out", d.Output.Report, "Relatório JSON"),
		vocabOut:   fs.String("vocab_out", d.Output.Vocabulary, "Vocabulário JSON das categorias"),
	}
}

func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// apply copies into cfg only the flags given on the command line, so a
// config file is not overridden by flag defaults.
func (tf *trainerFlags) apply(cfg *config.Config, set map[string]bool) {
	if set["data"] {
		cfg.Data.Path = *tf.data
	}
	if set["regen"] {
		cfg.Data.Regen = *tf.regen
	}
	if set["n"] {
		cfg.Data.Rows = *tf.n
	}
	if set["fail_rate"] {
		cfg.Data.FailRate = *tf.failRate
	}
	if set["target"] {
		cfg.Train.Target = *tf.target
	}
	if set["algo"] {
		cfg.Train.Algo = *tf.algo
	}
	if set["estimators"] {
		cfg.Train.Estimators = *tf.estimators
	}
	if set["max_depth"] {
		cfg.Train.MaxDepth = *tf.maxDepth
	}
	if set["k_neighbors"] {
		cfg.Train.KNeighbors = *tf.kNeighbors
	}
	if set["seed"] {
		cfg.Train.Seed = *tf.seed
	}
	if set["test_size"] {
		cfg.Train.TestSize = *tf.testSize
	}
	if set["tree_out"] {
		cfg.Output.TreeImage = *tf.treeOut
	}
	if set["roc_out"] {
		cfg.Output.ROCImage = *tf.rocOut
	}
	if set["report_out"] {
		cfg.Output.Report = *tf.reportOut
	}
	if set["vocab_out"] {
		cfg.Output.Vocabulary = *tf.vocabOut
	}
}

// loadConfig reads the config file, applies the command-line flags and
// validates once, so a flag can correct an invalid file value.
func loadConfig(path string, tf *trainerFlags, set map[string]bool) (config.Config, error) {
	cfg, err := config.Read(path)
	if err != nil {
		return cfg, err
	}
	tf.apply(&cfg, set)
	return cfg, cfg.Validate()
}
