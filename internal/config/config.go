// Package config loads the trainer and analyzer configuration from YAML or
// TOML files and validates it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

var (
	ErrInvalidConfig     = errors.New("config: configuração inválida")
	ErrUnsupportedFormat = errors.New("config: formato de arquivo não suportado")
)

type Data struct {
	Path      string  `yaml:"path" toml:"path" validate:"required"`
	Delimiter string  `yaml:"delimiter" toml:"delimiter" validate:"len=1"`
	Encoding  string  `yaml:"encoding" toml:"encoding" validate:"oneof=utf-8 latin1"`
	Regen     bool    `yaml:"regen" toml:"regen"`
	Rows      int     `yaml:"rows" toml:"rows" validate:"gte=0"`
	FailRate  float64 `yaml:"fail_rate" toml:"fail_rate" validate:"gte=0,lte=1"`
}

type Train struct {
	Target     string  `yaml:"target" toml:"target" validate:"required"`
	TestSize   float64 `yaml:"test_size" toml:"test_size" validate:"gt=0,lt=1"`
	Seed       int64   `yaml:"seed" toml:"seed"`
	Algo       string  `yaml:"algo" toml:"algo" validate:"oneof=dt rf"`
	MaxDepth   int     `yaml:"max_depth" toml:"max_depth" validate:"gte=1"`
	KNeighbors int     `yaml:"k_neighbors" toml:"k_neighbors" validate:"gte=1"`
	Estimators int     `yaml:"estimators" toml:"estimators" validate:"gte=1"`
}

type Output struct {
	TreeImage  string `yaml:"tree_image" toml:"tree_image"`
	ROCImage   string `yaml:"roc_image" toml:"roc_image"`
	Report     string `yaml:"report" toml:"report"`
	Vocabulary string `yaml:"vocabulary" toml:"vocabulary"`
}

type Log struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	Data   Data   `yaml:"data" toml:"data"`
	Train  Train  `yaml:"train" toml:"train"`
	Output Output `yaml:"output" toml:"output"`
	Log    Log    `yaml:"log" toml:"log"`
}

// Default trains on "falha" with an 80/20 split, seed 42, SMOTE over 5
// neighbours and a depth-4 tree.
func Default() Config {
	return Config{
		Data: Data{
			Path:      "data/audiencias.csv",
			Delimiter: ",",
			Encoding:  "utf-8",
			Regen:     false,
			Rows:      5000,
			FailRate:  0.1,
		},
		Train: Train{
			Target:     "falha",
			TestSize:   0.2,
			Seed:       42,
			Algo:       "dt",
			MaxDepth:   4,
			KNeighbors: 5,
			Estimators: 30,
		},
		Output: Output{
			TreeImage:  "reports/arvore.png",
			ROCImage:   "reports/roc.png",
			Report:     "reports/relatorio.json",
			Vocabulary: "reports/vocabulario.json",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that override fields
// before validating.
func Read(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: ler %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DelimiterRune returns the CSV separator as a rune.
func (d Data) DelimiterRune() rune {
	if d.Delimiter == "" {
		return ','
	}
	return []rune(d.Delimiter)[0]
}
