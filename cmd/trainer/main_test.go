package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falhaaudiencia/internal/config"
	"falhaaudiencia/internal/data"
	"falhaaudiencia/internal/features"
	"falhaaudiencia/internal/pipeline"
)

func TestApplyOnlyVisitedFlags(t *testing.T) {
	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
	tf := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-max_depth", "7", "-algo", "rf", "-tree_out", "out/a.svg"}))

	cfg := config.Default()
	cfg.Train.Seed = 9
	cfg.Data.Path = "outro.csv"
	tf.apply(&cfg, visited(fs))

	assert.Equal(t, 7, cfg.Train.MaxDepth)
	assert.Equal(t, "rf", cfg.Train.Algo)
	assert.Equal(t, "out/a.svg", cfg.Output.TreeImage)
	assert.Equal(t, int64(9), cfg.Train.Seed)
	assert.Equal(t, "outro.csv", cfg.Data.Path)
	assert.NoError(t, cfg.Validate())
}

func TestFlagsFixInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("train:\n  max_depth: 0\n"), 0o644))

	fs := flag.NewFlagSet("trainer", flag.ContinueOnError)
	tf := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-max_depth", "4"}))
	cfg, err := loadConfig(*tf.config, tf, visited(fs))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Train.MaxDepth)

	fs = flag.NewFlagSet("trainer", flag.ContinueOnError)
	tf = registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path}))
	_, err = loadConfig(*tf.config, tf, visited(fs))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWriteArtifacts(t *testing.T) {
	res, err := pipeline.PreprocessAndTrain(data.Table(data.SyntheticHearings(100, 0.1, 7)), pipeline.DefaultOptions())
	require.NoError(t, err)
	ev, err := pipeline.Evaluate(res)
	require.NoError(t, err)

	dir := t.TempDir()
	out := config.Output{
		TreeImage:  filepath.Join(dir, "img", "arvore.png"),
		ROCImage:   filepath.Join(dir, "img", "roc.png"),
		Report:     filepath.Join(dir, "relatorio.json"),
		Vocabulary: filepath.Join(dir, "vocabulario.json"),
	}
	require.NoError(t, writeArtifacts(out, res, ev))

	for _, p := range []string{out.TreeImage, out.ROCImage} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	b, err := os.ReadFile(out.Report)
	require.NoError(t, err)
	var rf reportFile
	require.NoError(t, json.Unmarshal(b, &rf))
	assert.Equal(t, "SMOTE+DecisionTree", rf.Model)
	assert.Equal(t, 80, rf.TrainRows)
	assert.Equal(t, 20, rf.TestRows)
	assert.InDelta(t, ev.AUC, rf.Holdout.AUC, 1e-12)

	f, err := os.Open(out.Vocabulary)
	require.NoError(t, err)
	defer f.Close()
	vocab, err := features.ReadVocabulary(f)
	require.NoError(t, err)
	assert.Equal(t, res.Vocabulary.Columns, vocab.Columns)
}
