package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falhaaudiencia/internal/data"
	"falhaaudiencia/internal/pipeline"
)

func TestDepthCurve(t *testing.T) {
	df := data.Table(data.SyntheticHearings(120, 0.15, 4))
	c, err := depthCurve(df, pipeline.DefaultOptions(), 3)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, c.depths)
	require.Len(t, c.train, 3)
	require.Len(t, c.test, 3)
	for i := range c.depths {
		assert.GreaterOrEqual(t, c.train[i], 0.0)
		assert.LessOrEqual(t, c.train[i], 1.0)
		assert.GreaterOrEqual(t, c.test[i], 0.0)
		assert.LessOrEqual(t, c.test[i], 1.0)
	}

	path := filepath.Join(t.TempDir(), "curva", "auc.csv")
	require.NoError(t, c.writeCSV(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "max_depth,train_auc,test_auc")
}
