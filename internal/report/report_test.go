package report

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"falhaaudiencia/internal/models"
)

func stump() *models.DTNode {
	return &models.DTNode{
		Feature:   1,
		Threshold: 12.5,
		Samples:   10,
		Value:     [2]float64{5, 5},
		Impurity:  0.5,
		Left:      &models.DTNode{IsLeaf: true, Samples: 6, Value: [2]float64{5, 0.5}, Impurity: 0.165},
		Right:     &models.DTNode{IsLeaf: true, Samples: 4, Value: [2]float64{0, 4.5}, ProbaLeaf: 1},
	}
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNodeLabel(t *testing.T) {
	root := stump()
	names := []string{"valor_causa", "dias_antecedencia"}

	got := nodeLabel(root, names, ClassNames)
	assert.Equal(t, "dias_antecedencia <= 12.50\ngini = 0.500\nsamples = 10\nvalue = [5.0, 5.0]\nclass = No Fail", got)

	leaf := nodeLabel(root.Right, names, ClassNames)
	assert.False(t, strings.Contains(leaf, "<="))
	assert.True(t, strings.HasSuffix(leaf, "class = Fail"))

	assert.True(t, strings.HasPrefix(nodeLabel(root, nil, ClassNames), "X[1] <="))
}

func TestNodeColor(t *testing.T) {
	assert.Equal(t, color.White, nodeColor(&models.DTNode{}))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, nodeColor(&models.DTNode{Value: [2]float64{3, 3}}))
	assert.Equal(t, classColors[1], nodeColor(&models.DTNode{Value: [2]float64{0, 4}}))
}

func TestTreeLayout(t *testing.T) {
	tp := newTreePlotter(stump(), nil, ClassNames, nodeTextStyle(plot.New()))
	require.Len(t, tp.nodes, 3)
	assert.Equal(t, 2, tp.leaves)
	assert.Equal(t, 1, tp.depth)
	assert.Equal(t, 0.5, tp.nodes[0].x)
	assert.Equal(t, 0.0, tp.nodes[1].x)
	assert.Equal(t, 1.0, tp.nodes[2].x)
	assert.Equal(t, -1.0, tp.nodes[2].y)
	assert.Equal(t, 0, tp.nodes[2].parent)

	xmin, xmax, ymin, ymax := tp.DataRange()
	assert.Equal(t, []float64{-0.5, 1.5, -1.5, 0.5}, []float64{xmin, xmax, ymin, ymax})
}

func TestRenderTree(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"arvore.png", "arvore.svg"} {
		path := filepath.Join(dir, "sub", name)
		require.NoError(t, RenderTree(stump(), []string{"a", "b"}, nil, path))
		assertNonEmptyFile(t, path)
	}

	err := RenderTree(nil, nil, nil, filepath.Join(dir, "x.png"))
	assert.True(t, errors.Is(err, ErrNoTree))

	assert.Error(t, RenderTree(stump(), nil, nil, filepath.Join(dir, "arvore.xyz")))
}

func TestRenderROC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roc.png")
	require.NoError(t, RenderROC([]float64{0, 0, 0.5, 1}, []float64{0, 0.5, 1, 1}, 0.875, path))
	assertNonEmptyFile(t, path)

	assert.Error(t, RenderROC([]float64{0, 1}, []float64{0}, 0.5, path))
}

func TestRenderCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curva.png")
	require.NoError(t, RenderCurve([]int{1, 2, 3}, []float64{0.7, 0.8, 0.9}, []float64{0.65, 0.7, 0.68}, path))
	assertNonEmptyFile(t, path)

	assert.Error(t, RenderCurve([]int{1, 2}, []float64{0.7}, []float64{0.6, 0.6}, path))
}
