package report

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"falhaaudiencia/internal/models"
)

var ErrNoTree = errors.New("report: árvore não treinada")

// ClassNames labels classes 0 and 1 in the tree diagram.
var ClassNames = []string{"No Fail", "Fail"}

var classColors = [2]color.RGBA{
	{R: 229, G: 129, B: 57, A: 255},
	{R: 57, G: 157, B: 229, A: 255},
}

type treeNode struct {
	x, y   float64
	parent int
	label  string
	fill   color.Color
}

// treePlotter draws a fitted tree with leaves spread along x and depth
// going down along y.
type treePlotter struct {
	nodes  []treeNode
	leaves int
	depth  int

	Text   text.Style
	Edge   draw.LineStyle
	Border draw.LineStyle
	Pad    vg.Length
}

func newTreePlotter(root *models.DTNode, featureNames, classNames []string, sty text.Style) *treePlotter {
	tp := &treePlotter{
		Text:   sty,
		Edge:   draw.LineStyle{Color: color.Gray{Y: 0x60}, Width: vg.Points(0.8)},
		Border: draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		Pad:    vg.Points(3),
	}
	tp.layout(root, -1, 0, featureNames, classNames)
	return tp
}

// layout places leaves left to right and centres each split above its
// children. It returns the index of n in tp.nodes.
func (tp *treePlotter) layout(n *models.DTNode, parent, depth int, featureNames, classNames []string) int {
	idx := len(tp.nodes)
	tp.nodes = append(tp.nodes, treeNode{
		y:      -float64(depth),
		parent: parent,
		label:  nodeLabel(n, featureNames, classNames),
		fill:   nodeColor(n),
	})
	if depth > tp.depth {
		tp.depth = depth
	}
	if n.IsLeaf || n.Left == nil || n.Right == nil {
		tp.nodes[idx].x = float64(tp.leaves)
		tp.leaves++
		return idx
	}
	l := tp.layout(n.Left, idx, depth+1, featureNames, classNames)
	r := tp.layout(n.Right, idx, depth+1, featureNames, classNames)
	tp.nodes[idx].x = (tp.nodes[l].x + tp.nodes[r].x) / 2
	return idx
}

func (tp *treePlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.5, float64(tp.leaves) - 0.5, -float64(tp.depth) - 0.5, 0.5
}

func (tp *treePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, n := range tp.nodes {
		if n.parent < 0 {
			continue
		}
		p := tp.nodes[n.parent]
		c.StrokeLine2(tp.Edge, trX(p.x), trY(p.y), trX(n.x), trY(n.y))
	}
	for _, n := range tp.nodes {
		pt := vg.Point{X: trX(n.x), Y: trY(n.y)}
		w := tp.Text.Width(n.label)/2 + tp.Pad
		h := tp.Text.Height(n.label)/2 + tp.Pad
		box := []vg.Point{
			{X: pt.X - w, Y: pt.Y - h},
			{X: pt.X + w, Y: pt.Y - h},
			{X: pt.X + w, Y: pt.Y + h},
			{X: pt.X - w, Y: pt.Y + h},
		}
		c.FillPolygon(n.fill, box)
		c.StrokeLines(tp.Border, append(box, box[0]))
		c.FillText(tp.Text, pt, n.label)
	}
}

func nodeLabel(n *models.DTNode, featureNames, classNames []string) string {
	var lines []string
	if !n.IsLeaf && n.Left != nil {
		lines = append(lines, fmt.Sprintf("%s <= %.2f", featureName(n.Feature, featureNames), n.Threshold))
	}
	lines = append(lines,
		fmt.Sprintf("gini = %.3f", n.Impurity),
		fmt.Sprintf("samples = %d", n.Samples),
		fmt.Sprintf("value = [%.1f, %.1f]", n.Value[0], n.Value[1]),
		fmt.Sprintf("class = %s", className(majority(n), classNames)),
	)
	return strings.Join(lines, "\n")
}

func featureName(i int, names []string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("X[%d]", i)
}

func className(c int, names []string) string {
	if c < len(names) {
		return names[c]
	}
	return fmt.Sprint(c)
}

// majority follows the classifier's rule: class 1 only when it outweighs
// class 0.
func majority(n *models.DTNode) int {
	if n.Value[1] > n.Value[0] {
		return 1
	}
	return 0
}

// nodeColor blends the majority class colour with white by node purity.
func nodeColor(n *models.DTNode) color.Color {
	total := n.Value[0] + n.Value[1]
	base := classColors[majority(n)]
	if total == 0 {
		return color.White
	}
	p := n.Value[majority(n)] / total
	a := (p - 0.5) / 0.5
	blend := func(v uint8) uint8 { return uint8(255 - a*(255-float64(v))) }
	return color.RGBA{R: blend(base.R), G: blend(base.G), B: blend(base.B), A: 255}
}

func nodeTextStyle(p *plot.Plot) text.Style {
	sty := p.Title.TextStyle
	sty.Font.Size = vg.Points(7)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	return sty
}

// RenderTree draws the fitted tree to path. The image format follows the
// file extension (png, svg, pdf, ...). Nil classNames uses ClassNames.
func RenderTree(root *models.DTNode, featureNames, classNames []string, path string) error {
	if root == nil {
		return ErrNoTree
	}
	if classNames == nil {
		classNames = ClassNames
	}
	p := plot.New()
	p.Title.Text = "Árvore de Decisão"
	p.HideAxes()

	tp := newTreePlotter(root, featureNames, classNames, nodeTextStyle(p))
	p.Add(tp)

	width := vg.Length(max(8, 1.8*float64(tp.leaves))) * vg.Inch
	height := vg.Length(1.4*float64(tp.depth+1)+0.5) * vg.Inch
	return save(p, width, height, path)
}
