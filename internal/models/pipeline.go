package models

// Pipeline chains a fit-time sampler and a classifier. Prediction goes
// straight to the classifier, so resampling never touches scoring data.
type Pipeline struct {
	Sampler    Sampler
	Classifier Model

	// FitRows is the number of rows the classifier was trained on.
	FitRows int
}

func NewPipeline(s Sampler, c Model) *Pipeline {
	return &Pipeline{Sampler: s, Classifier: c}
}

func (p *Pipeline) Name() string {
	if p.Sampler == nil {
		return p.Classifier.Name()
	}
	return "SMOTE+" + p.Classifier.Name()
}

func (p *Pipeline) Fit(X [][]float64, y []int) error {
	Xr, yr := X, y
	if p.Sampler != nil {
		var err error
		Xr, yr, err = p.Sampler.Resample(X, y)
		if err != nil {
			return err
		}
	}
	if err := p.Classifier.Fit(Xr, yr); err != nil {
		return err
	}
	p.FitRows = len(Xr)
	return nil
}

func (p *Pipeline) Predict(X [][]float64) []int { return p.Classifier.Predict(X) }

func (p *Pipeline) PredictProba(X [][]float64) []float64 { return p.Classifier.PredictProba(X) }

// Tree returns the classifier's tree, or nil when it does not expose one.
func (p *Pipeline) Tree() *DTNode {
	if tm, ok := p.Classifier.(TreeModel); ok {
		return tm.Tree()
	}
	return nil
}
