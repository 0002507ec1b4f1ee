package nlu

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/bookingbot/server/internal/assistant/model"
)

// LogisticEngine is the reference statistical classifier: multinomial
// logistic regression over TF-IDF features, fitted by full-batch gradient
// descent. Training is deterministic (zero initialization, fixed schedule).
type LogisticEngine struct {
	pre preprocessor
	vec *Vectorizer

	classes []model.Intent
	weights [][]float64 // [class][feature]
	bias    []float64

	epochs int
	lr     float64
	l2     float64

	trained bool
}

func NewLogisticEngine(normalizer *Normalizer, cfg model.ClassifierConfig) *LogisticEngine {
	return &LogisticEngine{
		pre:    preprocessor{normalizer: normalizer},
		vec:    NewVectorizer(cfg),
		epochs: 500,
		lr:     1.0,
		l2:     1e-4,
	}
}

func (e *LogisticEngine) Train(examples []TrainingExample) error {
	if len(examples) == 0 {
		return fmt.Errorf("logistic engine: empty training set")
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = e.pre.clean(ex.Text)
	}
	e.vec.Fit(docs)

	e.classes = classIndex(examples)
	nClasses := len(e.classes)
	dim := e.vec.Dim()

	xs := make([][]float64, len(examples))
	ys := make([]int, len(examples))
	for i, ex := range examples {
		xs[i] = e.vec.Transform(docs[i])
		ys[i] = indexOf(e.classes, ex.Intent)
	}

	e.weights = make([][]float64, nClasses)
	for c := range e.weights {
		e.weights[c] = make([]float64, dim)
	}
	e.bias = make([]float64, nClasses)

	n := float64(len(xs))
	gradW := make([][]float64, nClasses)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, nClasses)

	for epoch := 0; epoch < e.epochs; epoch++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}

		for i, x := range xs {
			p := softmax(e.scores(x))
			for c := range p {
				diff := p[c]
				if c == ys[i] {
					diff -= 1
				}
				for j, xj := range x {
					if xj != 0 {
						gradW[c][j] += diff * xj
					}
				}
				gradB[c] += diff
			}
		}

		for c := range e.weights {
			for j := range e.weights[c] {
				e.weights[c][j] -= e.lr * (gradW[c][j]/n + e.l2*e.weights[c][j])
			}
			e.bias[c] -= e.lr * gradB[c] / n
		}
	}

	e.trained = true
	return nil
}

func (e *LogisticEngine) Predict(text string) (model.IntentPrediction, error) {
	if !e.trained {
		return model.IntentPrediction{}, ErrNotTrained
	}

	x := e.vec.Transform(e.pre.clean(text))
	p := softmax(e.scores(x))

	best := 0
	for c := range p {
		if p[c] > p[best] {
			best = c
		}
	}
	return model.IntentPrediction{Intent: e.classes[best], Confidence: p[best]}, nil
}

func (e *LogisticEngine) scores(x []float64) []float64 {
	out := make([]float64, len(e.classes))
	for c := range e.weights {
		s := e.bias[c]
		for j, xj := range x {
			if xj != 0 {
				s += e.weights[c][j] * xj
			}
		}
		out[c] = s
	}
	return out
}

func softmax(scores []float64) []float64 {
	max := math.Inf(-1)
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

type logisticState struct {
	Vectorizer vectorizerState `json:"vectorizer"`
	Classes    []model.Intent  `json:"classes"`
	Weights    [][]float64     `json:"weights"`
	Bias       []float64       `json:"bias"`
}

// Snapshot serializes the fitted parameters.
func (e *LogisticEngine) Snapshot() ([]byte, error) {
	if !e.trained {
		return nil, ErrNotTrained
	}
	return json.Marshal(logisticState{
		Vectorizer: e.vec.state(),
		Classes:    e.classes,
		Weights:    e.weights,
		Bias:       e.bias,
	})
}

// Restore loads previously fitted parameters, replacing any training.
func (e *LogisticEngine) Restore(data []byte) error {
	var s logisticState
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s.Classes) == 0 || len(s.Weights) != len(s.Classes) {
		return fmt.Errorf("logistic engine: malformed snapshot")
	}
	e.vec.restore(s.Vectorizer)
	e.classes = s.Classes
	e.weights = s.Weights
	e.bias = s.Bias
	e.trained = true
	return nil
}
