package nlu

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bookingbot/server/internal/assistant/model"
)

// TreeEngine is a CART-style decision tree over TF-IDF features, splitting on
// gini impurity. Leaf class distributions provide the posterior.
type TreeEngine struct {
	pre preprocessor
	vec *Vectorizer

	classes []model.Intent
	root    *treeNode

	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int

	trained bool
}

type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Probs     []float64 `json:"probs,omitempty"`
}

func (n *treeNode) leaf() bool {
	return n.Left == nil && n.Right == nil
}

func NewTreeEngine(normalizer *Normalizer, cfg model.ClassifierConfig) *TreeEngine {
	return &TreeEngine{
		pre:             preprocessor{normalizer: normalizer},
		vec:             NewVectorizer(cfg),
		maxDepth:        10,
		minSamplesSplit: 5,
		minSamplesLeaf:  2,
	}
}

func (e *TreeEngine) Train(examples []TrainingExample) error {
	if len(examples) == 0 {
		return fmt.Errorf("tree engine: empty training set")
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = e.pre.clean(ex.Text)
	}
	e.vec.Fit(docs)

	e.classes = classIndex(examples)
	xs := make([][]float64, len(examples))
	ys := make([]int, len(examples))
	for i, ex := range examples {
		xs[i] = e.vec.Transform(docs[i])
		ys[i] = indexOf(e.classes, ex.Intent)
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	e.root = e.build(xs, ys, idx, 0)

	e.trained = true
	return nil
}

func (e *TreeEngine) build(xs [][]float64, ys []int, idx []int, depth int) *treeNode {
	probs := e.distribution(ys, idx)

	if depth >= e.maxDepth || len(idx) < e.minSamplesSplit || pure(ys, idx) {
		return &treeNode{Probs: probs}
	}

	feature, threshold, ok := e.bestSplit(xs, ys, idx)
	if !ok {
		return &treeNode{Probs: probs}
	}

	var left, right []int
	for _, i := range idx {
		if xs[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < e.minSamplesLeaf || len(right) < e.minSamplesLeaf {
		return &treeNode{Probs: probs}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      e.build(xs, ys, left, depth+1),
		Right:     e.build(xs, ys, right, depth+1),
	}
}

func (e *TreeEngine) bestSplit(xs [][]float64, ys []int, idx []int) (int, float64, bool) {
	bestGini := gini(ys, idx, len(e.classes))
	bestFeature, bestThreshold := -1, 0.0

	dim := e.vec.Dim()
	values := make([]float64, 0, len(idx))

	for f := 0; f < dim; f++ {
		values = values[:0]
		for _, i := range idx {
			values = append(values, xs[i][f])
		}
		sort.Float64s(values)

		for k := 0; k+1 < len(values); k++ {
			if values[k] == values[k+1] {
				continue
			}
			threshold := (values[k] + values[k+1]) / 2

			var left, right []int
			for _, i := range idx {
				if xs[i][f] <= threshold {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) < e.minSamplesLeaf || len(right) < e.minSamplesLeaf {
				continue
			}

			g := (float64(len(left))*gini(ys, left, len(e.classes)) +
				float64(len(right))*gini(ys, right, len(e.classes))) / float64(len(idx))
			if g < bestGini {
				bestGini = g
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (e *TreeEngine) distribution(ys []int, idx []int) []float64 {
	probs := make([]float64, len(e.classes))
	for _, i := range idx {
		probs[ys[i]]++
	}
	for c := range probs {
		probs[c] /= float64(len(idx))
	}
	return probs
}

func pure(ys []int, idx []int) bool {
	for _, i := range idx[1:] {
		if ys[i] != ys[idx[0]] {
			return false
		}
	}
	return true
}

func gini(ys []int, idx []int, nClasses int) float64 {
	counts := make([]float64, nClasses)
	for _, i := range idx {
		counts[ys[i]]++
	}
	g := 1.0
	n := float64(len(idx))
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func (e *TreeEngine) Predict(text string) (model.IntentPrediction, error) {
	if !e.trained {
		return model.IntentPrediction{}, ErrNotTrained
	}

	x := e.vec.Transform(e.pre.clean(text))
	node := e.root
	for !node.leaf() {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}

	best := 0
	for c := range node.Probs {
		if node.Probs[c] > node.Probs[best] {
			best = c
		}
	}
	return model.IntentPrediction{Intent: e.classes[best], Confidence: node.Probs[best]}, nil
}

type treeState struct {
	Vectorizer vectorizerState `json:"vectorizer"`
	Classes    []model.Intent  `json:"classes"`
	Root       *treeNode       `json:"root"`
}

func (e *TreeEngine) Snapshot() ([]byte, error) {
	if !e.trained {
		return nil, ErrNotTrained
	}
	return json.Marshal(treeState{
		Vectorizer: e.vec.state(),
		Classes:    e.classes,
		Root:       e.root,
	})
}

func (e *TreeEngine) Restore(data []byte) error {
	var s treeState
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s.Classes) == 0 || s.Root == nil {
		return fmt.Errorf("tree engine: malformed snapshot")
	}
	e.vec.restore(s.Vectorizer)
	e.classes = s.Classes
	e.root = s.Root
	e.trained = true
	return nil
}
