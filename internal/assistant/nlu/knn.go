package nlu

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bookingbot/server/internal/assistant/model"
)

// KNNEngine classifies by cosine similarity against the stored training
// vectors, with distance-weighted voting over the k nearest neighbors.
type KNNEngine struct {
	pre preprocessor
	vec *Vectorizer

	k       int
	classes []model.Intent
	points  [][]float64
	labels  []int

	trained bool
}

func NewKNNEngine(normalizer *Normalizer, cfg model.ClassifierConfig) *KNNEngine {
	return &KNNEngine{
		pre: preprocessor{normalizer: normalizer},
		vec: NewVectorizer(cfg),
		k:   5,
	}
}

func (e *KNNEngine) Train(examples []TrainingExample) error {
	if len(examples) == 0 {
		return fmt.Errorf("knn engine: empty training set")
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = e.pre.clean(ex.Text)
	}
	e.vec.Fit(docs)

	e.classes = classIndex(examples)
	e.points = make([][]float64, len(examples))
	e.labels = make([]int, len(examples))
	for i, ex := range examples {
		e.points[i] = e.vec.Transform(docs[i])
		e.labels[i] = indexOf(e.classes, ex.Intent)
	}

	e.trained = true
	return nil
}

func (e *KNNEngine) Predict(text string) (model.IntentPrediction, error) {
	if !e.trained {
		return model.IntentPrediction{}, ErrNotTrained
	}

	x := e.vec.Transform(e.pre.clean(text))

	type neighbor struct {
		sim   float64
		label int
	}
	neighbors := make([]neighbor, len(e.points))
	for i, p := range e.points {
		neighbors[i] = neighbor{sim: dot(x, p), label: e.labels[i]}
	}
	sort.SliceStable(neighbors, func(i, j int) bool { return neighbors[i].sim > neighbors[j].sim })

	k := e.k
	if k > len(neighbors) {
		k = len(neighbors)
	}

	// Distance-weighted vote; vectors are L2-normalized so cosine distance
	// is 1 - dot.
	votes := make([]float64, len(e.classes))
	var total float64
	for _, nb := range neighbors[:k] {
		w := 1.0 / (1e-9 + 1.0 - nb.sim)
		votes[nb.label] += w
		total += w
	}

	best := 0
	for c := range votes {
		if votes[c] > votes[best] {
			best = c
		}
	}
	confidence := 0.0
	if total > 0 {
		confidence = votes[best] / total
	}
	return model.IntentPrediction{Intent: e.classes[best], Confidence: confidence}, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

type knnState struct {
	Vectorizer vectorizerState `json:"vectorizer"`
	K          int             `json:"k"`
	Classes    []model.Intent  `json:"classes"`
	Points     [][]float64     `json:"points"`
	Labels     []int           `json:"labels"`
}

func (e *KNNEngine) Snapshot() ([]byte, error) {
	if !e.trained {
		return nil, ErrNotTrained
	}
	return json.Marshal(knnState{
		Vectorizer: e.vec.state(),
		K:          e.k,
		Classes:    e.classes,
		Points:     e.points,
		Labels:     e.labels,
	})
}

func (e *KNNEngine) Restore(data []byte) error {
	var s knnState
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s.Classes) == 0 || len(s.Points) != len(s.Labels) {
		return fmt.Errorf("knn engine: malformed snapshot")
	}
	e.vec.restore(s.Vectorizer)
	if s.K > 0 {
		e.k = s.K
	}
	e.classes = s.Classes
	e.points = s.Points
	e.labels = s.Labels
	e.trained = true
	return nil
}
