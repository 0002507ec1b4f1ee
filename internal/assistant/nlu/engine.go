package nlu

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bookingbot/server/internal/assistant/model"
)

// ErrNotTrained is returned when Predict is called on an engine that has not
// been fitted. This is a wiring bug, not a user-input condition, and callers
// must not suppress it.
var ErrNotTrained = errors.New("intent engine not trained")

// Engine kinds selectable at construction time.
const (
	EngineLogistic     = "logistic"
	EngineDecisionTree = "decision_tree"
	EngineKNN          = "knn"
	EngineKeyword      = "keyword"
)

// TrainingExample is one labeled phrase of the intent corpus.
type TrainingExample struct {
	Text   string       `json:"text"`
	Intent model.Intent `json:"intent"`
}

// IntentEngine classifies an utterance into an intent with a confidence.
// Implementations are interchangeable from the caller's point of view.
type IntentEngine interface {
	Train(examples []TrainingExample) error
	Predict(text string) (model.IntentPrediction, error)
}

// Snapshotter is implemented by engines whose fitted parameters can be
// serialized and restored.
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(data []byte) error
}

// NewEngine constructs the engine variant named by kind.
func NewEngine(kind string, normalizer *Normalizer, cfg model.ClassifierConfig) (IntentEngine, error) {
	switch kind {
	case EngineLogistic:
		return NewLogisticEngine(normalizer, cfg), nil
	case EngineDecisionTree:
		return NewTreeEngine(normalizer, cfg), nil
	case EngineKNN:
		return NewKNNEngine(normalizer, cfg), nil
	case EngineKeyword:
		return NewKeywordEngine(), nil
	default:
		return nil, fmt.Errorf("unknown intent engine kind %q", kind)
	}
}

var punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// preprocessor applies the shared text cleanup used by the statistical
// engines: normalization, punctuation stripping, whitespace collapsing.
type preprocessor struct {
	normalizer *Normalizer
}

func (p preprocessor) clean(text string) string {
	if p.normalizer != nil {
		text = p.normalizer.Normalize(text)
	} else {
		text = strings.ToLower(text)
	}
	text = punctPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// classIndex assigns every distinct intent a stable index, sorted by label.
func classIndex(examples []TrainingExample) []model.Intent {
	seen := make(map[model.Intent]struct{})
	var classes []model.Intent
	for _, ex := range examples {
		if _, ok := seen[ex.Intent]; !ok {
			seen[ex.Intent] = struct{}{}
			classes = append(classes, ex.Intent)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

func indexOf(classes []model.Intent, intent model.Intent) int {
	for i, c := range classes {
		if c == intent {
			return i
		}
	}
	return -1
}
