package nlu

import (
	"strings"

	"github.com/bookingbot/server/internal/assistant/model"
)

// Fixed confidences reported by the keyword rules. These are moderate
// constants, not calibrated probabilities.
const (
	keywordMatchConfidence   = 0.7
	keywordDefaultConfidence = 0.5
)

var (
	searchWords  = []string{"find", "search", "looking"}
	bookingWords = []string{"booking", "appointment", "schedule"}
	cancelWords  = []string{"cancel", "delete", "remove"}
)

// KeywordEngine is the deterministic fallback used when no trained
// statistical model is available. Rules are checked in a fixed order and the
// first match wins.
type KeywordEngine struct{}

func NewKeywordEngine() *KeywordEngine {
	return &KeywordEngine{}
}

// Train is a no-op; the rules are fixed.
func (e *KeywordEngine) Train(examples []TrainingExample) error {
	return nil
}

func (e *KeywordEngine) Predict(text string) (model.IntentPrediction, error) {
	lower := strings.ToLower(text)

	if containsAny(lower, searchWords) {
		return model.IntentPrediction{Intent: model.IntentSearchTutor, Confidence: keywordMatchConfidence}, nil
	}

	if containsAny(lower, bookingWords) {
		if containsAny(lower, cancelWords) {
			return model.IntentPrediction{Intent: model.IntentCancelBooking, Confidence: keywordMatchConfidence}, nil
		}
		return model.IntentPrediction{Intent: model.IntentViewBookings, Confidence: keywordMatchConfidence}, nil
	}

	if containsAny(lower, cancelWords) {
		return model.IntentPrediction{Intent: model.IntentCancelBooking, Confidence: keywordMatchConfidence}, nil
	}

	return model.IntentPrediction{Intent: model.IntentGeneral, Confidence: keywordDefaultConfidence}, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
