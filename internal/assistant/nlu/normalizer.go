package nlu

import (
	"encoding/json"
	"os"
	"strings"

	logx "github.com/bookingbot/server/pkg/logger"
)

// Normalizer lowercases input, fixes known typos from an injected correction
// table and collapses whitespace. The table is read-only after construction.
type Normalizer struct {
	corrections map[string]string
}

// NewNormalizer builds a normalizer around the given correction table. The
// table is keyed on lowercased misspelled tokens; a nil table disables
// correction.
func NewNormalizer(corrections map[string]string) *Normalizer {
	if corrections == nil {
		corrections = map[string]string{}
	}
	return &Normalizer{corrections: corrections}
}

// NewNormalizerFromFile loads the correction table from path. A missing or
// malformed resource degrades to an empty table so a bad deployment never
// fails a turn.
func NewNormalizerFromFile(path string) *Normalizer {
	corrections, err := LoadCorrections(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("typo corrections unavailable, continuing without")
		corrections = map[string]string{}
	}
	return NewNormalizer(corrections)
}

type correctionsFile struct {
	Corrections map[string]string `json:"corrections"`
}

// LoadCorrections reads a typo-correction table from a JSON resource of the
// form {"corrections": {"bok": "book", ...}}.
func LoadCorrections(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f correctionsFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f.Corrections == nil {
		f.Corrections = map[string]string{}
	}
	return f.Corrections, nil
}

// FixTypos replaces tokens whose lowercased form appears in the correction
// table. Tokens without a correction pass through unchanged, keeping their
// original casing.
func (n *Normalizer) FixTypos(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if fixed, ok := n.corrections[strings.ToLower(w)]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// Normalize lowercases text, replaces tokens found in the correction table
// and collapses runs of whitespace to single spaces.
func (n *Normalizer) Normalize(text string) string {
	return n.FixTypos(strings.ToLower(text))
}
