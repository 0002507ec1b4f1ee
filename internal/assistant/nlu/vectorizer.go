package nlu

import (
	"math"
	"sort"
	"strings"

	"github.com/bookingbot/server/internal/assistant/model"
)

// Common English stop-words excluded from the feature space.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "am": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "but": {}, "by": {},
	"can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "few": {}, "for": {}, "from": {},
	"further": {}, "had": {}, "has": {}, "have": {}, "having": {}, "he": {},
	"her": {}, "here": {}, "hers": {}, "him": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {}, "me": {}, "more": {}, "most": {}, "my": {}, "no": {},
	"nor": {}, "not": {}, "now": {}, "of": {}, "off": {}, "on": {},
	"once": {}, "only": {}, "or": {}, "other": {}, "our": {}, "ours": {},
	"out": {}, "over": {}, "own": {}, "s": {}, "same": {}, "she": {},
	"so": {}, "some": {}, "such": {}, "t": {}, "than": {}, "that": {},
	"the": {}, "their": {}, "theirs": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {}, "under": {}, "until": {}, "up": {},
	"very": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "who": {}, "whom": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {}, "yours": {},
}

// Vectorizer turns short texts into L2-normalized TF-IDF vectors over word
// n-grams. The vocabulary is capped to the most frequent terms across the
// training corpus.
type Vectorizer struct {
	ngramMin    int
	ngramMax    int
	maxFeatures int

	vocab map[string]int
	idf   []float64
}

func NewVectorizer(cfg model.ClassifierConfig) *Vectorizer {
	ngramMin, ngramMax := cfg.NgramMin, cfg.NgramMax
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	maxFeatures := cfg.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = 500
	}
	return &Vectorizer{ngramMin: ngramMin, ngramMax: ngramMax, maxFeatures: maxFeatures}
}

// terms produces the n-gram terms of one document, stop-words removed.
func (v *Vectorizer) terms(doc string) []string {
	raw := strings.Fields(doc)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := stopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}

	var out []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Fit builds the capped vocabulary and IDF weights from the corpus.
func (v *Vectorizer) Fit(docs []string) {
	totals := make(map[string]int)
	df := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			totals[term]++
			seen[term] = struct{}{}
		}
		for term := range seen {
			df[term]++
		}
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	// Keep the most frequent terms; lexicographic tie-break for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Fitted reports whether Fit has been called.
func (v *Vectorizer) Fitted() bool {
	return v.vocab != nil
}

// Dim returns the size of the feature space.
func (v *Vectorizer) Dim() int {
	return len(v.idf)
}

// Transform maps one document into the fitted TF-IDF space.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range v.terms(doc) {
		if i, ok := v.vocab[term]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// vectorizerState is the serialized form of a fitted vectorizer.
type vectorizerState struct {
	NgramMin    int            `json:"ngram_min"`
	NgramMax    int            `json:"ngram_max"`
	MaxFeatures int            `json:"max_features"`
	Vocab       map[string]int `json:"vocab"`
	IDF         []float64      `json:"idf"`
}

func (v *Vectorizer) state() vectorizerState {
	return vectorizerState{
		NgramMin:    v.ngramMin,
		NgramMax:    v.ngramMax,
		MaxFeatures: v.maxFeatures,
		Vocab:       v.vocab,
		IDF:         v.idf,
	}
}

func (v *Vectorizer) restore(s vectorizerState) {
	v.ngramMin = s.NgramMin
	v.ngramMax = s.NgramMax
	v.maxFeatures = s.MaxFeatures
	v.vocab = s.Vocab
	v.idf = s.IDF
}
