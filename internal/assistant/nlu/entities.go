package nlu

import (
	"regexp"
	"strings"

	"github.com/bookingbot/server/internal/assistant/model"
)

// Subject table, ordered: the first entry with a matching keyword wins.
var subjectTable = []struct {
	label    string
	keywords []string
}{
	{"math", []string{"math", "mathematics", "algebra", "geometry"}},
	{"english", []string{"english", "eng"}},
	{"physics", []string{"physics", "phys"}},
	{"chemistry", []string{"chemistry", "chem"}},
	{"biology", []string{"biology", "bio"}},
	{"history", []string{"history", "hist"}},
	{"programming", []string{"programming", "code", "coding", "python", "java", "javascript"}},
	{"literature", []string{"literature", "lit"}},
	{"russian", []string{"russian", "rus"}},
	{"spanish", []string{"spanish", "spa"}},
	{"french", []string{"french", "fra"}},
	{"german", []string{"german", "ger"}},
}

// One or two consecutive capitalized tokens of 2-15 letters each.
var namePattern = regexp.MustCompile(`\b([A-Z][a-z]{1,14}(?:\s+[A-Z][a-z]{1,14})?)\b`)

// Capitalized words that look like names but never are: weekdays, months and
// the action verbs that commonly open a request.
var nameExclusions = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {},
	"Saturday": {}, "Sunday": {},
	"January": {}, "February": {}, "March": {}, "April": {}, "May": {},
	"June": {}, "July": {}, "August": {}, "September": {}, "October": {},
	"November": {}, "December": {},
	"Find": {}, "Search": {}, "Show": {}, "Book": {}, "Cancel": {},
	"View": {}, "Display": {}, "Looking": {}, "Need": {}, "Want": {},
}

// Action keyword groups in priority order; the first group with a match wins.
var actionGroups = []struct {
	action   string
	keywords []string
}{
	{"book", []string{"book", "reserve", "schedule", "appoint"}},
	{"cancel", []string{"cancel", "remove", "delete", "abort"}},
	{"view", []string{"show", "view", "display", "list"}},
}

// EntityExtractor pulls structured entities (subject, tutor name, date, time,
// action) out of one utterance.
type EntityExtractor struct {
	dt *DateTimeExtractor
}

func NewEntityExtractor(dt *DateTimeExtractor) *EntityExtractor {
	return &EntityExtractor{dt: dt}
}

// Subject returns the canonical subject label for the first keyword found in
// the text. Table order is the tie-break when several subjects match.
func (e *EntityExtractor) Subject(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, s := range subjectTable {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.label, true
			}
		}
	}
	return "", false
}

// TutorName scans the original-cased text for capitalized word sequences and
// returns the first one containing no known non-name word. The check is per
// token so "Show Monday" is rejected even though the pair is not in the set.
func (e *EntityExtractor) TutorName(text string) (string, bool) {
	for _, m := range namePattern.FindAllString(text, -1) {
		if !containsExcludedToken(m) {
			return m, true
		}
	}
	return "", false
}

func containsExcludedToken(match string) bool {
	for _, token := range strings.Fields(match) {
		if _, excluded := nameExclusions[token]; excluded {
			return true
		}
	}
	return false
}

// Action detects an explicit action verb: book, cancel or view.
func (e *EntityExtractor) Action(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, g := range actionGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.action, true
			}
		}
	}
	return "", false
}

// ExtractAll runs every extractor for one turn. Date, time, subject and
// action read the normalized text; tutor names need the original casing.
func (e *EntityExtractor) ExtractAll(raw, normalized string) model.EntityBag {
	bag := model.EntityBag{}

	if v, ok := e.Subject(normalized); ok {
		bag[model.EntitySubject] = v
	}
	if v, ok := e.TutorName(raw); ok {
		bag[model.EntityTutorName] = v
	}
	if v, ok := e.dt.Date(normalized); ok {
		bag[model.EntityDate] = v
	}
	if v, ok := e.dt.Time(normalized); ok {
		bag[model.EntityTime] = v
	}
	if v, ok := e.Action(normalized); ok {
		bag[model.EntityAction] = v
	}

	return bag
}
