package nlu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizerFixTypos(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"bok":     "book",
		"tomorow": "tomorrow",
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "known typo replaced", input: "bok a class", want: "book a class"},
		{name: "typo matched case-insensitively", input: "Bok a class", want: "book a class"},
		{name: "unknown tokens keep their casing", input: "Bok NOW please", want: "book NOW please"},
		{name: "multiple typos in one utterance", input: "bok for tomorow", want: "book for tomorrow"},
		{name: "whitespace collapsed", input: "  bok   a   class  ", want: "book a class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.FixTypos(tt.input))
		})
	}
}

func TestNormalizerNormalize(t *testing.T) {
	n := NewNormalizer(map[string]string{"cancl": "cancel"})

	assert.Equal(t, "i want to cancel my class", n.Normalize("I Want To CANCL my class"))
	assert.Equal(t, "no corrections here", n.Normalize("No Corrections HERE"))
}

func TestNormalizerFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrections.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"corrections":{"shedule":"schedule"}}`), 0o644))

	n := NewNormalizerFromFile(path)
	assert.Equal(t, "show schedule", n.Normalize("show SHEDULE"))
}

func TestNormalizerFromFileDegradesToEmptyTable(t *testing.T) {
	missing := NewNormalizerFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, "bok a class", missing.Normalize("BOK a class"))

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	malformed := NewNormalizerFromFile(bad)
	assert.Equal(t, "bok a class", malformed.Normalize("bok a class"))
}
