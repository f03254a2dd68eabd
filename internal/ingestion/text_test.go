package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n  \n\t ", ""},
		{"inner whitespace", "Line    with \t multiple    spaces", "Line with multiple spaces"},
		{"line endings", "Line 1\r\nLine 2\rLine 3\nLine 4", "Line 1\nLine 2\nLine 3\nLine 4"},
		{"blank line runs", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"leading and trailing blanks", "\n\n  John Doe  \n\n", "  John Doe"},
		{"headings lose indentation", "   ## Experience\nAcme", "## Experience\nAcme"},
		{"indentation is capped", "              deep", "        deep"},
		{"invisible runes", "\ufeffJane\u200b Doe\u00a0Smith", "Jane Doe Smith"},
		{"unicode kept", "Test with émojis 🚀 and spéciàl chàracters", "Test with émojis 🚀 and spéciàl chàracters"},
		{
			name:  "bullet glyphs",
			input: "• Go\n  ▪ Kubernetes\n* Kafka\n- Docker\n● Terraform",
			want:  "- Go\n  - Kubernetes\n- Kafka\n- Docker\n- Terraform",
		},
		{"lone dash is not a bullet", "-", "-"},
		{"hyphenated word is not a bullet", "-- Java", "-- Java"},
		{
			name:  "resume layout",
			input: "  # Jane   Doe\r\n\r\n\r\n\r\nSenior\u00a0Engineer    at   Acme\n  • Go\n  • Kubernetes   \n\n\n",
			want:  "# Jane Doe\n\nSenior Engineer at Acme\n  - Go\n  - Kubernetes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "Test content   with   spaces\n\n\n• Multiple   blank   lines\r\n"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}

func TestFromText(t *testing.T) {
	cleaned, metadata, err := FromText("John Doe\n\n\n\njohn@example.com  ")
	require.NoError(t, err)

	assert.Equal(t, "John Doe\n\njohn@example.com", cleaned)
	assert.Equal(t, SourceText, metadata.Kind)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Len(t, metadata.Hash, 64)
}

func TestFromText_Empty(t *testing.T) {
	_, _, err := FromText(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}
