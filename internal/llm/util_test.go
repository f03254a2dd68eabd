package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain draft",
			input: `{"fullName": "Alice Java", "skills": ["Java"]}`,
			want:  `{"fullName": "Alice Java", "skills": ["Java"]}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"fullName\": \"Alice Java\"}\n```",
			want:  `{"fullName": "Alice Java"}`,
		},
		{
			name:  "bare fence",
			input: "```\n[{\"candidateId\": \"1\", \"score\": 90}]\n```",
			want:  `[{"candidateId": "1", "score": 90}]`,
		},
		{
			name:  "fence with other language tag",
			input: "```javascript\n{\"email\": \"a@example.com\"}\n```",
			want:  `{"email": "a@example.com"}`,
		},
		{
			name:  "fence without newline",
			input: "```{\"summary\": \"Backend engineer\"}```",
			want:  `{"summary": "Backend engineer"}`,
		},
		{
			name:  "preamble before object is kept",
			input: "Here is the extracted profile:\n{\"fullName\": \"Bob React\"}",
			want:  "Here is the extracted profile:\n{\"fullName\": \"Bob React\"}",
		},
		{
			name:  "trailing prose after array is kept",
			input: "[{\"candidateId\": \"2\", \"score\": 40}]\nLet me know if you need more.  ",
			want:  "[{\"candidateId\": \"2\", \"score\": 40}]\nLet me know if you need more.",
		},
		{
			name:  "fenced json with brackets inside strings",
			input: "```json\n{\"matchReasoning\": \"Knows {Spring} and [Kafka]\", \"score\": 70}\n```",
			want:  `{"matchReasoning": "Knows {Spring} and [Kafka]", "score": 70}`,
		},
		{
			name:  "no json",
			input: "  I could not read this resume.  ",
			want:  "I could not read this resume.",
		},
		{
			name:  "truncated object is returned as is",
			input: `{"fullName": "Alice`,
			want:  `{"fullName": "Alice`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
