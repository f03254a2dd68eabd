package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CandidateDraft(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantErr    bool
		wantFields []string
	}{
		{
			name: "complete draft",
			json: `{"fullName":"Jane Doe","email":"jane@example.com","phone":"555-0100","summary":"Go engineer","skills":["Go","Kafka"],"yearsOfExperience":6.5}`,
		},
		{
			name: "optional fields null",
			json: `{"fullName":"Jane Doe","email":"jane@example.com","phone":null,"summary":"Go engineer","skills":["Go"],"yearsOfExperience":null}`,
		},
		{
			name: "optional fields absent",
			json: `{"fullName":"Jane Doe","email":"jane@example.com","summary":"Go engineer","skills":[]}`,
		},
		{
			name:    "missing skills",
			json:    `{"fullName":"Jane Doe","email":"jane@example.com","summary":"Go engineer"}`,
			wantErr: true,
		},
		{
			name:       "skills not strings",
			json:       `{"fullName":"Jane","email":"j@x","summary":"s","skills":[1,2]}`,
			wantErr:    true,
			wantFields: []string{"skills.0", "skills.1"},
		},
		{
			name:       "negative experience",
			json:       `{"fullName":"Jane","email":"j@x","summary":"s","skills":[],"yearsOfExperience":-1}`,
			wantErr:    true,
			wantFields: []string{"yearsOfExperience"},
		},
		{
			name:    "array instead of object",
			json:    `[]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(CandidateDraft, tt.json)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, validationErr.Fields())
			}
		})
	}
}

func TestValidate_SearchResults(t *testing.T) {
	assert.NoError(t, Validate(SearchResults, `[]`))
	assert.NoError(t, Validate(SearchResults, `[{"candidateId":"1","score":95,"matchReasoning":"Strong Java"}]`))
	assert.NoError(t, Validate(SearchResults, `[{"candidateId":"1","score":140,"matchReasoning":"out of range is kept"}]`))

	err := Validate(SearchResults, `[{"candidateId":"1","score":"high","matchReasoning":"x"}]`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"0.score"}, validationErr.Fields())

	err = Validate(SearchResults, `{"candidateId":"1"}`)
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", `{}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
	assert.Contains(t, err.Error(), "schema not found")
}

func TestValidate_MalformedDocument(t *testing.T) {
	for _, doc := range []string{`{not json`, ``, `{"fullName": "Jane"`} {
		assert.ErrorIs(t, Validate(CandidateDraft, doc), ErrMalformedDocument, doc)
	}
}

func TestValidate_RecordsSchemaAndType(t *testing.T) {
	err := Validate(SearchResults, `[{"candidateId":"1","score":"high","matchReasoning":"x"}]`)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, SearchResults, validationErr.Schema)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "invalid_type", validationErr.Errors[0].Type)
}

func TestLoad_EmbeddedSchemas(t *testing.T) {
	for _, name := range []Name{CandidateDraft, SearchResults} {
		raw, err := Load(name)
		require.NoError(t, err, name)
		assert.Contains(t, raw, `"$schema"`, name)

		schema, err := compile(name)
		require.NoError(t, err, name)
		again, err := compile(name)
		require.NoError(t, err, name)
		assert.Same(t, schema, again)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Schema: CandidateDraft, Errors: []FieldError{
		{Field: "email", Message: "Invalid type"},
		{Field: "(root)", Message: "skills is required"},
	}}

	assert.Equal(t, "candidate_draft: 2 validation error(s): email: Invalid type; (root): skills is required", err.Error())
	assert.Equal(t, []string{"email", "(root)"}, err.Fields())
}
