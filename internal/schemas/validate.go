// Package schemas validates model responses against the embedded JSON Schemas.
package schemas

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Name identifies an embedded schema; the file is <name>.schema.json.
type Name string

const (
	CandidateDraft Name = "candidate_draft"
	SearchResults  Name = "search_results"
)

// ErrMalformedDocument is returned when the document is not JSON at all.
var ErrMalformedDocument = errors.New("document is not valid JSON")

// FieldError is one failed constraint. Field is a dotted path such as
// "0.score", or "(root)".
type FieldError struct {
	Field   string
	Type    string
	Message string
}

// ValidationError lists every constraint a document failed.
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return fmt.Sprintf("%s: %d validation error(s): %s", ve.Schema, len(ve.Errors), strings.Join(parts, "; "))
}

// Fields returns the paths of the failing fields.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// SchemaLoadError means an embedded schema is missing or does not compile.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (n Name) path() string { return string(n) + ".schema.json" }

// Load returns the raw content of an embedded schema.
func Load(name Name) (string, error) {
	data, err := schemaFiles.ReadFile(name.path())
	if err != nil {
		return "", &SchemaLoadError{Path: name.path(), Message: "schema not found", Cause: err}
	}
	return string(data), nil
}

var (
	compiledMu sync.Mutex
	compiled   = make(map[Name]*gojsonschema.Schema)
)

func compile(name Name) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}
	raw, err := Load(name)
	if err != nil {
		return nil, err
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Path: name.path(), Message: "schema does not compile", Cause: err}
	}
	compiled[name] = schema
	return schema, nil
}

// Validate checks document against the embedded schema called name. It
// returns ErrMalformedDocument, a *SchemaLoadError or a *ValidationError.
func Validate(name Name, document string) error {
	schema, err := compile(name)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(document)) {
		return ErrMalformedDocument
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Type: desc.Type(), Message: desc.Description()})
	}
	return ve
}
