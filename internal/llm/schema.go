package llm

import (
	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/genai"
)

// SchemaType is a JSON value type understood by every provider.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
)

// Schema describes the expected shape of a JSON response. It is the
// provider-neutral subset of the OpenAPI schema both Gemini SDKs accept.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

func (s *Schema) toGemini() *gemini.Schema {
	if s == nil {
		return nil
	}
	out := &gemini.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeObject:
		out.Type = gemini.TypeObject
	case TypeArray:
		out.Type = gemini.TypeArray
	case TypeNumber:
		out.Type = gemini.TypeNumber
	case TypeInteger:
		out.Type = gemini.TypeInteger
	case TypeBoolean:
		out.Type = gemini.TypeBoolean
	default:
		out.Type = gemini.TypeString
	}
	if s.Items != nil {
		out.Items = s.Items.toGemini()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*gemini.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGemini()
		}
	}
	return out
}

func (s *Schema) toGenAI() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeNumber:
		out.Type = genai.TypeNumber
	case TypeInteger:
		out.Type = genai.TypeInteger
	case TypeBoolean:
		out.Type = genai.TypeBoolean
	default:
		out.Type = genai.TypeString
	}
	if s.Items != nil {
		out.Items = s.Items.toGenAI()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGenAI()
		}
	}
	return out
}
