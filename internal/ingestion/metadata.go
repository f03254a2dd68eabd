package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceKind says where ingested text came from.
type SourceKind string

// Source kinds.
const (
	SourceText SourceKind = "text"
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

// Format is the document format the text was read from.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
)

// Metadata describes an ingested document.
type Metadata struct {
	Kind      SourceKind `json:"kind"`
	Source    string     `json:"source,omitempty"` // file path or URL
	Format    Format     `json:"format"`
	Platform  string     `json:"platform,omitempty"`
	Timestamp string     `json:"timestamp"` // RFC3339 format
	Hash      string     `json:"hash"`      // SHA256 hex digest
	FromCache bool       `json:"fromCache,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, kind SourceKind, source string, format Format) *Metadata {
	return &Metadata{
		Kind:      kind,
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
