package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileSize caps resume files.
const MaxFileSize = 10 << 20

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// UnsupportedFormatError is returned for files that are not text, PDF or DOCX.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (expected .txt, .md, .pdf or .docx)", e.Name)
}

// IngestFromFile reads a resume file, extracts and cleans its text.
func IngestFromFile(path string) (string, *Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", nil, fmt.Errorf("file too large: %d bytes", info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, format, err := ExtractDocument(filepath.Base(path), content)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}
	return cleaned, NewMetadata(cleaned, SourceFile, path, format), nil
}

// FormatForName picks the document format from a file name.
func FormatForName(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", "":
		return FormatText, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".html", ".htm":
		return FormatHTML, true
	default:
		return "", false
	}
}

// ExtractDocument returns the raw text of a document named name.
func ExtractDocument(name string, data []byte) (string, Format, error) {
	format, ok := FormatForName(name)
	if !ok || format == FormatHTML {
		return "", "", &UnsupportedFormatError{Name: name}
	}

	switch format {
	case FormatPDF:
		text, err := extractPDFText(data)
		return text, format, err
	case FormatDOCX:
		text, err := extractDocxText(data)
		return text, format, err
	default:
		return string(data), format, nil
	}
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into lines of text.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if tag == "<w:tab/>" {
			return " "
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
