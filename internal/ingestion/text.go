// Package ingestion turns pasted text, resume files and web pages into clean
// plain text ready for extraction or search.
package ingestion

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyContent is returned when a source yields no text after cleaning.
var ErrEmptyContent = errors.New("no text content found")

// maxIndent caps leading spaces kept on a line.
const maxIndent = 8

// Invisible runes dropped and space-like runes turned into plain spaces.
var runeCleaner = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\ufeff", "",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u00a0", " ",
	"\t", "    ",
)

// Bullet glyphs common in PDF and Word resumes. Each becomes "- ".
var bulletGlyphs = []string{"•", "·", "▪", "◦", "●", "‣", "–", "*", "-"}

// CleanText normalises line endings and whitespace. It keeps line structure:
// indentation up to maxIndent, bullets (as "- ") and at most one blank line
// between paragraphs.
func CleanText(content string) string {
	content = runeCleaner.Replace(content)

	var b strings.Builder
	blank := false
	for _, line := range strings.Split(content, "\n") {
		line = cleanLine(line)
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(line)
		blank = false
	}
	return b.String()
}

// cleanLine collapses inner whitespace and normalises a leading bullet.
func cleanLine(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > maxIndent {
		indent = maxIndent
	}
	if strings.HasPrefix(fields[0], "#") {
		indent = 0
	}

	if isBullet(fields[0]) && len(fields) > 1 {
		fields[0] = "-"
	}
	return strings.Repeat(" ", indent) + strings.Join(fields, " ")
}

func isBullet(token string) bool {
	if utf8.RuneCountInString(token) != 1 {
		return false
	}
	for _, glyph := range bulletGlyphs {
		if token == glyph {
			return true
		}
	}
	return false
}

// FromText cleans pasted text.
func FromText(text string) (string, *Metadata, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}
	return cleaned, NewMetadata(cleaned, SourceText, "", FormatText), nil
}
