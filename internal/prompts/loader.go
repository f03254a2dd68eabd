// Package prompts holds the resume extraction and candidate ranking prompt
// templates. Each JSON file maps prompt keys to templates with {{.Field}}
// placeholders; the files are embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Name identifies one template.
type Name struct {
	File string
	Key  string
}

func (n Name) String() string { return n.File + "#" + n.Key }

var (
	// ParseResume asks for a candidate profile. Data: ResumeText.
	ParseResume = Name{File: "extraction.json", Key: "parse-resume"}
	// RankCandidates asks for scored matches. Data: Query, CandidatesJSON.
	RankCandidates = Name{File: "ranking.json", Key: "rank-candidates"}
)

var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var (
	catalogOnce sync.Once
	catalog     map[Name]string
	catalogErr  error
)

func load() (map[Name]string, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = readCatalog(promptFiles)
	})
	return catalog, catalogErr
}

func readCatalog(fsys fs.FS) (map[Name]string, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}

	out := make(map[Name]string)
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
		}
		for key, template := range entries {
			out[Name{File: file, Key: key}] = template
		}
	}
	return out, nil
}

// Get returns the raw template for name.
func Get(name Name) (string, error) {
	templates, err := load()
	if err != nil {
		return "", err
	}
	template, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("prompt %s not found", name)
	}
	return template, nil
}

// Format replaces {{.Key}} placeholders with values from data. Placeholders
// without a value are left in place.
func Format(template string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		if value, ok := data[placeholder.FindStringSubmatch(m)[1]]; ok {
			return value
		}
		return m
	})
}

// Placeholders lists the distinct placeholder fields of template in order of
// first use.
func Placeholders(template string) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			fields = append(fields, m[1])
		}
	}
	return fields
}

// Render fills the template for name. Every placeholder must have a value in
// data; values are inserted verbatim and are not expanded again.
func Render(name Name, data map[string]string) (string, error) {
	template, err := Get(name)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, field := range Placeholders(template) {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s: missing values for %s", name, strings.Join(missing, ", "))
	}
	return Format(template, data), nil
}

// Names lists every embedded template, sorted.
func Names() ([]Name, error) {
	templates, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]Name, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names, nil
}
