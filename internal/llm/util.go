package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a model response.
// Anything else, including prose around the JSON, is left in place so the
// caller's decode step rejects it.
func CleanJSONBlock(text string) string {
	return stripFence(strings.TrimSpace(text))
}

// stripFence removes a ``` or ```lang fence around text.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && isFenceLanguage(body[:nl]) {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func isFenceLanguage(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) < 20 && !strings.ContainsAny(line, " {[")
}
