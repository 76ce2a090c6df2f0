package infer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ytget/yt-audio-tagger/internal/model"
)

// trailingCommaPattern matches a comma directly before a closing brace or
// bracket, a frequent model output defect.
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// tagPayload is the loosely-typed shape decoded from model output.
// remix and year are interface{} because models emit them as booleans,
// strings, or numbers interchangeably.
type tagPayload struct {
	Title   string      `json:"title"`
	Artist  string      `json:"artist"`
	Remix   interface{} `json:"remix"`
	Remixer string      `json:"remixer"`
	Year    interface{} `json:"year"`
	Genre   string      `json:"genre"`
}

// ExtractTagRecord parses a chat model's reply into a TagRecord. The
// reply may surround the JSON object with prose or markdown fences; the
// first balanced object found is decoded, with trailing commas repaired.
// The returned record has no album or provenance set; the caller fills
// those in.
func ExtractTagRecord(text string) (model.TagRecord, error) {
	raw, err := firstJSONObject(text)
	if err != nil {
		return model.TagRecord{}, err
	}

	raw = trailingCommaPattern.ReplaceAllString(raw, "$1")

	var payload tagPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return model.TagRecord{}, fmt.Errorf("failed to decode tag object: %w", err)
	}

	if strings.TrimSpace(payload.Title) == "" {
		return model.TagRecord{}, fmt.Errorf("tag object has no title")
	}

	return model.TagRecord{
		Title:   strings.TrimSpace(payload.Title),
		Artist:  strings.TrimSpace(payload.Artist),
		Remix:   coerceBool(payload.Remix),
		Remixer: strings.TrimSpace(payload.Remixer),
		Year:    coerceString(payload.Year),
		Genre:   strings.TrimSpace(payload.Genre),
	}, nil
}

// firstJSONObject returns the first balanced {...} substring of text,
// tracking string literals and escapes so braces inside values do not
// unbalance the scan.
func firstJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", fmt.Errorf("no JSON object in reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in reply")
}

// coerceBool accepts bool, "true"/"false"/"yes"/"no" strings, and
// numeric 0/1.
func coerceBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}

// coerceString renders string or numeric values as a string; numbers are
// printed without a decimal part when whole.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	}
	return ""
}
