package catalog

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Tokens splits a loosely formatted tag field into lowercase tokens.
// Separators are any non-alphanumeric runes, so "breakfast lunch",
// "Breakfast,Lunch" and "breakfast/lunch" all tokenize the same way.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return fields
}

// HasToken reports whether the tokenized form of s contains target
// (case-insensitive).
func HasToken(s, target string) bool {
	target = strings.ToLower(target)
	for _, tok := range Tokens(s) {
		if tok == target {
			return true
		}
	}
	return false
}

// LooseList normalizes a field that may arrive as a plain string, a JSON
// array string, or a malformed "{a,b}"-style string into a lowercase list.
// Malformed input degrades to a single literal entry; it never fails.
func LooseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return lowerTrimmed(arr)
	}

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		stripped := strings.Trim(raw, "{}[]")
		parts := strings.Split(stripped, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.Trim(strings.TrimSpace(p), `"'`)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			return lowerTrimmed(cleaned)
		}
	}

	return []string{strings.ToLower(raw)}
}

func lowerTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ContainsWholeWord reports whether word occurs in text as a whole word,
// case-insensitive.
func ContainsWholeWord(text, word string) bool {
	word = strings.ToLower(word)
	for _, tok := range Tokens(text) {
		if tok == word {
			return true
		}
	}
	return false
}
