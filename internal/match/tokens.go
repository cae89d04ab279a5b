package match

import (
	"strings"
	"unicode"
)

// NormalizeToken lowercases a token and strips leading/trailing punctuation,
// keeping internal punctuation like hyphens and underscores ("x-large" survives).
func NormalizeToken(token string) string {
	token = strings.ToLower(token)
	return strings.TrimFunc(token, func(r rune) bool {
		return (unicode.IsPunct(r) || unicode.IsSymbol(r)) && r != '-' && r != '_'
	})
}

// Tokenize splits raw text into normalized, non-empty lowercase tokens with
// whitespace collapsed.
func Tokenize(raw string) []string {
	fields := strings.Fields(raw)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := NormalizeToken(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ContainsPhrase reports whether phrase occurs in tokens as a whole-token
// sequence. A single-word phrase matches any equal token; a multi-word
// phrase must match consecutive tokens.
func ContainsPhrase(tokens []string, phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		matched := true
		for j, w := range words {
			if tokens[i+j] != w {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// PhraseIndex returns the token index where phrase starts as a whole-token
// sequence, or -1 when absent.
func PhraseIndex(tokens []string, phrase string) int {
	words := strings.Fields(phrase)
	if len(words) == 0 || len(words) > len(tokens) {
		return -1
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		matched := true
		for j, w := range words {
			if tokens[i+j] != w {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}
