// Package interpreter implements the natural-language command core: it
// classifies free text into an intent, extracts structured slots, dispatches
// against the inventory collaborator, and renders a single response string.
package interpreter

import (
	"strings"

	"github.com/hyperjump/tansu/internal/match"
)

// Normalize lowercases, trims, and tokenizes a raw message. Punctuation at
// token edges is stripped; hyphens and underscores inside tokens survive so
// compound sizes like "x-large" stay whole. Empty or whitespace-only input
// yields no tokens.
func Normalize(raw string) []string {
	return match.Tokenize(raw)
}

// normalizedMessage returns the lowercase message with whitespace collapsed,
// used for whole-message similarity scoring.
func normalizedMessage(raw string) string {
	return strings.Join(match.Tokenize(raw), " ")
}
