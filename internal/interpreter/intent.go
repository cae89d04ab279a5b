package interpreter

import (
	"strings"

	"github.com/hyperjump/tansu/internal/match"
)

// Intent is the user's inferred goal for a message.
type Intent string

const (
	IntentAdd     Intent = "add"
	IntentMove    Intent = "move"
	IntentSearch  Intent = "search"
	IntentStats   Intent = "stats"
	IntentDelete  Intent = "delete"
	IntentView    Intent = "view"
	IntentHelp    Intent = "help"
	IntentExit    Intent = "exit"
	IntentUnknown Intent = "unknown"
)

// IntentProfile holds the static keyword/phrase set for one intent.
// Multi-word phrases ("show me", "how many") are ordinary entries; they
// score through the same signals as single keywords.
type IntentProfile struct {
	Name    Intent
	Phrases []string
	Weight  float64
}

// intentProfiles is the static classification table, in priority order:
// when two profiles score equally, the earlier one wins, so the more
// specific intents (delete, move) outrank the catch-all view intent.
var intentProfiles = []IntentProfile{
	{Name: IntentExit, Weight: 1.0, Phrases: []string{
		"exit", "quit", "bye", "goodbye", "close",
	}},
	{Name: IntentHelp, Weight: 1.0, Phrases: []string{
		"help", "how to", "how do", "how", "what", "guide", "explain", "tutorial",
	}},
	{Name: IntentAdd, Weight: 1.0, Phrases: []string{
		"add", "create", "new", "insert", "register",
	}},
	{Name: IntentDelete, Weight: 1.0, Phrases: []string{
		"remove", "delete", "discard", "erase", "drop",
	}},
	{Name: IntentMove, Weight: 1.0, Phrases: []string{
		"move", "update", "change", "transfer", "switch",
	}},
	{Name: IntentStats, Weight: 1.0, Phrases: []string{
		"count", "how many", "statistics", "stats", "analytics", "summary",
	}},
	{Name: IntentSearch, Weight: 1.0, Phrases: []string{
		"find", "search", "look for", "show me", "where is", "where", "locate",
	}},
	{Name: IntentView, Weight: 1.0, Phrases: []string{
		"show", "view", "display", "see", "list",
		"show inventory", "view inventory", "show all", "list all",
	}},
}

// ClassificationResult is the classifier's output for one message.
type ClassificationResult struct {
	Intent     Intent
	Confidence float64
}

// Classifier scores token sequences against the static intent profiles.
type Classifier struct {
	profiles  []IntentProfile
	threshold float64
}

// NewClassifier returns a classifier that reports intents scoring below
// threshold as unknown. The threshold is inclusive: a score exactly at it
// is actionable.
func NewClassifier(threshold float64) *Classifier {
	return &Classifier{profiles: intentProfiles, threshold: threshold}
}

// Classify assigns the most likely intent to a message. For each profile
// the score is the best of two signals across its phrases:
//
//   - keyword hit: the phrase occurs as whole token(s) in the message; the
//     signal is the larger of the phrase/message similarity ratio and a
//     floor that grows with the phrase's word count, so multi-word phrases
//     count as stronger evidence.
//   - fuzzy: the plain similarity ratio between phrase and message, which
//     keeps close misspellings ("serach") actionable.
//
// The winner below the action threshold is reported as unknown.
func (c *Classifier) Classify(message string) ClassificationResult {
	tokens := Normalize(message)
	if len(tokens) == 0 {
		return ClassificationResult{Intent: IntentUnknown, Confidence: 0}
	}
	msg := strings.Join(tokens, " ")

	best := ClassificationResult{Intent: IntentUnknown, Confidence: 0}
	for _, profile := range c.profiles {
		score := clamp01(c.scoreProfile(profile, tokens, msg))
		if score > best.Confidence {
			best = ClassificationResult{Intent: profile.Name, Confidence: score}
		}
	}

	if best.Confidence < c.threshold {
		return ClassificationResult{Intent: IntentUnknown, Confidence: best.Confidence}
	}
	return best
}

func (c *Classifier) scoreProfile(profile IntentProfile, tokens []string, msg string) float64 {
	best := 0.0
	for _, phrase := range profile.Phrases {
		score := match.Ratio(phrase, msg)
		if phraseHit(tokens, msg, phrase) {
			if floor := hitFloor(phrase); floor > score {
				score = floor
			}
		}
		if score > best {
			best = score
		}
	}
	return best * profile.Weight
}

// phraseHit reports whether the phrase occurs in the message. Single words
// must match a whole token ("see" does not hit inside "seen"); multi-word
// phrases match consecutive tokens or a plain substring.
func phraseHit(tokens []string, msg, phrase string) bool {
	if match.ContainsPhrase(tokens, phrase) {
		return true
	}
	if strings.Contains(phrase, " ") {
		return strings.Contains(msg, phrase)
	}
	return false
}

// hitFloor is the minimum score for a phrase found verbatim in the message.
// One word: 0.5; two words: 0.6; three or more: 0.7.
func hitFloor(phrase string) float64 {
	words := len(strings.Fields(phrase))
	if words > 3 {
		words = 3
	}
	return 0.4 + 0.1*float64(words)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
