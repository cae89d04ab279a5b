package interpreter

import (
	"strings"

	"github.com/hyperjump/tansu/internal/match"
	"github.com/hyperjump/tansu/internal/models"
)

// EntitySlots holds the typed slots extracted from one message. Color,
// Size, Reference, and Query use "" for absent (the vocabularies never
// produce empty values); Status and RefID carry explicit presence flags.
type EntitySlots struct {
	Color string
	Size  string

	// Status is a canonical status value, valid only when HasStatus is set.
	Status    string
	HasStatus bool
	// StatusRaw is the text that followed "to" when it failed to resolve
	// to any canonical status. Lets the dispatcher report InvalidStatus
	// instead of silently dropping the clause.
	StatusRaw string

	// Reference is the free-text name span identifying a record.
	Reference string
	// RefID is a numeric record id, valid only when HasRefID is set.
	RefID    int64
	HasRefID bool

	// Query is the free-text search query (search intent only).
	Query string
}

// colorVocab is the curated color list. Tokens outside it are never forced
// into the color slot.
var colorVocab = map[string]bool{
	"black": true, "white": true, "red": true, "blue": true, "green": true,
	"yellow": true, "orange": true, "purple": true, "pink": true,
	"brown": true, "gray": true, "grey": true, "navy": true, "maroon": true,
	"teal": true, "beige": true, "olive": true, "cyan": true, "magenta": true,
}

// sizeVocab is the curated size list, including compound forms the
// normalizer keeps whole.
var sizeVocab = map[string]bool{
	"xs": true, "s": true, "m": true, "l": true, "xl": true, "xxl": true,
	"small": true, "medium": true, "large": true,
	"x-small": true, "x-large": true, "xx-large": true,
	"extra-small": true, "extra-large": true,
}

// fillerWords are dropped when building the reference/query span. They
// carry no identifying information.
var fillerWords = map[string]bool{
	"shirt": true, "shirts": true, "the": true, "a": true, "an": true,
	"my": true, "me": true, "i": true, "please": true, "all": true,
	"some": true, "to": true, "from": true, "in": true, "into": true,
	"do": true, "have": true, "of": true, "is": true, "are": true,
}

// statusAliases maps spoken forms to canonical statuses.
var statusAliases = []struct {
	alias  string
	status string
}{
	{"in drawer", "In Drawer"},
	{"drawer", "In Drawer"},
	{"laundry", "Laundry"},
	{"worn", "Worn"},
}

const statusFuzzyThreshold = 0.8

// statusAliasNames mirrors statusAliases for fuzzy candidate matching.
var statusAliasNames = func() []string {
	names := make([]string, len(statusAliases))
	for i, a := range statusAliases {
		names[i] = a.alias
	}
	return names
}()

// matchStatus resolves a token window to a canonical status, tolerating
// close misspellings. Exact alias first, then the closest fuzzy alias.
func matchStatus(window string) (string, bool) {
	window = strings.ToLower(strings.TrimSpace(window))
	if window == "" {
		return "", false
	}
	for _, a := range statusAliases {
		if window == a.alias {
			return a.status, true
		}
	}
	if idx, score := match.BestRatio(window, statusAliasNames); idx >= 0 && score >= statusFuzzyThreshold {
		return statusAliases[idx].status, true
	}
	if st, ok := models.CanonicalStatus(window); ok && len(window) >= 4 {
		return st, true
	}
	return "", false
}

func profileFor(intent Intent) *IntentProfile {
	for i := range intentProfiles {
		if intentProfiles[i].Name == intent {
			return &intentProfiles[i]
		}
	}
	return nil
}

// ExtractEntities pulls typed slots from the token sequence. Extraction is
// intent-aware: the "to <status>" clause is consumed for add/move, the
// reference span is the longest run of tokens left after removing intent
// keywords, the status clause, and filler words, and the search query is
// every surviving token. Missing slots are reported as absent; the
// dispatcher decides whether that is fatal.
func ExtractEntities(tokens []string, intent Intent) EntitySlots {
	slots := EntitySlots{}
	if len(tokens) == 0 {
		return slots
	}
	removed := make([]bool, len(tokens))

	// Remove the intent's own keywords so "move" never ends up in a name.
	if prof := profileFor(intent); prof != nil {
		for _, phrase := range prof.Phrases {
			idx := match.PhraseIndex(tokens, phrase)
			if idx < 0 {
				continue
			}
			for j := range strings.Fields(phrase) {
				removed[idx+j] = true
			}
		}
	}

	// Consume the "to <status>" clause for intents that take a destination.
	if intent == IntentAdd || intent == IntentMove {
		extractToClause(tokens, removed, &slots)
	}

	// Color and size from the curated vocabularies; first hit wins, no guessing.
	for i, tok := range tokens {
		if removed[i] {
			continue
		}
		if slots.Color == "" && colorVocab[tok] {
			slots.Color = tok
			continue
		}
		if slots.Size == "" && sizeVocab[tok] {
			slots.Size = tok
		}
	}

	// Drop filler and collect the surviving tokens.
	type span struct{ start, length int }
	var (
		surviving []string
		runs      []span
		current   span
	)
	flush := func() {
		if current.length > 0 {
			runs = append(runs, current)
		}
		current = span{}
	}
	for i, tok := range tokens {
		if removed[i] || fillerWords[tok] {
			flush()
			continue
		}
		if isDigits(tok) && !slots.HasRefID {
			slots.RefID = parseDigits(tok)
			slots.HasRefID = true
			flush()
			continue
		}
		if current.length == 0 {
			current.start = i
		}
		current.length++
		surviving = append(surviving, tok)
	}
	flush()

	// Query keeps everything that survived; the reference is the longest
	// contiguous run (earlier run wins ties).
	slots.Query = strings.Join(surviving, " ")
	bestRun := span{}
	for _, r := range runs {
		if r.length > bestRun.length {
			bestRun = r
		}
	}
	if bestRun.length > 0 {
		slots.Reference = strings.Join(tokens[bestRun.start:bestRun.start+bestRun.length], " ")
	}

	return slots
}

// extractToClause resolves the tokens after "to"/"into" as a status,
// preferring the two-token window so "in drawer" matches whole.
func extractToClause(tokens []string, removed []bool, slots *EntitySlots) {
	toIdx := -1
	for i, tok := range tokens {
		if removed[i] {
			continue
		}
		if tok == "to" || tok == "into" {
			toIdx = i
			break
		}
	}
	if toIdx < 0 || toIdx+1 >= len(tokens) {
		return
	}

	if toIdx+2 < len(tokens) {
		window := tokens[toIdx+1] + " " + tokens[toIdx+2]
		if st, ok := matchStatus(window); ok {
			slots.Status = st
			slots.HasStatus = true
			removed[toIdx] = true
			removed[toIdx+1] = true
			removed[toIdx+2] = true
			return
		}
	}
	if st, ok := matchStatus(tokens[toIdx+1]); ok {
		slots.Status = st
		slots.HasStatus = true
	} else {
		slots.StatusRaw = tokens[toIdx+1]
	}
	removed[toIdx] = true
	removed[toIdx+1] = true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseDigits(s string) int64 {
	var n int64
	for _, r := range s {
		n = n*10 + int64(r-'0')
	}
	return n
}
