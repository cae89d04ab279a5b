package interpreter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/tansu/internal/models"
)

// helpText is the command guide. Returned for the help intent, for empty
// messages, and suggested on unknown input.
const helpText = `👕 Here's what I can do:
  - add a <color> <size> shirt [to <status>]
  - move <shirt> to <status>
  - find <text>
  - show inventory
  - how many shirts do i have
  - delete <shirt>
  - help, exit

Statuses: In Drawer, Laundry, Worn. You can refer to a shirt by its
name ("blue large"), by color and size, or by its ID number.`

const farewellText = `👋 Goodbye! Your shirts are in good hands.`

const unknownText = `❓ I didn't understand that. Type "help" to see what I can do.`

// Formatter renders outcomes and command errors as chat responses. Every
// path yields a non-empty string.
type Formatter struct{}

// NewFormatter returns the response formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Help returns the command guide.
func (f *Formatter) Help() string { return helpText }

// Farewell returns the exit response.
func (f *Formatter) Farewell() string { return farewellText }

// Unknown returns the fallback for messages no intent claimed.
func (f *Formatter) Unknown() string { return unknownText }

// Knowledge wraps an answer from the knowledge index.
func (f *Formatter) Knowledge(answer string) string {
	return "💡 " + answer
}

// Format renders a successful dispatch outcome.
func (f *Formatter) Format(outcome *Outcome) string {
	switch outcome.Intent {
	case IntentAdd:
		return f.created(outcome.Shirt)
	case IntentMove:
		return f.moved(outcome)
	case IntentDelete:
		return f.deleted(outcome.Shirt)
	case IntentSearch:
		return f.searchResults(outcome.Query, outcome.Results)
	case IntentView:
		return f.inventory(outcome.Shirts)
	case IntentStats:
		return f.stats(outcome.Stats)
	}
	return unknownText
}

func (f *Formatter) created(s *models.Shirt) string {
	return fmt.Sprintf("✅ Added a %s %s shirt to %s. (ID: #%d)",
		s.Color, s.Size, s.Status, s.ID)
}

func (f *Formatter) moved(o *Outcome) string {
	if o.SameStatus {
		return fmt.Sprintf("ℹ️ %q is already in %s.", o.Shirt.Name, o.Shirt.Status)
	}
	return fmt.Sprintf("✅ Moved %q from %s to %s.",
		o.Shirt.Name, o.PreviousStatus, o.Shirt.Status)
}

func (f *Formatter) deleted(s *models.Shirt) string {
	return fmt.Sprintf("🗑️ Deleted %q. (ID: #%d)", s.Name, s.ID)
}

func (f *Formatter) searchResults(query string, results []*models.Shirt) string {
	if len(results) == 0 {
		return fmt.Sprintf("🔍 No shirts matching %q.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d %s matching %q:",
		len(results), pluralShirt(len(results)), query)
	for _, s := range results {
		fmt.Fprintf(&b, "\n  - %s (%s)%s", s.Name, s.Status, imageMark(s))
	}
	return b.String()
}

// inventory lists every record grouped under its status, statuses in their
// fixed display order. Empty groups still print so the reader sees the
// whole vocabulary.
func (f *Formatter) inventory(shirts []*models.Shirt) string {
	if len(shirts) == 0 {
		return `📦 Your inventory is empty. Try "add a blue large shirt".`
	}
	byStatus := make(map[string][]*models.Shirt)
	for _, s := range shirts {
		byStatus[s.Status] = append(byStatus[s.Status], s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Your shirts (%d):", len(shirts))
	for _, status := range models.Statuses {
		fmt.Fprintf(&b, "\n%s:", status)
		group := byStatus[status]
		if len(group) == 0 {
			b.WriteString("\n  - None -")
			continue
		}
		for _, s := range group {
			fmt.Fprintf(&b, "\n  - %s (ID: #%d)%s", s.Name, s.ID, imageMark(s))
		}
	}
	return b.String()
}

func (f *Formatter) stats(stats *models.Statistics) string {
	if stats.Total == 0 {
		return "📊 You have no shirts yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 You have %d %s.", stats.Total, pluralShirt(stats.Total))
	for _, status := range models.Statuses {
		fmt.Fprintf(&b, "\n  %s: %d", status, stats.ByStatus[status])
	}
	if len(stats.ByColor) > 0 {
		fmt.Fprintf(&b, "\nBy color: %s", countLine(stats.ByColor))
	}
	if len(stats.BySize) > 0 {
		fmt.Fprintf(&b, "\nBy size: %s", countLine(stats.BySize))
	}
	if stats.WithImages > 0 {
		fmt.Fprintf(&b, "\nWith images: %d", stats.WithImages)
	}
	return b.String()
}

// FormatError renders a command error. Collaborator failures surface a
// generic apology; the cause goes to the log, not the user.
func (f *Formatter) FormatError(err *CommandError) string {
	switch err.Kind {
	case KindMissingField:
		switch err.Field {
		case "color":
			return `❌ I need a color. Try "add a blue large shirt".`
		case "size":
			return `❌ I need a size. Try "add a blue large shirt".`
		case "status":
			return `❌ I need a destination. Try "move blue large to laundry".`
		case "reference":
			return `❌ Which shirt? Name it like "blue large" or use its ID number.`
		case "query":
			return `❌ What should I look for? Try "find blue shirts".`
		}
		return fmt.Sprintf("❌ I'm missing the %s.", err.Field)
	case KindNotFound:
		return fmt.Sprintf("❌ I couldn't find a shirt matching %q.", err.Reference)
	case KindAmbiguousReference:
		var b strings.Builder
		fmt.Fprintf(&b, "ℹ️ %d shirts match %q. Which one?", len(err.Candidates), err.Reference)
		for _, s := range err.Candidates {
			fmt.Fprintf(&b, "\n  - %s (ID: #%d, %s)", s.Name, s.ID, s.Status)
		}
		return b.String()
	case KindInvalidStatus:
		return fmt.Sprintf("❌ %q is not a status I know. Use one of: %s.",
			err.Status, strings.Join(models.Statuses, ", "))
	}
	return "❌ Something went wrong handling that. Please try again."
}

func imageMark(s *models.Shirt) string {
	if s.HasImage() {
		return " [img]"
	}
	return ""
}

func pluralShirt(n int) string {
	if n == 1 {
		return "shirt"
	}
	return "shirts"
}

// countLine renders a count map as "blue: 2, red: 1", keys sorted for a
// stable output.
func countLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
