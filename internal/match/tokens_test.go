package match

import (
	"reflect"
	"testing"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello!", "hello"},
		{"x-large", "x-large"},
		{"(blue)", "blue"},
		{"shirts?", "shirts"},
		{"...", ""},
		{"x-large?", "x-large"},
		{"UPPER", "upper"},
	}
	for _, tt := range tests {
		if got := NormalizeToken(tt.in); got != tt.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Find Blue Shirts", []string{"find", "blue", "shirts"}},
		{"extra whitespace", "  move\tred   shirt  ", []string{"move", "red", "shirt"}},
		{"punctuation stripped", "how many shirts?!", []string{"how", "many", "shirts"}},
		{"compound size kept", "add blue X-Large shirt", []string{"add", "blue", "x-large", "shirt"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	tokens := []string{"show", "me", "all", "blue", "shirts"}

	tests := []struct {
		phrase string
		want   bool
	}{
		{"show", true},
		{"show me", true},
		{"me all blue", true},
		{"blue shirts", true},
		{"show all", false}, // not consecutive
		{"shirts blue", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsPhrase(tokens, tt.phrase); got != tt.want {
			t.Errorf("ContainsPhrase(%v, %q) = %v, want %v", tokens, tt.phrase, got, tt.want)
		}
	}
}

func TestPhraseIndex(t *testing.T) {
	tokens := []string{"move", "blue", "shirt", "to", "laundry"}
	if idx := PhraseIndex(tokens, "to"); idx != 3 {
		t.Errorf("PhraseIndex to = %d, want 3", idx)
	}
	if idx := PhraseIndex(tokens, "blue shirt"); idx != 1 {
		t.Errorf("PhraseIndex blue shirt = %d, want 1", idx)
	}
	if idx := PhraseIndex(tokens, "missing"); idx != -1 {
		t.Errorf("PhraseIndex missing = %d, want -1", idx)
	}
}
