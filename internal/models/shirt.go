// Package models defines core data structures for shirts, statistics, and knowledge entries.
package models

import (
	"strings"
	"time"
)

// Statuses is the fixed, closed set of shirt statuses, in display order.
// The interpreter and the inventory collaborator share this vocabulary;
// neither side may invent new values.
var Statuses = []string{
	"In Drawer",
	"Laundry",
	"Worn",
}

// DefaultStatus is the status assigned when a command does not name one.
func DefaultStatus() string {
	return Statuses[0]
}

// IsValidStatus reports whether status is one of the fixed status values.
func IsValidStatus(status string) bool {
	for _, st := range Statuses {
		if st == status {
			return true
		}
	}
	return false
}

// CanonicalStatus maps a free-text token to a canonical status value by
// case-insensitive prefix match ("laun" -> "Laundry", "in drawer" -> "In Drawer").
// Returns the canonical value and true on a match; the input and false otherwise.
func CanonicalStatus(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return token, false
	}
	for _, st := range Statuses {
		lower := strings.ToLower(st)
		if strings.HasPrefix(lower, t) || strings.HasPrefix(t, lower) {
			return st, true
		}
	}
	// "drawer" on its own should resolve to "In Drawer".
	for _, st := range Statuses {
		if strings.Contains(strings.ToLower(st), t) {
			return st, true
		}
	}
	return token, false
}

// Shirt represents a tracked inventory record.
type Shirt struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Size      string    `json:"size" db:"size"`
	Status    string    `json:"status" db:"status"`
	ImagePath string    `json:"image_path,omitempty" db:"image_path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasImage reports whether the shirt has an attached image.
func (s *Shirt) HasImage() bool {
	return s.ImagePath != ""
}

// ShirtInput is the input for creating a shirt via the HTTP API.
type ShirtInput struct {
	Name   string `json:"name,omitempty"`
	Color  string `json:"color"`
	Size   string `json:"size"`
	Status string `json:"status,omitempty"`
}

// Statistics holds aggregate inventory counts.
type Statistics struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByColor    map[string]int `json:"by_color"`
	BySize     map[string]int `json:"by_size"`
	WithImages int            `json:"with_images"`
}
