// Package storage defines the persistence interface for shirt records.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/tansu/internal/models"
)

// ErrNotFound is returned when a shirt id does not exist.
var ErrNotFound = errors.New("shirt not found")

// Store defines shirt persistence operations.
type Store interface {
	CreateShirt(ctx context.Context, shirt *models.Shirt) (int64, error)
	GetShirt(ctx context.Context, id int64) (*models.Shirt, error)
	ListShirts(ctx context.Context) ([]*models.Shirt, error)
	// FindByReference returns shirts matching a free-text reference:
	// records whose name equals the reference (case-insensitive), or, when
	// no name matches, records whose "<color> <size>" combination equals it.
	FindByReference(ctx context.Context, ref string) ([]*models.Shirt, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetImagePath(ctx context.Context, id int64, imagePath string) error
	DeleteShirt(ctx context.Context, id int64) error
	CountShirts(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (*models.Statistics, error)
	Close() error
}
