// Package inventory composes the record store and the search index into the
// collaborator the interpreter and the HTTP server drive.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/internal/search"
	"github.com/hyperjump/tansu/internal/storage"
)

// Service owns shirt records. Mutations go to the store first and then to
// the search index; index failures are logged, never fatal, since the store
// remains the source of truth.
type Service struct {
	store  storage.Store
	index  *search.ShirtIndex
	logger *zap.Logger
}

// NewService wires the store and index. The index may be nil, in which case
// search falls back to scanning the store.
func NewService(store storage.Store, index *search.ShirtIndex, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, index: index, logger: logger}
}

// RebuildIndex reindexes every stored record. Called on startup so the
// index never drifts from the store across restarts.
func (s *Service) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	shirts, err := s.store.ListShirts(ctx)
	if err != nil {
		return fmt.Errorf("listing shirts for reindex: %w", err)
	}
	if err := s.index.Rebuild(ctx, shirts); err != nil {
		return fmt.Errorf("rebuilding search index: %w", err)
	}
	s.logger.Debug("search index rebuilt", zap.Int("shirts", len(shirts)))
	return nil
}

// CreateShirt stores a new record. The name defaults to "<color> <size>"
// and the status to the default when the input leaves them blank.
func (s *Service) CreateShirt(ctx context.Context, input models.ShirtInput) (*models.Shirt, error) {
	color := strings.ToLower(strings.TrimSpace(input.Color))
	size := strings.ToLower(strings.TrimSpace(input.Size))
	if color == "" {
		return nil, fmt.Errorf("color is required")
	}
	if size == "" {
		return nil, fmt.Errorf("size is required")
	}

	status := input.Status
	if status == "" {
		status = models.DefaultStatus()
	}
	if canonical, ok := models.CanonicalStatus(status); ok {
		status = canonical
	} else {
		return nil, fmt.Errorf("invalid status %q", input.Status)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = color + " " + size
	}

	shirt := &models.Shirt{Name: name, Color: color, Size: size, Status: status}
	id, err := s.store.CreateShirt(ctx, shirt)
	if err != nil {
		return nil, err
	}
	shirt.ID = id

	if s.index != nil {
		if err := s.index.Index(ctx, shirt); err != nil {
			s.logger.Warn("indexing new shirt failed",
				zap.Int64("id", id), zap.Error(err))
		}
	}
	return shirt, nil
}

func (s *Service) GetShirt(ctx context.Context, id int64) (*models.Shirt, error) {
	return s.store.GetShirt(ctx, id)
}

func (s *Service) ListShirts(ctx context.Context) ([]*models.Shirt, error) {
	return s.store.ListShirts(ctx)
}

func (s *Service) FindByReference(ctx context.Context, ref string) ([]*models.Shirt, error) {
	return s.store.FindByReference(ctx, ref)
}

// UpdateStatus moves a record to a new status and returns the updated record.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*models.Shirt, error) {
	canonical, ok := models.CanonicalStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if err := s.store.UpdateStatus(ctx, id, canonical); err != nil {
		return nil, err
	}
	shirt, err := s.store.GetShirt(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.index != nil {
		if err := s.index.Index(ctx, shirt); err != nil {
			s.logger.Warn("reindexing moved shirt failed",
				zap.Int64("id", id), zap.Error(err))
		}
	}
	return shirt, nil
}

// SetImagePath records an image attachment on a shirt.
func (s *Service) SetImagePath(ctx context.Context, id int64, imagePath string) error {
	return s.store.SetImagePath(ctx, id, imagePath)
}

func (s *Service) DeleteShirt(ctx context.Context, id int64) error {
	if err := s.store.DeleteShirt(ctx, id); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, id); err != nil {
			s.logger.Warn("removing shirt from index failed",
				zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

// SearchShirts resolves a free-text query against the index and loads the
// matching records in the index's relevance order. Without an index it
// degrades to a substring scan over the store.
func (s *Service) SearchShirts(ctx context.Context, query string, limit int) ([]*models.Shirt, error) {
	if s.index == nil {
		return s.scanShirts(ctx, query, limit)
	}
	ids, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Shirt, 0, len(ids))
	for _, id := range ids {
		shirt, err := s.store.GetShirt(ctx, id)
		if err != nil {
			// Index can briefly hold records deleted from the store.
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, shirt)
	}
	return out, nil
}

func (s *Service) scanShirts(ctx context.Context, query string, limit int) ([]*models.Shirt, error) {
	shirts, err := s.store.ListShirts(ctx)
	if err != nil {
		return nil, err
	}
	terms := strings.Fields(strings.ToLower(query))
	var out []*models.Shirt
	for _, shirt := range shirts {
		hay := strings.ToLower(shirt.Name + " " + shirt.Color + " " + shirt.Size + " " + shirt.Status)
		for _, term := range terms {
			if strings.Contains(hay, term) {
				out = append(out, shirt)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Service) CountShirts(ctx context.Context) (int64, error) {
	return s.store.CountShirts(ctx)
}

func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	return s.store.Statistics(ctx)
}

// Close releases the store and index.
func (s *Service) Close() error {
	var firstErr error
	if s.index != nil {
		if err := s.index.Close(); err != nil {
			firstErr = err
		}
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
