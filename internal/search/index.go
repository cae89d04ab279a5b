// Package search provides the Bleve keyword index over shirt records that
// backs the interpreter's search intent.
package search

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/tansu/internal/models"
)

// shirtDoc is the indexed shape of a shirt record.
type shirtDoc struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Size   string `json:"size"`
	Status string `json:"status"`
}

// ShirtIndex wraps a Bleve index keyed by shirt id.
type ShirtIndex struct {
	index bleve.Index
}

func shirtMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so "large"
	// matches exactly rather than a stemmed form.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("color", textFieldMapping)
	docMapping.AddFieldMappingsAt("size", textFieldMapping)
	docMapping.AddFieldMappingsAt("status", textFieldMapping)
	im.AddDocumentMapping("shirt", docMapping)
	im.DefaultType = "shirt"
	im.DefaultMapping = docMapping
	return im
}

// NewShirtIndex creates or opens a Bleve index at path. An existing index
// directory is reopened and reused.
func NewShirtIndex(path string) (*ShirtIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open shirt index: %w", openErr)
		}
		return &ShirtIndex{index: index}, nil
	}

	index, err := bleve.New(path, shirtMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create shirt index: %w", err)
	}
	return &ShirtIndex{index: index}, nil
}

// NewMemShirtIndex creates an in-memory index, used when no index path is
// configured and in tests.
func NewMemShirtIndex() (*ShirtIndex, error) {
	index, err := bleve.NewMemOnly(shirtMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory shirt index: %w", err)
	}
	return &ShirtIndex{index: index}, nil
}

// Index adds or replaces a shirt in the index.
func (si *ShirtIndex) Index(ctx context.Context, shirt *models.Shirt) error {
	doc := shirtDoc{
		Name:   shirt.Name,
		Color:  shirt.Color,
		Size:   shirt.Size,
		Status: shirt.Status,
	}
	return si.index.Index(strconv.FormatInt(shirt.ID, 10), doc)
}

// Delete removes a shirt from the index.
func (si *ShirtIndex) Delete(ctx context.Context, id int64) error {
	return si.index.Delete(strconv.FormatInt(id, 10))
}

// Rebuild reindexes the full record set, replacing prior entries.
func (si *ShirtIndex) Rebuild(ctx context.Context, shirts []*models.Shirt) error {
	for _, sh := range shirts {
		if err := si.Index(ctx, sh); err != nil {
			return err
		}
	}
	return nil
}

// Search returns ids of shirts matching the free-text query, best first.
// An exact match query runs first; when it finds nothing, a fuzzy
// per-term disjunction (edit distance 1) retries for typo tolerance.
// Ties in score resolve by ascending id so results are deterministic.
func (si *ShirtIndex) Search(ctx context.Context, query string, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = 50
	}
	ids, err := si.run(bleve.NewMatchQuery(query), limit)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		return ids, nil
	}
	return si.run(fuzzyQuery(query), limit)
}

func (si *ShirtIndex) run(q blevequery.Query, limit int) ([]int64, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := si.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("shirt index search failed: %w", err)
	}

	type scored struct {
		id    int64
		score float64
	}
	hits := make([]scored, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, convErr := strconv.ParseInt(hit.ID, 10, 64)
		if convErr != nil {
			continue
		}
		hits = append(hits, scored{id: id, score: hit.Score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})

	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids, nil
}

// fuzzyQuery builds a disjunction of per-term fuzzy queries.
func fuzzyQuery(query string) blevequery.Query {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return bleve.NewMatchQuery(query)
	}
	if len(terms) == 1 {
		fq := bleve.NewFuzzyQuery(terms[0])
		fq.SetFuzziness(1)
		return fq
	}
	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(1)
		queries = append(queries, fq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// DocCount returns the number of indexed shirts.
func (si *ShirtIndex) DocCount() (uint64, error) {
	return si.index.DocCount()
}

// Close closes the underlying index.
func (si *ShirtIndex) Close() error {
	return si.index.Close()
}
