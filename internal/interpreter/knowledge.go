package interpreter

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/tansu/internal/match"
	"github.com/hyperjump/tansu/internal/models"
)

// KnowledgeIndex serves canned answers from a YAML question/answer file.
// The file is read lazily on first lookup and cached; Reload replaces the
// cache in place. A missing or malformed file degrades to an empty index
// so command handling keeps working without it.
type KnowledgeIndex struct {
	path   string
	logger *zap.Logger

	once    sync.Once
	mu      sync.RWMutex
	entries []models.KnowledgeEntry
}

// NewKnowledgeIndex returns an index backed by the YAML file at path.
// Nothing is read until the first lookup.
func NewKnowledgeIndex(path string, logger *zap.Logger) *KnowledgeIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeIndex{path: path, logger: logger}
}

// Entries returns the cached entries, loading the file on first call.
func (k *KnowledgeIndex) Entries() []models.KnowledgeEntry {
	k.once.Do(func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		k.entries = k.load()
	})
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.entries
}

// Reload re-reads the backing file, replacing the cached entries. Used by
// the file watcher and the reload endpoint.
func (k *KnowledgeIndex) Reload() int {
	k.once.Do(func() {}) // a reload counts as the initial load
	entries := k.load()
	k.mu.Lock()
	k.entries = entries
	k.mu.Unlock()
	return len(entries)
}

func (k *KnowledgeIndex) load() []models.KnowledgeEntry {
	data, err := os.ReadFile(k.path)
	if err != nil {
		k.logger.Warn("knowledge file unavailable",
			zap.String("path", k.path),
			zap.Error(err))
		return nil
	}
	var entries []models.KnowledgeEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		k.logger.Warn("knowledge file malformed",
			zap.String("path", k.path),
			zap.Error(err))
		return nil
	}
	k.logger.Debug("knowledge loaded",
		zap.String("path", k.path),
		zap.Int("entries", len(entries)))
	return entries
}

// Resolver matches free-form questions against the knowledge index.
type Resolver struct {
	index     *KnowledgeIndex
	threshold float64
}

// NewResolver wraps a knowledge index with a match threshold. The threshold
// is inclusive; entries scoring exactly at it are answerable.
func NewResolver(index *KnowledgeIndex, threshold float64) *Resolver {
	return &Resolver{index: index, threshold: threshold}
}

// Resolve scores the message against every entry's question and returns the
// best answer at or above the threshold. Each entry scores the larger of the
// whole-question similarity ratio and the fraction of the question's content
// words present in the message. Earlier entries win ties, so the file's
// order is a priority order.
func (r *Resolver) Resolve(message string) (string, bool) {
	msgTokens := Normalize(message)
	if len(msgTokens) == 0 {
		return "", false
	}
	msg := normalizedMessage(message)

	bestScore := 0.0
	bestAnswer := ""
	for _, entry := range r.index.Entries() {
		score := scoreQuestion(entry.Question, msgTokens, msg)
		if score > bestScore {
			bestScore = score
			bestAnswer = entry.Answer
		}
	}
	if bestScore < r.threshold || bestAnswer == "" {
		return "", false
	}
	return bestAnswer, true
}

func scoreQuestion(question string, msgTokens []string, msg string) float64 {
	score := match.Ratio(normalizedMessage(question), msg)

	var content, hit int
	for _, tok := range match.Tokenize(question) {
		if fillerWords[tok] || len(tok) < 3 {
			continue
		}
		content++
		if containsToken(msgTokens, tok) {
			hit++
		}
	}
	if content > 0 {
		if overlap := float64(hit) / float64(content); overlap > score {
			score = overlap
		}
	}
	return clamp01(score)
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
