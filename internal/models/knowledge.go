package models

// KnowledgeEntry is one question/answer pair from the knowledge source.
// Entries keep the order they appear in the source file so that lookup
// ties resolve deterministically to the first-listed entry.
type KnowledgeEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}
