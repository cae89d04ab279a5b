package config

// Default interpreter thresholds. Both bounds are inclusive and tunable
// via config.
const (
	DefaultActionThreshold    = 0.30
	DefaultKnowledgeThreshold = 0.40
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/tansu/data/db/shirts.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/tansu/data/indices/bleve"
	}
	if cfg.Storage.ImagesDir == "" {
		cfg.Storage.ImagesDir = "/usr/local/var/tansu/data/images"
	}
	if cfg.Knowledge.Path == "" {
		cfg.Knowledge.Path = "/usr/local/etc/tansu/knowledge.yaml"
	}
	if cfg.Interpreter.ActionThreshold == 0 {
		cfg.Interpreter.ActionThreshold = DefaultActionThreshold
	}
	if cfg.Interpreter.KnowledgeThreshold == 0 {
		cfg.Interpreter.KnowledgeThreshold = DefaultKnowledgeThreshold
	}
}
