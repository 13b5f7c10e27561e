package model

import "time"

// SchemaLocationMode controls how the emitter writes the schemaRef href.
type SchemaLocationMode string

const (
	// SchemaAbsolute resolves relative entry point paths against the
	// taxonomy cache directory and writes a file:// URI. This couples the
	// instance to the producing machine but matches what Arelle resolves
	// out of the box.
	SchemaAbsolute SchemaLocationMode = "absolute"
	// SchemaRelative writes the configured href unchanged.
	SchemaRelative SchemaLocationMode = "relative"
	// SchemaCatalog writes the configured catalog URI instead of a path.
	SchemaCatalog SchemaLocationMode = "catalog"
)

// Config is the complete application configuration.
type Config struct {
	Model       ModelConfig       `yaml:"model"`
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy"`
	Output      OutputConfig      `yaml:"output"`
	Emitter     EmitterConfig     `yaml:"emitter"`
	Validation  ValidationConfig  `yaml:"validation"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// ModelConfig locates the declarative registry files.
type ModelConfig struct {
	FactsFile    string `yaml:"facts_file"`
	ContextsFile string `yaml:"contexts_file"`
	UnitsFile    string `yaml:"units_file"`
}

// TaxonomyConfig locates the taxonomy archive, cache and entry point table.
type TaxonomyConfig struct {
	EntrypointsFile string `yaml:"entrypoints_file"`
	ArchivePath     string `yaml:"archive_path"`
	CacheDir        string `yaml:"cache_dir"`
}

// OutputConfig controls artifact placement and verbosity.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// EmitterConfig controls document emission.
type EmitterConfig struct {
	SchemaLocation SchemaLocationMode `yaml:"schema_location"`
	CatalogURI     string             `yaml:"catalog_uri,omitempty"`
}

// ValidationConfig controls the external Arelle validation step.
type ValidationConfig struct {
	Enabled bool          `yaml:"enabled"`
	Binary  string        `yaml:"binary"` // name or path of arelleCmdLine
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls the validation-report cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch conversion parallelism. A single run is
// always sequential; workers only apply across documents.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			FactsFile:    "model/facts.yml",
			ContextsFile: "model/contexts.yml",
			UnitsFile:    "model/units.yml",
		},
		Taxonomy: TaxonomyConfig{
			EntrypointsFile: "taxonomy/entrypoints.yml",
			ArchivePath:     "gri-sustainability-taxonomy.zip",
			CacheDir:        "taxonomy_cache",
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Emitter: EmitterConfig{
			SchemaLocation: SchemaAbsolute,
		},
		Validation: ValidationConfig{
			Enabled: true,
			Binary:  "arelleCmdLine",
			Timeout: 2 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "out/.cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
