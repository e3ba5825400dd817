package types

// CategorizeConfig holds settings for the categorization pipeline.
type CategorizeConfig struct {
	// MaxCategories caps the number of categories returned (default 6).
	MaxCategories int `json:"max_categories" yaml:"max_categories" mapstructure:"max_categories"`

	// EnhanceLimit is the number of head items given to an empty category (default 5).
	EnhanceLimit int `json:"enhance_limit" yaml:"enhance_limit" mapstructure:"enhance_limit"`

	// DedupContent drops repeated items when merging categories that share an ID.
	DedupContent bool `json:"dedup_content" yaml:"dedup_content" mapstructure:"dedup_content"`

	// IncludeClassified appends classified buckets after the candidate
	// categories instead of treating candidates as the only source.
	IncludeClassified bool `json:"include_classified" yaml:"include_classified" mapstructure:"include_classified"`

	// Rules replaces the built-in classifier keyword table when non-empty.
	// Order is the tie-break priority.
	Rules []CategoryRule `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`
}

// CacheConfig holds settings for the last-good-result cache.
type CacheConfig struct {
	// Enabled turns the cache on for the categorize command.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding the cache database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// RegistryConfig points at the source registry file.
type RegistryConfig struct {
	// Path is a YAML file of registry entries. Empty disables enrichment.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	LogLevel   string           `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Categorize CategorizeConfig `json:"categorize" yaml:"categorize" mapstructure:"categorize"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Registry   RegistryConfig   `json:"registry" yaml:"registry" mapstructure:"registry"`
}

// DefaultConfig returns the configuration used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Categorize: CategorizeConfig{
			MaxCategories: 6,
			EnhanceLimit:  5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".insight-engine",
		},
	}
}
