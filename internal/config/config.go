package config

// Config represents the complete godoc-swagger configuration.
// It can be loaded from .godoc-swagger/config.yml with environment variable
// overrides.
type Config struct {
	Annotations AnnotationsConfig `yaml:"annotations" mapstructure:"annotations"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Resolver    ResolverConfig    `yaml:"resolver" mapstructure:"resolver"`
	Watch       WatchConfig       `yaml:"watch" mapstructure:"watch"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
}

// AnnotationsConfig configures block detection and position resolution.
type AnnotationsConfig struct {
	Marker             string            `yaml:"marker" mapstructure:"marker"`                           // block-start marker token
	ProximityThreshold int               `yaml:"proximity_threshold" mapstructure:"proximity_threshold"` // max column distance for near-miss resolution
	CommentTokens      map[string]string `yaml:"comment_tokens" mapstructure:"comment_tokens"`           // extension -> line-comment token overrides
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to skip
}

// ResolverConfig selects the symbol resolver priority order. The plain-text
// "scan" resolver is always available as the final fallback even when omitted.
type ResolverConfig struct {
	Order []string `yaml:"order" mapstructure:"order"` // subset of "index", "search", "scan"
}

// WatchConfig tunes the file watcher used by the MCP server.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a rescan fires
}

// StorageConfig defines cache behavior.
type StorageConfig struct {
	CacheLocation string `yaml:"cache_location" mapstructure:"cache_location"` // Override default ~/.godoc-swagger
	CacheEntries  int    `yaml:"cache_entries" mapstructure:"cache_entries"`   // Max files held in the scan cache
}

// ResolverNames lists the resolvers that may appear in resolver.order.
var ResolverNames = []string{"index", "search", "scan"}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Annotations: AnnotationsConfig{
			Marker:             "godoc",
			ProximityThreshold: 10,
			CommentTokens:      map[string]string{},
		},
		Paths: PathsConfig{
			Code: []string{
				"**/*.go",
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.py",
				"**/*.rs",
				"**/*.c",
				"**/*.h",
				"**/*.php",
				"**/*.rb",
				"**/*.java",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.test",
				"*.pyc",
			},
		},
		Resolver: ResolverConfig{
			Order: []string{"index", "search", "scan"},
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Storage: StorageConfig{
			CacheLocation: "", // Empty means use default ~/.godoc-swagger
			CacheEntries:  1024,
		},
	}
}

// GetSourceExtensions extracts unique file extensions from the code patterns.
// Returns extensions with leading dot (e.g. []string{".go", ".py"}).
func (c *Config) GetSourceExtensions() []string {
	extMap := make(map[string]bool)
	for _, pattern := range c.Paths.Code {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}
	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Examples: "**/*.go" -> ".go", "*.ts" -> ".ts".
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
