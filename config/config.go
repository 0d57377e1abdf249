package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the chunking tool.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Files   FilesConfig   `yaml:"files"`
	Output  OutputConfig  `yaml:"output"`
	Run     RunConfig     `yaml:"run"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds chunk splitting configuration.
type ParserConfig struct {
	ChunkSize         int  `yaml:"chunk_size"`
	RespectParagraphs bool `yaml:"respect_paragraphs"`
}

// FilesConfig selects which files a directory run picks up.
type FilesConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// OutputConfig holds chunk output configuration.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Flat bool   `yaml:"flat"` // flatten relative paths into file prefixes
}

// RunConfig holds directory-run configuration.
type RunConfig struct {
	Workers     int  `yaml:"workers"`
	Incremental bool `yaml:"incremental"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			ChunkSize:         500,
			RespectParagraphs: true,
		},
		Files: FilesConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.go", "**/*.py", "**/*.js", "**/*.ts", "**/*.java", "**/*.c", "**/*.h", "**/*.cpp", "**/*.rs", "**/*.rb", "**/*.php", "**/*.sh"},
			Excludes: []string{"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/dist/**", "**/build/**", "**/__pycache__/**", "**/.textparser/**"},
		},
		Output: OutputConfig{
			Dir:  "chunks",
			Flat: true,
		},
		Run: RunConfig{
			Workers:     4,
			Incremental: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for textparser.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try textparser.yaml in the directory
	path := filepath.Join(dir, "textparser.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .textparser/config.yaml
	path = filepath.Join(dir, ".textparser", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ManifestDBPath returns the path to the manifest database.
func ManifestDBPath(dir string) string {
	return filepath.Join(dir, ".textparser", "manifest.db")
}

// EnsureStateDir ensures the .textparser directory exists.
func EnsureStateDir(dir string) error {
	stateDir := filepath.Join(dir, ".textparser")
	return os.MkdirAll(stateDir, 0755)
}
