package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/archivetidy/internal/grouping"
	"github.com/harrison/archivetidy/internal/hasher"
	"github.com/harrison/archivetidy/internal/similarity"
	"gopkg.in/yaml.v3"
)

// HashConfig controls content hashing for exact-duplicate detection
type HashConfig struct {
	// Algorithm is the digest used for content comparison (md5 or sha256)
	Algorithm string `yaml:"algorithm"`

	// ChunkSize is the number of bytes read per chunk while hashing
	ChunkSize int `yaml:"chunk_size"`
}

// ScanConfig controls directory traversal
type ScanConfig struct {
	// Recursive descends into subdirectories
	Recursive bool `yaml:"recursive"`

	// IncludeHidden includes dotfiles and dot-directories
	IncludeHidden bool `yaml:"include_hidden"`

	// Extensions restricts scans to these extensions (empty = all files)
	Extensions []string `yaml:"extensions"`
}

// FuzzyConfig controls folder-name clustering
type FuzzyConfig struct {
	// Threshold is the minimum similarity score (0-100) for two names to cluster
	Threshold float64 `yaml:"threshold"`

	// Scorer names the similarity function (match or ratio)
	Scorer string `yaml:"scorer"`
}

// Config represents archivetidy configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// FileLog enables the JSON run log in LogDir
	FileLog bool `yaml:"file_log"`

	Hash  HashConfig  `yaml:"hash"`
	Scan  ScanConfig  `yaml:"scan"`
	Fuzzy FuzzyConfig `yaml:"fuzzy"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LogDir:   filepath.Join(DefaultHomeDir, "logs"),
		FileLog:  true,
		Hash: HashConfig{
			Algorithm: hasher.AlgorithmMD5,
			ChunkSize: hasher.DefaultChunkSize,
		},
		Scan: ScanConfig{
			Recursive:     false,
			IncludeHidden: false,
		},
		Fuzzy: FuzzyConfig{
			Threshold: grouping.DefaultThreshold,
			Scorer:    similarity.ScorerMatch,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Keys present in the file override defaults, even when set to a zero value
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := rawMap["log_level"]; ok {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if _, ok := rawMap["log_dir"]; ok {
		cfg.LogDir = fileCfg.LogDir
	}
	if _, ok := rawMap["file_log"]; ok {
		cfg.FileLog = fileCfg.FileLog
	}

	if section := sectionKeys(rawMap, "hash"); section != nil {
		if _, ok := section["algorithm"]; ok {
			cfg.Hash.Algorithm = fileCfg.Hash.Algorithm
		}
		if _, ok := section["chunk_size"]; ok {
			cfg.Hash.ChunkSize = fileCfg.Hash.ChunkSize
		}
	}

	if section := sectionKeys(rawMap, "scan"); section != nil {
		if _, ok := section["recursive"]; ok {
			cfg.Scan.Recursive = fileCfg.Scan.Recursive
		}
		if _, ok := section["include_hidden"]; ok {
			cfg.Scan.IncludeHidden = fileCfg.Scan.IncludeHidden
		}
		if _, ok := section["extensions"]; ok {
			cfg.Scan.Extensions = fileCfg.Scan.Extensions
		}
	}

	if section := sectionKeys(rawMap, "fuzzy"); section != nil {
		if _, ok := section["threshold"]; ok {
			cfg.Fuzzy.Threshold = fileCfg.Fuzzy.Threshold
		}
		if _, ok := section["scorer"]; ok {
			cfg.Fuzzy.Scorer = fileCfg.Fuzzy.Scorer
		}
	}

	return cfg, nil
}

// sectionKeys returns the keys of a nested YAML mapping, or nil if the
// section is absent or not a mapping.
func sectionKeys(raw map[string]interface{}, name string) map[string]interface{} {
	section, ok := raw[name].(map[string]interface{})
	if !ok {
		return nil
	}
	return section
}

// LoadConfigFromDir loads configuration from .archivetidy/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultHomeDir, ConfigFileName))
}

// Flags carries command-line overrides. Nil fields leave the configured value alone.
type Flags struct {
	LogLevel      *string
	LogDir        *string
	FileLog       *bool
	HashAlgorithm *string
	Recursive     *bool
	IncludeHidden *bool
	Threshold     *float64
	Scorer        *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(f Flags) {
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.FileLog != nil {
		c.FileLog = *f.FileLog
	}
	if f.HashAlgorithm != nil {
		c.Hash.Algorithm = *f.HashAlgorithm
	}
	if f.Recursive != nil {
		c.Scan.Recursive = *f.Recursive
	}
	if f.IncludeHidden != nil {
		c.Scan.IncludeHidden = *f.IncludeHidden
	}
	if f.Threshold != nil {
		c.Fuzzy.Threshold = *f.Threshold
	}
	if f.Scorer != nil {
		c.Fuzzy.Scorer = *f.Scorer
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.FileLog && c.LogDir == "" {
		return fmt.Errorf("log_dir cannot be empty when file_log is enabled")
	}

	switch strings.ToLower(c.Hash.Algorithm) {
	case hasher.AlgorithmMD5, hasher.AlgorithmSHA256:
	default:
		return fmt.Errorf("invalid hash.algorithm %q, must be one of: %s, %s", c.Hash.Algorithm, hasher.AlgorithmMD5, hasher.AlgorithmSHA256)
	}
	if c.Hash.ChunkSize <= 0 {
		return fmt.Errorf("hash.chunk_size must be > 0, got %d", c.Hash.ChunkSize)
	}

	for _, ext := range c.Scan.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("scan.extensions cannot contain empty entries")
		}
	}

	if c.Fuzzy.Threshold < 0 || c.Fuzzy.Threshold > 100 {
		return fmt.Errorf("fuzzy.threshold must be between 0 and 100, got %v", c.Fuzzy.Threshold)
	}
	switch strings.ToLower(c.Fuzzy.Scorer) {
	case similarity.ScorerMatch, similarity.ScorerRatio:
	default:
		return fmt.Errorf("invalid fuzzy.scorer %q, must be one of: %s, %s", c.Fuzzy.Scorer, similarity.ScorerMatch, similarity.ScorerRatio)
	}

	return nil
}
