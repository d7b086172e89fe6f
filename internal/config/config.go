// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	Media    MediaConfig
	Pipeline PipelineConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// CatalogConfig points at the artist catalog file.
type CatalogConfig struct {
	Path string
}

// MediaConfig holds the paths the tagging run operates on.
type MediaConfig struct {
	// LibraryPath is the folder of downloaded media to tag.
	LibraryPath string
	// RenameLogPath is the organizer's rename log feeding the
	// provenance tag (default: {library}/renames.json).
	RenameLogPath string
	// InfoPath is the downloader's item metadata JSON
	// (default: {library}/item.json).
	InfoPath string
}

// PipelineConfig tunes the tagging run.
type PipelineConfig struct {
	// Workers is the number of concurrent file taggers (default: 0, meaning NumCPU)
	Workers int
	// UploaderFallback lets artist matching consult the uploader name (default: false)
	UploaderFallback bool
	// WriteSidecar controls chapter CSV sidecar emission (default: true)
	WriteSidecar bool
}

// Flags names the command-line values Load consumes, so the caller
// owns flag registration and parsing.
type Flags struct {
	Env              string
	LogLevel         string
	CatalogPath      string
	LibraryPath      string
	RenameLogPath    string
	InfoPath         string
	Workers          string
	UploaderFallback string
	WriteSidecar     string
	EnvFile          string
}

// Load builds configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(flags Flags) (*Config, error) {
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Path: getConfigValue(flags.CatalogPath, "CATALOG_PATH", ""),
		},
		Media: MediaConfig{
			LibraryPath:   getConfigValue(flags.LibraryPath, "LIBRARY_PATH", ""),
			RenameLogPath: getConfigValue(flags.RenameLogPath, "RENAME_LOG_PATH", ""),
			InfoPath:      getConfigValue(flags.InfoPath, "INFO_PATH", ""),
		},
		Pipeline: PipelineConfig{
			Workers:          getIntConfigValue(flags.Workers, "PIPELINE_WORKERS", 0),
			UploaderFallback: getBoolConfigValue(flags.UploaderFallback, "UPLOADER_FALLBACK", false),
			WriteSidecar:     getBoolConfigValue(flags.WriteSidecar, "WRITE_SIDECAR", true),
		},
	}

	if err := cfg.expandCatalogPath(); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}
	if err := cfg.expandLibraryPaths(); err != nil {
		return nil, fmt.Errorf("invalid library path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Catalog.Path == "" {
		return errors.New("catalog path is required")
	}
	if c.Media.LibraryPath == "" {
		return errors.New("library path is required")
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Pipeline.Workers)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandCatalogPath expands ~ and makes the path absolute.
func (c *Config) expandCatalogPath() error {
	expanded, err := expandPath(c.Catalog.Path, "")
	if err != nil {
		return err
	}
	c.Catalog.Path = expanded
	return nil
}

// expandLibraryPaths expands the library path and derives the rename
// log and item info defaults from it.
func (c *Config) expandLibraryPaths() error {
	expanded, err := expandPath(c.Media.LibraryPath, "")
	if err != nil {
		return err
	}
	c.Media.LibraryPath = expanded

	renameDefault := ""
	infoDefault := ""
	if c.Media.LibraryPath != "" {
		renameDefault = filepath.Join(c.Media.LibraryPath, "renames.json")
		infoDefault = filepath.Join(c.Media.LibraryPath, "item.json")
	}

	c.Media.RenameLogPath, err = expandPath(c.Media.RenameLogPath, renameDefault)
	if err != nil {
		return err
	}
	c.Media.InfoPath, err = expandPath(c.Media.InfoPath, infoDefault)
	if err != nil {
		return err
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
