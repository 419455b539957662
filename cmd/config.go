package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sift/internal/grid"
	"sift/internal/logging"

	"gopkg.in/yaml.v3"
)

// FileConfig is the content of config.yaml in the config directory.
type FileConfig struct {
	Database   string `yaml:"database,omitempty"`
	SearchMode string `yaml:"search_mode,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
	RowLimit   int    `yaml:"row_limit,omitempty"`
	SetupDone  bool   `yaml:"setup_done"`
}

// Config holds resolved configuration.
type Config struct {
	DBPath     string
	ConfigDir  string
	LogFile    string
	LogLevel   string
	SearchMode grid.SearchMode
	RowLimit   int
}

// flagValues are the raw values of the persistent flags. Empty means unset.
type flagValues struct {
	dbPath     string
	configDir  string
	logFile    string
	logLevel   string
	searchMode string
	rowLimit   int
}

const defaultRowLimit = 100000

func configPath(configDir string) string {
	return filepath.Join(configDir, "config.yaml")
}

func loadFileConfig(configDir string) (FileConfig, error) {
	data, err := os.ReadFile(configPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to parse %s: %w", configPath(configDir), err)
	}
	return cfg, nil
}

func saveFileConfig(configDir string, cfg FileConfig) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath(configDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("SIFT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sift"), nil
}

// resolveConfig merges flags, environment and config.yaml, in that order of
// precedence.
func resolveConfig(flags flagValues) (*Config, FileConfig, error) {
	config := &Config{
		DBPath:    flags.dbPath,
		ConfigDir: flags.configDir,
		LogFile:   flags.logFile,
		LogLevel:  flags.logLevel,
		RowLimit:  flags.rowLimit,
	}

	if config.ConfigDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, FileConfig{}, err
		}
		config.ConfigDir = dir
	}

	file, err := loadFileConfig(config.ConfigDir)
	if err != nil {
		return nil, FileConfig{}, err
	}

	if config.DBPath == "" {
		config.DBPath = os.Getenv("SIFT_DB")
	}
	if config.DBPath == "" {
		config.DBPath = file.Database
	}
	if config.LogLevel == "" {
		config.LogLevel = file.LogLevel
	}
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return nil, FileConfig{}, err
	}
	if config.LogFile == "" {
		config.LogFile = filepath.Join(config.ConfigDir, "sift.log")
	}
	if config.RowLimit == 0 {
		config.RowLimit = file.RowLimit
	}
	if config.RowLimit == 0 {
		config.RowLimit = defaultRowLimit
	}

	mode := flags.searchMode
	if mode == "" {
		mode = file.SearchMode
	}
	config.SearchMode, err = grid.ParseSearchMode(mode)
	if err != nil {
		return nil, FileConfig{}, err
	}

	return config, file, nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
