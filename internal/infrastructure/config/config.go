// Package config loads the application configuration from the environment
// and an optional YAML file.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerURL           string        `yaml:"server_url" validate:"required,url"`
	VaultPath           string        `yaml:"vault_path" validate:"required"`
	VocabularyFolder    string        `yaml:"vocabulary_folder" validate:"required"`
	StoriesFolder       string        `yaml:"stories_folder" validate:"required"`
	StoryWordCount      int           `yaml:"story_word_count" validate:"min=1"`
	ShortSelectionLimit int           `yaml:"short_selection_limit" validate:"min=1"`
	HTTPTimeout         time.Duration `yaml:"http_timeout" validate:"gt=0"`
	HistoryDB           string        `yaml:"history_db"`
	LogFilePath         string        `yaml:"log_file_path"`
	Environment         string        `yaml:"environment" validate:"oneof=development production"`
	ServerAddr          string        `yaml:"server_addr"`
}

// IsProduction reports whether Environment is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HistoryPath resolves HistoryDB against the vault. Empty means the
// journal stays in memory.
func (c *Config) HistoryPath() string {
	if c.HistoryDB == "" || filepath.IsAbs(c.HistoryDB) {
		return c.HistoryDB
	}
	return filepath.Join(c.VaultPath, c.HistoryDB)
}

// Load reads .env (if present), the environment, then yamlPath (if not
// empty), and validates the result.
func Load(yamlPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := FromEnv()

	if yamlPath != "" {
		if err := cfg.mergeYAML(yamlPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables and defaults.
func FromEnv() *Config {
	return &Config{
		ServerURL:           getEnv("SERVER_URL", ""),
		VaultPath:           getEnv("VAULT_PATH", "."),
		VocabularyFolder:    getEnv("VOCABULARY_FOLDER", "English/Vocabulary"),
		StoriesFolder:       getEnv("STORIES_FOLDER", "English/stories"),
		StoryWordCount:      getEnvAsInt("STORY_WORD_COUNT", 10),
		ShortSelectionLimit: getEnvAsInt("SHORT_SELECTION_LIMIT", 30),
		HTTPTimeout:         getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		HistoryDB:           getEnv("HISTORY_DB", ".wordlookup/history.db"),
		LogFilePath:         getEnv("LOG_FILE_PATH", "wordlookup.log"),
		Environment:         getEnv("GO_ENV", "development"),
		ServerAddr:          getEnv("SERVER_ADDR", ":8090"),
	}
}

// Validate checks the configuration rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// mergeYAML overrides fields with the non-zero values found in path.
func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	overrideString(&c.ServerURL, file.ServerURL)
	overrideString(&c.VaultPath, file.VaultPath)
	overrideString(&c.VocabularyFolder, file.VocabularyFolder)
	overrideString(&c.StoriesFolder, file.StoriesFolder)
	overrideString(&c.HistoryDB, file.HistoryDB)
	overrideString(&c.LogFilePath, file.LogFilePath)
	overrideString(&c.Environment, file.Environment)
	overrideString(&c.ServerAddr, file.ServerAddr)
	if file.StoryWordCount != 0 {
		c.StoryWordCount = file.StoryWordCount
	}
	if file.ShortSelectionLimit != 0 {
		c.ShortSelectionLimit = file.ShortSelectionLimit
	}
	if file.HTTPTimeout != 0 {
		c.HTTPTimeout = file.HTTPTimeout
	}
	return nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
