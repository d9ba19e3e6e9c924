package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// logger config
	LOG_FILE_PATH string
	// grid defaults for freshly created sheets
	GRID_DEFAULT_ROWS int
	GRID_DEFAULT_COLS int
	// optional YAML file with file-export defaults
	EXPORT_CONFIG_PATH string
}

// LoadEnvConfig reads .env (when present) and the process environment into
// DefaultEnvConfig.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:           getEnvString("APP_PORT", "8080"),
		LOG_FILE_PATH:      getEnvString("LOG_FILE_PATH", ""),
		GRID_DEFAULT_ROWS:  getEnvInt("GRID_DEFAULT_ROWS", 2),
		GRID_DEFAULT_COLS:  getEnvInt("GRID_DEFAULT_COLS", 2),
		EXPORT_CONFIG_PATH: getEnvString("EXPORT_CONFIG_PATH", ""),
	}
	return nil
}

// ExportConfig holds the file-export defaults, loadable from YAML.
type ExportConfig struct {
	SheetName     string  `yaml:"sheet_name"`
	ColumnWidthPx float64 `yaml:"column_width_px"`
	RowHeightPx   float64 `yaml:"row_height_px"`
}

// LoadExportConfig reads export defaults from a YAML file. An empty path
// yields the built-in defaults.
func LoadExportConfig(path string) (*ExportConfig, error) {
	cfg := &ExportConfig{
		SheetName:     "Sheet1",
		ColumnWidthPx: 64,
		RowHeightPx:   20,
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode export config: %w", err)
	}
	return cfg, nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
