package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/stock-cutter/internal/cutlist"
	"github.com/eugenenazirov/stock-cutter/internal/report"
)

const (
	defaultFormat   = "text"
	defaultLogLevel = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	StockLength int    `yaml:"stock_length"`
	StockCount  int    `yaml:"stock_count"`
	Cuts        string `yaml:"cuts"`
	CutsFile    string `yaml:"cuts_file"`
	Format      string `yaml:"format"`
	PDFPath     string `yaml:"pdf"`
	LogLevel    string `yaml:"log_level"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Stock    yamlStock       `yaml:"stock"`
	Cuts     []cutlist.Entry `yaml:"cuts"`
	CutsFile string          `yaml:"cuts_file"`
	Output   yamlOutput      `yaml:"output"`
	LogLevel string          `yaml:"log_level"`
}

// yamlStock represents the stock section in YAML.
type yamlStock struct {
	Length *int `yaml:"length"`
	Count  *int `yaml:"count"`
}

// yamlOutput represents the output section in YAML.
type yamlOutput struct {
	Format string `yaml:"format"`
	PDF    string `yaml:"pdf"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	StockLength *int
	StockCount  *int
	Cuts        *string
	CutsFile    *string
	Format      *string
	PDFPath     *string
	LogLevel    *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables
	applyEnvConfig(&cfg)

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Format:   defaultFormat,
		LogLevel: defaultLogLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Stock.Length != nil {
		cfg.StockLength = *yamlCfg.Stock.Length
	}

	if yamlCfg.Stock.Count != nil {
		cfg.StockCount = *yamlCfg.Stock.Count
	}

	if len(yamlCfg.Cuts) > 0 {
		cfg.Cuts = formatEntries(yamlCfg.Cuts)
	}

	if yamlCfg.CutsFile != "" {
		cfg.CutsFile = yamlCfg.CutsFile
	}

	if yamlCfg.Output.Format != "" {
		cfg.Format = yamlCfg.Output.Format
	}

	if yamlCfg.Output.PDF != "" {
		cfg.PDFPath = yamlCfg.Output.PDF
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if length := strings.TrimSpace(os.Getenv("STOCK_LENGTH")); length != "" {
		if value, err := strconv.Atoi(length); err == nil {
			cfg.StockLength = value
		}
	}

	if count := strings.TrimSpace(os.Getenv("STOCK_COUNT")); count != "" {
		if value, err := strconv.Atoi(count); err == nil {
			cfg.StockCount = value
		}
	}

	if cuts := strings.TrimSpace(os.Getenv("CUTS")); cuts != "" {
		cfg.Cuts = cuts
	}

	if file := strings.TrimSpace(os.Getenv("CUTS_FILE")); file != "" {
		cfg.CutsFile = file
	}

	if format := strings.TrimSpace(os.Getenv("OUTPUT_FORMAT")); format != "" {
		cfg.Format = format
	}

	if pdf := strings.TrimSpace(os.Getenv("PDF_PATH")); pdf != "" {
		cfg.PDFPath = pdf
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.StockLength != nil {
		cfg.StockLength = *overrides.StockLength
	}

	if overrides.StockCount != nil {
		cfg.StockCount = *overrides.StockCount
	}

	if overrides.Cuts != nil && *overrides.Cuts != "" {
		cfg.Cuts = *overrides.Cuts
	}

	if overrides.CutsFile != nil && *overrides.CutsFile != "" {
		cfg.CutsFile = *overrides.CutsFile
	}

	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = *overrides.Format
	}

	if overrides.PDFPath != nil && *overrides.PDFPath != "" {
		cfg.PDFPath = *overrides.PDFPath
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.StockLength <= 0 {
		return fmt.Errorf("stock length must be > 0")
	}
	if cfg.StockCount < 0 {
		return fmt.Errorf("stock count must be >= 0")
	}
	if strings.TrimSpace(cfg.Cuts) == "" && strings.TrimSpace(cfg.CutsFile) == "" {
		return fmt.Errorf("no cuts provided: set cuts or a cuts file")
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return err
	}
	return nil
}

// formatEntries renders YAML cut entries in the flag syntax accepted by
// cutlist.ParseEntries. Labels are not carried over.
func formatEntries(entries []cutlist.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		qty := e.Quantity
		if qty == 0 {
			qty = 1
		}
		parts = append(parts, fmt.Sprintf("%dx%d", e.Length, qty))
	}
	return strings.Join(parts, ",")
}
