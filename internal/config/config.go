package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ReportConfig describes where the station workbook is read from and where
// the analysis report goes.
type ReportConfig struct {
	InputFile        string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	OutputFile       string `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required,nefield=InputFile"`
	SheetName        string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	HeaderRow        int    `yaml:"header_row" envconfig:"HEADER_ROW" validate:"min=0,max=1000"`
	PercentPrecision int32  `yaml:"percent_precision" envconfig:"PERCENT_PRECISION" validate:"min=0,max=10"`
	CSVDir           string `yaml:"csv_dir" envconfig:"CSV_DIR"`
	ManifestFile     string `yaml:"manifest_file" envconfig:"MANIFEST_FILE"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	EnableTracing   bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter   string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	SampleRatio     float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
	EnableMetrics   bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsTextfile string  `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// STATIONS_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags so that unset variables keep file values.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg. Keys absent from the file keep
// their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths fills empty file locations from the executable-relative layout
func (c *Config) resolvePaths() error {
	if c.Report.InputFile != "" && c.Report.OutputFile != "" &&
		(c.Logging.Output == "console" || c.Logging.FilePath != "") {
		return nil
	}

	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	if c.Report.InputFile == "" {
		c.Report.InputFile = paths.DefaultInputFile()
	}
	if c.Report.OutputFile == "" {
		c.Report.OutputFile = paths.DefaultReportFile()
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = paths.GetLogPath(DefaultLogFileName)
	}
	return nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	// Per logging policy: JSON only
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{
		ConfigFileName,
		"configs/" + ConfigFileName,
		"../configs/" + ConfigFileName,
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: "both",
		},
		Report: ReportConfig{
			HeaderRow:        DefaultHeaderRow,
			PercentPrecision: DefaultPercentPrecision,
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			TraceExporter: "none",
			SampleRatio:   1.0,
			EnableMetrics: true,
		},
	}
}
