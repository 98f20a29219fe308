// =============================================================================
// SC Allocation List - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the application
// configuration file (config.yaml).
//
// CONFIGURATION FILE:
//   A single YAML document with directory, output, logging and mapping
//   settings. Every field has a default, so an empty file (or no file at all)
//   is a valid configuration.
//
// MAPPINGS:
//   The column mapping table may be overridden in the config file. Each entry
//   is validated the same way a ColumnMapping is constructed in code, so a
//   typo in a target column or transformation name stops the program before
//   any file is read.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/export"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned when 'process' is run without file arguments.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where exports and error logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed uploads are moved.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveInput moves each upload to InputArchiveDir after its exports
	// were written.
	// Default: false
	ArchiveInput bool `yaml:"archive_input"`

	// ArchiveByDate files archived uploads under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveByDate bool `yaml:"archive_by_date"`

	// ArchiveRetentionDays prunes archived uploads older than this many days
	// after each processing run. Zero keeps everything.
	// Default: 0
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// FileNameFormat defines the export file name (without extension).
	// Placeholders:
	//   {date}      - Effective date of the upload (YYYY-MM-DD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	//   {source}    - Upload file name without extension
	// Default: "sc_allocation_{date}"
	FileNameFormat string `yaml:"file_name_format"`

	// SheetName is the worksheet name used in XLSX exports.
	// Default: "SC_Allocation_List"
	SheetName string `yaml:"sheet_name"`

	// TableName is the name of the canonical target table.
	// Default: "SC_ALLOC_LIST"
	TableName string `yaml:"table_name"`

	// Formats lists the export formats written by 'process'.
	// Valid values: "csv", "xlsx", "xml"
	// Default: [csv, xlsx]
	Formats []string `yaml:"formats"`

	// WriteSummary writes a processing_summary_<timestamp>.txt per run.
	// Default: true
	WriteSummary *bool `yaml:"write_summary"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// PreviewRows is the default number of rows shown by 'preview'.
	// An explicit 0 previews no rows.
	// Default: 10
	PreviewRows *int `yaml:"preview_rows"`

	// MaxDisplayedErrors caps the number of issues printed by 'validate'.
	// An explicit 0 (or a negative value) shows every issue.
	// Default: 20
	MaxDisplayedErrors *int `yaml:"max_displayed_errors"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects human-readable or JSON log lines.
	// Valid values: "console", "json"
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// COLUMN MAPPINGS
	// =========================================================================

	// Mappings overrides the default column mapping table.
	// Leave empty to use the built-in table.
	Mappings []MappingConfig `yaml:"mappings"`
}

// MappingConfig is one column mapping entry as written in YAML.
//
// Example:
//
//	mappings:
//	  - source: "Fraud Warning - Desc"
//	    target: FRAUD_WARNING
//	    transformation: yes_no_to_boolean
type MappingConfig struct {
	Source         string `yaml:"source"`
	Target         string `yaml:"target"`
	Transformation string `yaml:"transformation,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configPath, falling back to Default when the file does
// not exist and allowMissing is set.
func LoadOrDefault(configPath string, allowMissing bool) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil && allowMissing && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.FileNameFormat == "" {
		cfg.FileNameFormat = "sc_allocation_{date}"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "SC_Allocation_List"
	}
	if cfg.TableName == "" {
		cfg.TableName = domain.DefaultTableName
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{FormatCSV, FormatXLSX}
	}
	if cfg.WriteSummary == nil {
		enabled := true
		cfg.WriteSummary = &enabled
	}
	if cfg.PreviewRows == nil {
		cfg.PreviewRows = intPtr(10)
	}
	if cfg.MaxDisplayedErrors == nil {
		cfg.MaxDisplayedErrors = intPtr(20)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatConsole
	}
}

func intPtr(v int) *int {
	return &v
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	formats, err := NormalizeFormats(c.Formats)
	if err != nil {
		return err
	}
	c.Formats = formats

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (expected %q or %q)", c.LogFormat, LogFormatConsole, LogFormatJSON)
	}

	if c.PreviewRows != nil && *c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative")
	}
	if c.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative")
	}
	if strings.ContainsAny(c.SheetName, `:\/?*[]`) || len(c.SheetName) > 31 {
		return fmt.Errorf("invalid sheet_name %q", c.SheetName)
	}

	if !export.IsXMLName(c.TableName) {
		return fmt.Errorf("invalid table_name %q: must be a valid XML element name", c.TableName)
	}

	if _, err := c.ColumnMappings(); err != nil {
		return err
	}

	return nil
}

// ParseFormat normalises an export format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatCSV, FormatXLSX, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected %q, %q or %q)", s, FormatCSV, FormatXLSX, FormatXML)
	}
}

// NormalizeFormats validates a format list, lower-casing entries and dropping
// duplicates while keeping the first occurrence.
func NormalizeFormats(formats []string) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one export format is required")
	}

	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		format, err := ParseFormat(f)
		if err != nil {
			return nil, err
		}
		if seen[format] {
			continue
		}
		seen[format] = true
		out = append(out, format)
	}

	return out, nil
}

// =============================================================================
// MAPPING CONVERSION
// =============================================================================

// ColumnMappings returns the configured mapping table, or the default table
// when none is configured.
func (c *Config) ColumnMappings() ([]domain.ColumnMapping, error) {
	if len(c.Mappings) == 0 {
		return domain.DefaultMappings(), nil
	}

	mappings := make([]domain.ColumnMapping, 0, len(c.Mappings))
	for i, m := range c.Mappings {
		mapping, err := domain.NewColumnMapping(m.Source, m.Target, m.Transformation)
		if err != nil {
			return nil, fmt.Errorf("mappings[%d]: %w", i, err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

// TableSchema returns the target schema with the configured table name.
func (c *Config) TableSchema() domain.TableSchema {
	return domain.TableSchema{TableName: c.TableName}
}
