package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// Schema returns the JSON schema for statline configuration files.
func Schema() string {
	return schemaJSON
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate validates a config file against the embedded JSON schema and the
// Go-side range rules the schema cannot express.
func Validate(path string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Normalize any supported format to a generic map for schema validation.
	raw, err := loadRaw(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	docLoader := gojsonschema.NewGoLoader(raw)

	schemaResult, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	for _, e := range schemaResult.Errors() {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}

	cfg, err := Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: err.Error(),
		})
		return result, nil
	}

	for _, ve := range CheckInvariants(cfg) {
		result.Valid = false
		result.Errors = append(result.Errors, ve)
	}

	// Unknown tags are inert at generation time; flagged here so typos
	// surface during validation instead of silently rendering nothing.
	known := make(map[Feature]bool, len(DisplayOrder))
	for _, f := range DisplayOrder {
		known[f] = true
	}
	for _, f := range cfg.Features {
		if !known[f] {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "features",
				Message: fmt.Sprintf("unknown feature %q will be ignored", f),
			})
		}
	}

	return result, nil
}

// CheckInvariants verifies the hard invariants of a normalized config:
// non-empty feature set, known theme, monitoring values in range.
func CheckInvariants(cfg *Config) []ValidationError {
	var errs []ValidationError

	if len(cfg.Features) == 0 {
		errs = append(errs, ValidationError{
			Field:   "features",
			Message: "at least one feature must be selected",
		})
	}

	switch cfg.Theme {
	case ThemeMinimal, ThemeDetailed, ThemeCompact:
	default:
		errs = append(errs, ValidationError{
			Field:   "theme",
			Message: fmt.Sprintf("theme must be one of minimal, detailed, compact (got %q)", cfg.Theme),
		})
	}

	if m := cfg.SystemMonitoring; m != nil {
		if m.RefreshRateSeconds < 1 || m.RefreshRateSeconds > 60 {
			errs = append(errs, ValidationError{
				Field:   "system_monitoring/refresh_rate_seconds",
				Message: fmt.Sprintf("must be between 1 and 60 (got %d)", m.RefreshRateSeconds),
			})
		}
		if m.CPUThresholdPct < 10 || m.CPUThresholdPct > 95 {
			errs = append(errs, ValidationError{
				Field:   "system_monitoring/cpu_threshold_pct",
				Message: fmt.Sprintf("must be between 10 and 95 (got %d)", m.CPUThresholdPct),
			})
		}
		if m.MemoryThresholdPct < 10 || m.MemoryThresholdPct > 95 {
			errs = append(errs, ValidationError{
				Field:   "system_monitoring/memory_threshold_pct",
				Message: fmt.Sprintf("must be between 10 and 95 (got %d)", m.MemoryThresholdPct),
			})
		}
		if m.LoadThreshold < 0.1 || m.LoadThreshold > 10.0 {
			errs = append(errs, ValidationError{
				Field:   "system_monitoring/load_threshold",
				Message: fmt.Sprintf("must be between 0.1 and 10.0 (got %.2f)", m.LoadThreshold),
			})
		}
	}

	return errs
}

// loadRaw parses a config file into a generic map without applying defaults,
// so the schema sees exactly what the user wrote.
func loadRaw(path string) (map[string]interface{}, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		parser = kyaml.Parser()
	case ".toml":
		parser = ktoml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	return k.Raw(), nil
}
