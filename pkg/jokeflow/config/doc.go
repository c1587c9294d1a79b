/*
Package config provides type-safe configuration extraction from
map[string]any, loaded from YAML or JSON files.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "category":     "neutral",
	    "max_attempts": 5,
	    "styled":       true,
	})

	category := cfg.String("category", "neutral") // "neutral"
	attempts := cfg.Int("max_attempts", 3)        // 5
	styled := cfg.Bool("styled", false)           // true
	missing := cfg.String("missing", "default")   // "default"

# Sections

Files structured as named sections (prompt_config.yaml declares one map
per prompt) are navigated with Sub:

	writer := cfg.Sub("joke_writer_cfg")
	role := writer.String("role", "")

Strings handles fields YAML authors write as either a single line or a
list of lines, returning a slice in both cases.

# Type Coercion

Duration accepts "30s"-style strings, numbers interpreted as seconds,
or a time.Duration. Numeric accessors convert between int and float64
when no precision is lost. All accessors return the default when the
key is missing or the value cannot be converted.

# File Loading

	cfg, err := config.FromFile("config.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
