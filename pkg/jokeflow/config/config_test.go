package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilMap(t *testing.T) {
	cfg := New(nil)
	assert.NotNil(t, cfg.Raw())
	assert.False(t, cfg.Has("anything"))
}

func TestString(t *testing.T) {
	cfg := New(map[string]any{"category": "chuck", "count": 3})

	assert.Equal(t, "chuck", cfg.String("category", "neutral"))
	assert.Equal(t, "neutral", cfg.String("missing", "neutral"))
	assert.Equal(t, "neutral", cfg.String("count", "neutral")) // wrong type
}

func TestStrings(t *testing.T) {
	cfg := New(map[string]any{
		"single": "one line",
		"list":   []any{"a", "b"},
		"typed":  []string{"x", "y"},
		"mixed":  []any{"a", 1},
		"num":    3,
	})

	assert.Equal(t, []string{"one line"}, cfg.Strings("single"))
	assert.Equal(t, []string{"a", "b"}, cfg.Strings("list"))
	assert.Equal(t, []string{"x", "y"}, cfg.Strings("typed"))
	assert.Nil(t, cfg.Strings("mixed"))
	assert.Nil(t, cfg.Strings("num"))
	assert.Nil(t, cfg.Strings("missing"))
}

func TestInt(t *testing.T) {
	cfg := New(map[string]any{
		"int":      5,
		"int64":    int64(6),
		"whole":    float64(7),
		"fraction": 7.5,
		"str":      "8",
	})

	assert.Equal(t, 5, cfg.Int("int", 0))
	assert.Equal(t, 6, cfg.Int("int64", 0))
	assert.Equal(t, 7, cfg.Int("whole", 0))
	assert.Equal(t, 0, cfg.Int("fraction", 0)) // precision loss rejected
	assert.Equal(t, 0, cfg.Int("str", 0))
	assert.Equal(t, 9, cfg.Int("missing", 9))
}

func TestFloat(t *testing.T) {
	cfg := New(map[string]any{"temp": 0.95, "int": 2})

	assert.Equal(t, 0.95, cfg.Float("temp", 0.7))
	assert.Equal(t, 2.0, cfg.Float("int", 0.7))
	assert.Equal(t, 0.7, cfg.Float("missing", 0.7))
}

func TestBool(t *testing.T) {
	cfg := New(map[string]any{"styled": true, "str": "true"})

	assert.True(t, cfg.Bool("styled", false))
	assert.False(t, cfg.Bool("str", false))
	assert.True(t, cfg.Bool("missing", true))
}

func TestDuration(t *testing.T) {
	cfg := New(map[string]any{
		"str":     "30s",
		"seconds": 5,
		"float":   1.5,
		"bad":     "not a duration",
	})

	assert.Equal(t, 30*time.Second, cfg.Duration("str", time.Second))
	assert.Equal(t, 5*time.Second, cfg.Duration("seconds", time.Second))
	assert.Equal(t, 1500*time.Millisecond, cfg.Duration("float", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("bad", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("missing", time.Second))
}

func TestStringSlice(t *testing.T) {
	cfg := New(map[string]any{
		"cats":  []any{"neutral", "chuck", "all"},
		"mixed": []any{"a", 1},
		"bare":  "single",
	})

	assert.Equal(t, []string{"neutral", "chuck", "all"}, cfg.StringSlice("cats", nil))
	assert.Equal(t, []string{"d"}, cfg.StringSlice("mixed", []string{"d"}))
	// Bare strings are not promoted, unlike Strings.
	assert.Equal(t, []string{"d"}, cfg.StringSlice("bare", []string{"d"}))
}

func TestSub(t *testing.T) {
	cfg := New(map[string]any{
		"joke_writer_cfg": map[string]any{
			"role": "a witty comedian",
		},
		"flat": "value",
	})

	writer := cfg.Sub("joke_writer_cfg")
	assert.Equal(t, "a witty comedian", writer.String("role", ""))

	assert.False(t, cfg.Sub("missing").Has("role"))
	assert.False(t, cfg.Sub("flat").Has("role"))
}

func TestHasAndAny(t *testing.T) {
	cfg := New(map[string]any{"k": 1})

	assert.True(t, cfg.Has("k"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, 1, cfg.Any("k", nil))
	assert.Equal(t, "fallback", cfg.Any("missing", "fallback"))
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
category: chuck
max_attempts: 5
categories:
  - neutral
  - chuck
joke_writer_cfg:
  role: Comedian
  instruction:
    - Write one short joke.
    - Keep it clean.
`)
	cfg, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "chuck", cfg.String("category", ""))
	assert.Equal(t, 5, cfg.Int("max_attempts", 0))
	assert.Equal(t, []string{"neutral", "chuck"}, cfg.StringSlice("categories", nil))
	writer := cfg.Sub("joke_writer_cfg")
	assert.Equal(t, "Comedian", writer.String("role", ""))
	assert.Len(t, writer.Strings("instruction"), 2)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"category": "all", "limit": 100}`))
	require.NoError(t, err)

	assert.Equal(t, "all", cfg.String("category", ""))
	assert.Equal(t, 100, cfg.Int("limit", 0))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("language: en"), 0o644))

	cfg, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.String("language", ""))

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = FromFile(txtPath)
	assert.ErrorContains(t, err, "unsupported config file extension")
}
