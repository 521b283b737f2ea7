// Package config loads umark settings from a .umark.yml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/jcorbin/umark/inline"
	"github.com/jcorbin/umark/symbol"
)

// FileName is the name of the configuration file searched by Find.
const FileName = ".umark.yml"

// ErrInvalidUnit is returned for a column unit other than utf8, utf16 or
// grapheme.
var ErrInvalidUnit = errors.New("invalid column unit")

// Config holds the settings shared by all umark commands.
type Config struct {
	Unit            string `yaml:"unit"`
	Color           bool   `yaml:"color"`
	KeepWhitespaces bool   `yaml:"keep_whitespaces"`
	KeepNewline     bool   `yaml:"keep_newline"`
	History         string `yaml:"history"`
	HTML            HTML   `yaml:"html"`
}

// HTML holds renderer settings.
type HTML struct {
	Fragment bool `yaml:"fragment"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{Unit: symbol.Grapheme.String()}
}

// ColumnUnit returns the parsed column unit.
func (c Config) ColumnUnit() (symbol.Unit, error) {
	u, err := symbol.ParseUnit(c.Unit)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidUnit, c.Unit)
	}
	return u, nil
}

// InlineContext returns the inline parser flags.
func (c Config) InlineContext() inline.Context {
	return inline.Context{
		KeepWhitespaces: c.KeepWhitespaces,
		KeepNewline:     c.KeepNewline,
	}
}

// Parse parses YAML configuration over the defaults; unknown keys are errors.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, err
	}
	if _, err := c.ColumnUnit(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %v: %w", path, err)
	}
	return c, nil
}

// Find looks for FileName in the working directory and every parent
// directory, returning its absolute path, or "" if there is none.
func Find() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(wd, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}

// FindAndLoad loads the file found by Find, or returns the defaults.
func FindAndLoad() (Config, error) {
	path, err := Find()
	if err != nil || path == "" {
		return Default(), err
	}
	return Load(path)
}
