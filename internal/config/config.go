package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/designer.yaml"

// EnvPrefix prefixes every environment override (KEYCHAIN_LOG_MODE, ...).
const EnvPrefix = "KEYCHAIN_"

// Prefs holds designer preferences. Persisted across runs; designs themselves are presets.
type Prefs struct {
	LogMode         string   `yaml:"log_mode"`
	LogFile         string   `yaml:"log_file,omitempty"`
	CatalogPath     string   `yaml:"catalog_path,omitempty"`
	DefaultSize     string   `yaml:"default_size,omitempty"`
	DefaultMaterial string   `yaml:"default_material,omitempty"`
	FaceLayout      string   `yaml:"face_layout"`
	MaxTextureSize  int      `yaml:"max_texture_size"`
	FontDirs        []string `yaml:"font_dirs,omitempty"`
	FetchFonts      bool     `yaml:"fetch_fonts"`
	WindowWidth     int      `yaml:"window_width"`
	WindowHeight    int      `yaml:"window_height"`
	ShowFPS         bool     `yaml:"show_fps"`
	AutoRotate      bool     `yaml:"auto_rotate"`
	StylesheetPath  string   `yaml:"stylesheet_path,omitempty"`
}

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{
		LogMode:        "development",
		FaceLayout:     "box",
		MaxTextureSize: 1024,
		FetchFonts:     false,
		WindowWidth:    1280,
		WindowHeight:   800,
		ShowFPS:        false,
		AutoRotate:     true,
	}
}

// LoadEnv loads KEY=VALUE pairs from the given .env files into the process environment.
// Missing files are ignored; variables already set win.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: %s: %w", p, err)
		}
	}
	return nil
}

// Load reads preferences from path (DefaultPath when empty) and applies environment overrides.
// A missing file yields Default(); a malformed file is an error.
func Load(path string) (Prefs, error) {
	if path == "" {
		path = DefaultPath
	}
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("config: %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Default(), fmt.Errorf("config: %w", err)
	}
	applyEnv(&p, os.LookupEnv)
	return p, nil
}

// Save writes preferences to path (DefaultPath when empty), creating the directory if needed.
func Save(path string, p Prefs) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from KEYCHAIN_* variables. Unparseable numbers and booleans are ignored.
func applyEnv(p *Prefs, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	str("LOG_MODE", &p.LogMode)
	str("LOG_FILE", &p.LogFile)
	str("CATALOG", &p.CatalogPath)
	str("DEFAULT_SIZE", &p.DefaultSize)
	str("DEFAULT_MATERIAL", &p.DefaultMaterial)
	str("FACE_LAYOUT", &p.FaceLayout)
	str("STYLESHEET", &p.StylesheetPath)
	num("MAX_TEXTURE_SIZE", &p.MaxTextureSize)
	flag("FETCH_FONTS", &p.FetchFonts)
	flag("SHOW_FPS", &p.ShowFPS)
	flag("AUTO_ROTATE", &p.AutoRotate)
	if v, ok := lookup(EnvPrefix + "FONT_DIRS"); ok && strings.TrimSpace(v) != "" {
		p.FontDirs = filepath.SplitList(v)
	}
}
