// Package config loads docscan settings from a YAML file, .env files and
// DOCSCAN_* environment variables, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/pdf"
	"github.com/gogpu/docscan/raster"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOCSCAN_"

// Config holds all docscan settings.
type Config struct {
	MaxDimension  int       `yaml:"max_dimension"`
	JPEGQuality   int       `yaml:"jpeg_quality"`
	Background    string    `yaml:"background"`
	Interpolation string    `yaml:"interpolation"`
	Workers       int       `yaml:"workers"`
	OutputDir     string    `yaml:"output_dir"`
	LogLevel      string    `yaml:"log_level"`
	PDF           PDFConfig `yaml:"pdf"`
}

// PDFConfig holds PDF export settings.
type PDFConfig struct {
	PageSize string  `yaml:"page_size"`
	MarginMM float64 `yaml:"margin_mm"`
	Author   string  `yaml:"author"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxDimension:  docscan.DefaultMaxDimension,
		JPEGQuality:   raster.DefaultJPEGQuality,
		Background:    "#ffffff",
		Interpolation: "bilinear",
		Workers:       0,
		OutputDir:     ".",
		LogLevel:      "warn",
		PDF: PDFConfig{
			PageSize: "A4",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (if non-empty),
// the given .env files (".env" in the working directory when none are
// given and it exists) and finally the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	env, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return map[string]string{}, nil
		}
		files = []string{".env"}
	}
	env, err := godotenv.Read(files...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		return nil, fmt.Errorf("parse env file: %w", err)
	}
	return env, nil
}

// applyEnv overrides fields from DOCSCAN_* keys in env.
func (c *Config) applyEnv(env map[string]string) error {
	ints := map[string]*int{
		"MAX_DIMENSION": &c.MaxDimension,
		"JPEG_QUALITY":  &c.JPEGQuality,
		"WORKERS":       &c.Workers,
	}
	for key, dst := range ints {
		v, ok := env[EnvPrefix+key]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	strs := map[string]*string{
		"BACKGROUND":    &c.Background,
		"INTERPOLATION": &c.Interpolation,
		"OUTPUT_DIR":    &c.OutputDir,
		"LOG_LEVEL":     &c.LogLevel,
		"PDF_PAGE_SIZE": &c.PDF.PageSize,
		"PDF_AUTHOR":    &c.PDF.Author,
	}
	for key, dst := range strs {
		if v, ok := env[EnvPrefix+key]; ok && v != "" {
			*dst = v
		}
	}

	if v, ok := env[EnvPrefix+"PDF_MARGIN_MM"]; ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sPDF_MARGIN_MM: %w", EnvPrefix, err)
		}
		c.PDF.MarginMM = f
	}
	return nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if c.MaxDimension <= 0 {
		return fmt.Errorf("max_dimension must be positive, got %d", c.MaxDimension)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in [1,100], got %d", c.JPEGQuality)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := raster.ParseInterpolation(c.Interpolation); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := pdf.ParsePageSize(c.PDF.PageSize); err != nil {
		return err
	}
	if c.PDF.MarginMM < 0 {
		return fmt.Errorf("pdf.margin_mm must not be negative, got %g", c.PDF.MarginMM)
	}
	return nil
}

// BackgroundColor parses Background as an opaque hex color.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// RectifierOptions converts the settings into docscan options.
// The config must be valid.
func (c *Config) RectifierOptions() []docscan.Option {
	bg, _ := c.BackgroundColor()
	interp, _ := raster.ParseInterpolation(c.Interpolation)
	return []docscan.Option{
		docscan.WithMaxDimension(c.MaxDimension),
		docscan.WithBackground(bg),
		docscan.WithInterpolation(interp),
		docscan.WithWorkers(c.Workers),
	}
}

// ExporterOptions converts the PDF settings into exporter options.
func (c *Config) ExporterOptions() []pdf.Option {
	return []pdf.Option{
		pdf.WithPageSize(c.PDF.PageSize),
		pdf.WithMargin(c.PDF.MarginMM),
		pdf.WithJPEGQuality(c.JPEGQuality),
		pdf.WithAuthor(c.PDF.Author),
	}
}
