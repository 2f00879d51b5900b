package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ishitak12/pdfstruct/internal/structurer"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Document store
	DBPath string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Optional YAML profile overriding heading/table heuristics.
	HeuristicsFile string

	Heuristics structurer.Config
}

func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PDFSTRUCT_API_KEY"),

		DBPath: envOr("DB_PATH", "pdfstruct.db"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		HeuristicsFile: os.Getenv("HEURISTICS_FILE"),

		Heuristics: structurer.DefaultConfig(),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	if cfg.HeuristicsFile != "" {
		data, err := os.ReadFile(cfg.HeuristicsFile)
		if err != nil {
			return cfg, fmt.Errorf("read heuristics file: %w", err)
		}
		cfg.Heuristics, err = ApplyHeuristics(cfg.Heuristics, data)
		if err != nil {
			return cfg, fmt.Errorf("parse heuristics file %s: %w", cfg.HeuristicsFile, err)
		}
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PDFSTRUCT_API_KEY is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	return nil
}

// heuristicsProfile mirrors structurer.Config with optional fields so a
// profile can override only the thresholds it names.
type heuristicsProfile struct {
	SectionFontMin        *float64 `yaml:"section_font_min"`
	SectionBoldFontMin    *float64 `yaml:"section_bold_font_min"`
	SubSectionFontMin     *float64 `yaml:"sub_section_font_min"`
	SubSectionBoldFontMin *float64 `yaml:"sub_section_bold_font_min"`
	SubSectionMaxWords    *int     `yaml:"sub_section_max_words"`
	YTolerance            *float64 `yaml:"y_tolerance"`
	ColGap                *float64 `yaml:"col_gap"`
}

// ApplyHeuristics overlays a YAML profile onto base thresholds.
func ApplyHeuristics(base structurer.Config, data []byte) (structurer.Config, error) {
	var p heuristicsProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return base, err
	}
	if p.SectionFontMin != nil {
		base.SectionFontMin = *p.SectionFontMin
	}
	if p.SectionBoldFontMin != nil {
		base.SectionBoldFontMin = *p.SectionBoldFontMin
	}
	if p.SubSectionFontMin != nil {
		base.SubSectionFontMin = *p.SubSectionFontMin
	}
	if p.SubSectionBoldFontMin != nil {
		base.SubSectionBoldFontMin = *p.SubSectionBoldFontMin
	}
	if p.SubSectionMaxWords != nil {
		base.SubSectionMaxWords = *p.SubSectionMaxWords
	}
	if p.YTolerance != nil {
		base.YTolerance = *p.YTolerance
	}
	if p.ColGap != nil {
		base.ColGap = *p.ColGap
	}
	return base, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
