package config

import (
	"testing"
	"time"

	"github.com/ishitak12/pdfstruct/internal/structurer"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected queue size 100, got %d", cfg.MaxQueueSize)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
	if cfg.Heuristics != structurer.DefaultConfig() {
		t.Errorf("expected default heuristics, got %+v", cfg.Heuristics)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("JOB_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected fallback worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIKey: "secret", DBPath: "x.db"}, false},
		{"missing api key", Config{DBPath: "x.db"}, true},
		{"missing db path", Config{APIKey: "secret"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyHeuristics(t *testing.T) {
	base := structurer.DefaultConfig()
	profile := []byte("section_font_min: 18\nsub_section_max_words: 6\ncol_gap: 25\n")

	got, err := ApplyHeuristics(base, profile)
	if err != nil {
		t.Fatalf("ApplyHeuristics() error: %v", err)
	}
	if got.SectionFontMin != 18 {
		t.Errorf("expected section font min 18, got %v", got.SectionFontMin)
	}
	if got.SubSectionMaxWords != 6 {
		t.Errorf("expected 6 max words, got %d", got.SubSectionMaxWords)
	}
	if got.ColGap != 25 {
		t.Errorf("expected col gap 25, got %v", got.ColGap)
	}
	// Unnamed fields keep their defaults.
	if got.YTolerance != base.YTolerance {
		t.Errorf("expected y tolerance unchanged, got %v", got.YTolerance)
	}
}

func TestApplyHeuristics_BadYAML(t *testing.T) {
	_, err := ApplyHeuristics(structurer.DefaultConfig(), []byte("section_font_min: [oops"))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}
