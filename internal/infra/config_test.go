package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("GEMINI_API_KEY", "dummy")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiImageModel != "gemini-3-pro-image-preview" {
		t.Fatalf("GeminiImageModel = %q", cfg.GeminiImageModel)
	}
	if cfg.GenerationTimeout != 90*time.Second {
		t.Fatalf("GenerationTimeout = %v", cfg.GenerationTimeout)
	}
	if cfg.PlanMinShots != 3 {
		t.Fatalf("PlanMinShots = %d", cfg.PlanMinShots)
	}
	if cfg.ShootConcurrency != 3 {
		t.Fatalf("ShootConcurrency = %d", cfg.ShootConcurrency)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "dummy")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted empty DATABASE_URL")
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig accepted empty GEMINI_API_KEY")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("GEMINI_API_KEY", "dummy")
	t.Setenv("SHOOT_CONCURRENCY", "5")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ShootConcurrency != 5 {
		t.Fatalf("ShootConcurrency = %d, want 5", cfg.ShootConcurrency)
	}
	if cfg.HTTPWriteTimeout != 45*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v, want 45s", cfg.HTTPWriteTimeout)
	}
}
