package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "SERVER_PORT", "RATE_LIMIT_RPS", "CACHE_MAX_ITEMS",
		"ANIMATION_DURATION_MS", "FORCE_REPULSION_STRENGTH", "FORCE_USE_BARNES_HUT",
	} {
		os.Unsetenv(key)
	}
	ResetForTest()

	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level 'info', got %q", cfg.LogLevel)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.AnimationDurationMs != 500 {
		t.Fatalf("expected default animation duration 500ms, got %d", cfg.AnimationDurationMs)
	}
	if !cfg.ForceUseBarnesHut {
		t.Fatalf("expected Barnes-Hut enabled by default")
	}
	if cfg.ForceCollisionStrength != 0.7 {
		t.Fatalf("expected default collision strength 0.7, got %f", cfg.ForceCollisionStrength)
	}
}

func TestLoadIsCachedUntilReset(t *testing.T) {
	ResetForTest()
	os.Setenv("SERVER_PORT", "9090")
	first := Load()
	if first.ServerPort != "9090" {
		t.Fatalf("expected port 9090, got %q", first.ServerPort)
	}

	os.Setenv("SERVER_PORT", "7070")
	second := Load()
	if second.ServerPort != "9090" {
		t.Fatalf("expected cached config to ignore env change until ResetForTest, got %q", second.ServerPort)
	}

	ResetForTest()
	os.Unsetenv("SERVER_PORT")
	third := Load()
	if third.ServerPort != "8080" {
		t.Fatalf("expected default port after reset, got %q", third.ServerPort)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	ResetForTest()
	os.Setenv("FORCE_USE_BARNES_HUT", "false")
	os.Setenv("FORCE_BARNES_HUT_THETA", "0.9")
	defer func() {
		os.Unsetenv("FORCE_USE_BARNES_HUT")
		os.Unsetenv("FORCE_BARNES_HUT_THETA")
		ResetForTest()
	}()

	cfg := Load()
	if cfg.ForceUseBarnesHut {
		t.Fatalf("expected Barnes-Hut disabled via env override")
	}
	if cfg.ForceBarnesHutTheta != 0.9 {
		t.Fatalf("expected theta override 0.9, got %f", cfg.ForceBarnesHutTheta)
	}
}
