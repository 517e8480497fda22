package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDerivesAbandonGrace(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `server:
  port: "8080"
  mode: test
test:
  minutes_per_question: 2
  abandon_grace_hours: 3
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Test.MinutesPerQuestion != 2 {
		t.Errorf("MinutesPerQuestion = %d, want 2", cfg.Test.MinutesPerQuestion)
	}
	if cfg.Test.AbandonGraceHours != 3 {
		t.Errorf("AbandonGraceHours = %d, want 3", cfg.Test.AbandonGraceHours)
	}
	if cfg.Test.AbandonGrace != 3*time.Hour {
		t.Errorf("AbandonGrace = %v, want 3h", cfg.Test.AbandonGrace)
	}
}

func TestLoadConfigTestDefaults(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `server:
  port: "8080"
  mode: test
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Test.MinutesPerQuestion != 1 {
		t.Errorf("MinutesPerQuestion = %d, want default 1", cfg.Test.MinutesPerQuestion)
	}
	if cfg.Test.AbandonGrace != time.Hour {
		t.Errorf("AbandonGrace = %v, want default 1h", cfg.Test.AbandonGrace)
	}
}
