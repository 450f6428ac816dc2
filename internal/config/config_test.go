package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DBPath != Default().DBPath || c.Rules.PointsToWin != 10 {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natak.yaml")
	raw := []byte("db_path: games.db\nlog_level: debug\nrules:\n  points_to_win: 8\n  discard_threshold: 9\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DBPath != "games.db" || c.LogLevel != "debug" {
		t.Errorf("settings = %q, %q", c.DBPath, c.LogLevel)
	}
	if c.Rules.PointsToWin != 8 || c.Rules.DiscardThreshold != 9 {
		t.Errorf("rules = %+v", c.Rules)
	}
	if c.Rules.MaxPlayers != 4 || len(c.Rules.ActivationNumbers) != 18 {
		t.Errorf("unset rules lost their defaults: %+v", c.Rules)
	}
	if !c.CompressSnapshots {
		t.Error("compression default lost")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natak.yaml")
	if err := os.WriteFile(path, []byte("rules: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NATAK_DB_PATH", "/tmp/other.db")
	t.Setenv("NATAK_LOG_LEVEL", "warn")
	t.Setenv("NATAK_LOG_PRETTY", "true")

	c := Default()
	c.ApplyEnv()
	if c.DBPath != "/tmp/other.db" || c.LogLevel != "warn" || !c.LogPretty {
		t.Errorf("config = %+v", c)
	}
}
