package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig("")
	if cfg.Database.Type != "postgres" {
		t.Fatalf("expected default database.type postgres, got %q", cfg.Database.Type)
	}
	if cfg.Web.Port == 0 {
		t.Fatalf("expected default web.port to be set")
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kioskd.yml")
	data := []byte("web:\n  host: 127.0.0.1\n  port: 9090\ndatabase:\n  name: kiosk_test\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.Web.Port != 9090 {
		t.Fatalf("expected web.port 9090, got %d", cfg.Web.Port)
	}
	if cfg.Database.Name != "kiosk_test" {
		t.Fatalf("expected database.name kiosk_test, got %q", cfg.Database.Name)
	}
	if got := cfg.GetListenAddr(); got != "127.0.0.1:9090" {
		t.Fatalf("unexpected listen addr %q", got)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("KIOSKD_WEB_PORT", "8088")
	t.Setenv("KIOSKD_DB_NAME", "kiosk_env")

	cfg := LoadConfig("")
	if cfg.Web.Port != 8088 {
		t.Fatalf("expected env override web.port 8088, got %d", cfg.Web.Port)
	}
	if cfg.Database.Name != "kiosk_env" {
		t.Fatalf("expected env override database.name kiosk_env, got %q", cfg.Database.Name)
	}
}
