package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetenv clears key for the test while keeping t.Setenv's restore.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestNewConfig_Defaults(t *testing.T) {
	unsetenv(t, "GIGFLOW_API_URL")
	unsetenv(t, "GIGFLOW_DIR")
	unsetenv(t, "GIGFLOW_HTTP_TIMEOUT")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.APIURL != "http://localhost:5000" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if filepath.Base(cfg.Dir) != ".gigflow" {
		t.Fatalf("Dir = %q; want a ~/.gigflow default", cfg.Dir)
	}
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("GIGFLOW_API_URL", "https://gigs.example.com")
	t.Setenv("GIGFLOW_DIR", "/tmp/gf")
	t.Setenv("GIGFLOW_HTTP_TIMEOUT", "3s")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.APIURL != "https://gigs.example.com" || cfg.Dir != "/tmp/gf" || cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
}
