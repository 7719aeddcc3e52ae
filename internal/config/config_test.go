package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("SHELFD_STORE_DRIVER")
	_ = os.Unsetenv("SHELFD_HTTP_PORT")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.StoreDriver != "memory" || cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("SHELFD_HTTP_PORT", "9090")
	defer func() { _ = os.Unsetenv("SHELFD_HTTP_PORT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("http port env override failed, got %d", cfg.HTTPPort)
	}
}

func TestResolveDefaults_SQLitePath(t *testing.T) {
	cfg := &Config{StoreDriver: "sqlite", DataDir: "/var/lib/shelfd", HealthIntervalSeconds: 15}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve defaults: %v", err)
	}
	if cfg.SQLitePath != "/var/lib/shelfd/shelfd.db" {
		t.Fatalf("unexpected derived sqlite path: %s", cfg.SQLitePath)
	}
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	cfg := &Config{StoreDriver: "postgres", HealthIntervalSeconds: 15}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for postgres without DSN")
	}
}

func TestResolveDefaults_UnknownDriver(t *testing.T) {
	cfg := &Config{StoreDriver: "mongodb", HealthIntervalSeconds: 15}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
