package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.WindowDays != 7 {
		t.Errorf("WindowDays: got %d, want 7", cfg.WindowDays)
	}
	if cfg.CacheTTLMinutes != 60 {
		t.Errorf("CacheTTLMinutes: got %d, want 60", cfg.CacheTTLMinutes)
	}
	if cfg.DefaultTopN != 10 {
		t.Errorf("DefaultTopN: got %d, want 10", cfg.DefaultTopN)
	}
	if cfg.NeoTable != "asteroids" {
		t.Errorf("NeoTable: got %q, want asteroids", cfg.NeoTable)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WINDOW_DAYS", "3")
	t.Setenv("DATA_SOURCE", "demo")
	t.Setenv("NEO_TABLE", "neo_approaches")
	t.Setenv("DEFAULT_MAX_DISTANCE_MKM", "25.5")

	cfg := Load()

	if cfg.WindowDays != 3 {
		t.Errorf("WindowDays: got %d, want 3", cfg.WindowDays)
	}
	if cfg.DataSource != "demo" {
		t.Errorf("DataSource: got %q, want demo", cfg.DataSource)
	}
	if cfg.NeoTable != "neo_approaches" {
		t.Errorf("NeoTable: got %q, want neo_approaches", cfg.NeoTable)
	}
	if cfg.DefaultMaxDistanceMkm != 25.5 {
		t.Errorf("DefaultMaxDistanceMkm: got %v, want 25.5", cfg.DefaultMaxDistanceMkm)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL_MINUTES", "not-a-number")

	cfg := Load()
	if cfg.CacheTTLMinutes != 60 {
		t.Errorf("CacheTTLMinutes: got %d, want fallback 60", cfg.CacheTTLMinutes)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "neo",
		PostgresSSLMode:  "disable",
	}
	want := "host=db port=5433 user=u password=p dbname=neo sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
