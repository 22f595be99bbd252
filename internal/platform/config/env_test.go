package config

import "testing"

type testConfig struct {
	Addr string `env:"NOCTURNE_TEST_ADDR" envDefault:"localhost:9090"`
	Port int    `env:"NOCTURNE_TEST_PORT" envDefault:"9090"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Addr != "localhost:9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "localhost:9090")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want %d", cfg.Port, 9090)
	}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("NOCTURNE_TEST_ADDR", "0.0.0.0:7000")
	t.Setenv("NOCTURNE_TEST_PORT", "7000")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Addr != "0.0.0.0:7000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "0.0.0.0:7000")
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want %d", cfg.Port, 7000)
	}
}
