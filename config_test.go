package flash

import (
	"errors"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.Environment != "wifi" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "wifi")
	}
	if cfg.DataDir != "FluidNC/data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "FluidNC/data")
	}
	if cfg.Port != "" || cfg.SkipErase || cfg.SkipFilesystem {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
}

func TestConfigOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
		check   func(Config) bool
	}{
		{"environment", WithEnvironment("wifi_s3"), false, func(c Config) bool { return c.Environment == "wifi_s3" }},
		{"environment trimmed", WithEnvironment("  noradio "), false, func(c Config) bool { return c.Environment == "noradio" }},
		{"empty environment", WithEnvironment(""), true, nil},
		{"blank environment", WithEnvironment("   "), true, nil},
		{"port", WithPort("COM7"), false, func(c Config) bool { return c.Port == "COM7" }},
		{"skip erase", WithSkipErase(true), false, func(c Config) bool { return c.SkipErase }},
		{"skip filesystem", WithSkipFilesystem(true), false, func(c Config) bool { return c.SkipFilesystem }},
		{"data dir", WithDataDir("data"), false, func(c Config) bool { return c.DataDir == "data" }},
		{"empty data dir", WithDataDir(""), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.opt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if !tt.check(cfg) {
				t.Errorf("option not applied: %+v", cfg)
			}
		})
	}
}
