package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.SourceURL = "http://store.test/games"
	cfg.TargetURL = "http://list.test/games"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty source url",
			mutate:  func(cfg *Config) { cfg.SourceURL = "" },
			wantErr: "source URL",
		},
		{
			name:    "source url without host",
			mutate:  func(cfg *Config) { cfg.SourceURL = "http://" },
			wantErr: "source URL",
		},
		{
			name:    "empty target url",
			mutate:  func(cfg *Config) { cfg.TargetURL = "" },
			wantErr: "target URL",
		},
		{
			name:    "zero page size",
			mutate:  func(cfg *Config) { cfg.PageSize = 0 },
			wantErr: "page size",
		},
		{
			name:    "zero max pages",
			mutate:  func(cfg *Config) { cfg.MaxPages = 0 },
			wantErr: "max pages",
		},
		{
			name:    "negative delay",
			mutate:  func(cfg *Config) { cfg.PageDelay = -time.Second },
			wantErr: "page delay",
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "bad output format",
			mutate:  func(cfg *Config) { cfg.OutputFormat = "xml" },
			wantErr: "output format",
		},
		{
			name:    "empty user agent",
			mutate:  func(cfg *Config) { cfg.UserAgent = "" },
			wantErr: "user agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestEnvString(t *testing.T) {
	t.Setenv("CATSYNC_TEST_STR", "value")
	if v, ok := EnvString("CATSYNC_TEST_STR"); !ok || v != "value" {
		t.Fatalf("EnvString = (%q, %v)", v, ok)
	}
	if _, ok := EnvString("CATSYNC_TEST_MISSING"); ok {
		t.Fatalf("unset variable reported as set")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("CATSYNC_TEST_INT", "42")
	n, ok, err := EnvInt("CATSYNC_TEST_INT")
	if err != nil || !ok || n != 42 {
		t.Fatalf("EnvInt = (%d, %v, %v)", n, ok, err)
	}

	t.Setenv("CATSYNC_TEST_INT", "nope")
	if _, _, err := EnvInt("CATSYNC_TEST_INT"); err == nil {
		t.Fatalf("expected parse error")
	}

	if _, ok, err := EnvInt("CATSYNC_TEST_INT_MISSING"); ok || err != nil {
		t.Fatalf("unset variable should be (false, nil), got (%v, %v)", ok, err)
	}
}
