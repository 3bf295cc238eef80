package config

import (
	"os"
	"testing"
	"time"
)

// Load reads the real environment, so tests set the required secret and
// clean up after themselves.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("Setenv(%s) error = %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	setEnv(t, "RHYTHM_AUTH_JWTSECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, defaultReadTimeout)
	}

	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Database.EnableWAL != defaultDatabaseWAL {
		t.Errorf("Database.EnableWAL = %v, want %v", cfg.Database.EnableWAL, defaultDatabaseWAL)
	}

	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}

	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("Auth.JWTSecret = %s, want test-secret", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.Issuer != defaultAuthIssuer {
		t.Errorf("Auth.Issuer = %s, want %s", cfg.Auth.Issuer, defaultAuthIssuer)
	}

	if cfg.Player.BaseURL != defaultPlayerBaseURL {
		t.Errorf("Player.BaseURL = %s, want %s", cfg.Player.BaseURL, defaultPlayerBaseURL)
	}
	if cfg.Player.LikeRetries != defaultLikeRetries {
		t.Errorf("Player.LikeRetries = %d, want %d", cfg.Player.LikeRetries, defaultLikeRetries)
	}
	if cfg.Player.LikeRetryDelay != defaultLikeRetryDelay {
		t.Errorf("Player.LikeRetryDelay = %v, want %v", cfg.Player.LikeRetryDelay, defaultLikeRetryDelay)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	setEnv(t, "RHYTHM_AUTH_JWTSECRET", "test-secret")
	setEnv(t, "RHYTHM_SERVER_PORT", "9090")
	setEnv(t, "RHYTHM_LOGGING_LEVEL", "debug")
	setEnv(t, "RHYTHM_PLAYER_LIKERETRIES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Player.LikeRetries != 5 {
		t.Errorf("Player.LikeRetries = %d, want 5", cfg.Player.LikeRetries)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:         8080,
				Host:         "0.0.0.0",
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			},
			Database: DatabaseConfig{Path: "./data/test.db"},
			Logging:  LoggingConfig{Level: "info"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Player: PlayerConfig{
				BaseURL:        "http://localhost:8080/api",
				RequestTimeout: 10 * time.Second,
				LikeRetries:    2,
				LikeRetryDelay: time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"zero player timeout", func(c *Config) { c.Player.RequestTimeout = 0 }, true},
		{"negative like retries", func(c *Config) { c.Player.LikeRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
