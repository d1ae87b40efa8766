package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Database: DatabaseConfig{
			Path: "/tmp/passage/passage.db",
		},
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "prod" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"zero rps", func(c *Config) { c.Server.RateLimitRPS = 0 }},
		{"negative burst", func(c *Config) { c.Server.RateLimitBurst = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	const envKey = "PASSAGE_TEST_CONFIG_VALUE"

	// Default when nothing is set.
	if got := getConfigValue("", envKey, "fallback"); got != "fallback" {
		t.Errorf("default: got %q, want %q", got, "fallback")
	}

	// Env var beats default.
	t.Setenv(envKey, "from-env")
	if got := getConfigValue("", envKey, "fallback"); got != "from-env" {
		t.Errorf("env: got %q, want %q", got, "from-env")
	}

	// Flag beats env var.
	if got := getConfigValue("from-flag", envKey, "fallback"); got != "from-flag" {
		t.Errorf("flag: got %q, want %q", got, "from-flag")
	}
}

func TestGetNumericConfigValues(t *testing.T) {
	if got := getIntConfigValue("12", "PASSAGE_TEST_INT", 5); got != 12 {
		t.Errorf("int from flag: got %d, want 12", got)
	}
	if got := getIntConfigValue("nonsense", "PASSAGE_TEST_INT", 5); got != 5 {
		t.Errorf("int garbage falls back: got %d, want 5", got)
	}
	if got := getFloatConfigValue("2.5", "PASSAGE_TEST_FLOAT", 1); got != 2.5 {
		t.Errorf("float from flag: got %v, want 2.5", got)
	}
	if got := getFloatConfigValue("", "PASSAGE_TEST_FLOAT", 1); got != 1 {
		t.Errorf("float default: got %v, want 1", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	content := "# comment line\n\nPASSAGE_TEST_ENVFILE_A=hello\nPASSAGE_TEST_ENVFILE_B=\"quoted\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("PASSAGE_TEST_ENVFILE_A", "")
	os.Unsetenv("PASSAGE_TEST_ENVFILE_A")
	t.Setenv("PASSAGE_TEST_ENVFILE_B", "")
	os.Unsetenv("PASSAGE_TEST_ENVFILE_B")

	if err := loadEnvFile(envPath); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}

	if got := os.Getenv("PASSAGE_TEST_ENVFILE_A"); got != "hello" {
		t.Errorf("A: got %q, want %q", got, "hello")
	}
	if got := os.Getenv("PASSAGE_TEST_ENVFILE_B"); got != "quoted" {
		t.Errorf("B: got %q, want %q", got, "quoted")
	}
}

func TestLoadEnvFile_BadFormat(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	if err := os.WriteFile(envPath, []byte("JUSTAKEY\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := loadEnvFile(envPath); err == nil {
		t.Error("expected error for malformed line, got nil")
	}
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	if err != nil {
		t.Fatalf("expandPath default: %v", err)
	}
	if got != "/default/path" {
		t.Errorf("default: got %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err = expandPath("~/passage/db", "")
	if err != nil {
		t.Fatalf("expandPath tilde: %v", err)
	}
	if got != filepath.Join(home, "passage", "db") {
		t.Errorf("tilde: got %q", got)
	}
}
