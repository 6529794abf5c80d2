package configs

import (
	"os"
	"testing"
)

var allVars = []string{
	"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS",
	"USER1_USERNAME", "USER1_PASSWORD", "USER2_USERNAME", "USER2_PASSWORD",
	"VAPID_EMAIL", "VAPID_PUBLIC_KEY", "VAPID_PRIVATE_KEY",
	"NOTIFY_TITLE", "NOTIFY_BODY", "NOTIFY_ICON", "NOTIFY_BADGE", "NOTIFY_URL",
	"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL",
	"DATABASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		os.Unsetenv(v)
	}
}

func setRequiredS3(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "chat-images")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "test-key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "test-secret")
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)
	setRequiredS3(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.User1Username == "" || cfg.User2Username == "" {
		t.Error("development defaults should provide both accounts")
	}
	if cfg.User1Username == cfg.User2Username {
		t.Error("the two account usernames must differ")
	}
	if cfg.NotifyTitle != "Sale Alert! on Myntra" {
		t.Errorf("NotifyTitle = %q, want original default", cfg.NotifyTitle)
	}
	if cfg.NotifyURL != "/chat" {
		t.Errorf("NotifyURL = %q, want /chat", cfg.NotifyURL)
	}
	if cfg.DatabaseDSN == "" {
		t.Error("development default DSN should be set")
	}
	if cfg.S3PublicBaseURL != "http://localhost:9000/chat-images" {
		t.Errorf("S3PublicBaseURL = %q, want endpoint/bucket fallback", cfg.S3PublicBaseURL)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	setRequiredS3(t)
	t.Setenv("PORT", "9090")
	t.Setenv("USER1_USERNAME", "daddy")
	t.Setenv("USER1_PASSWORD", "pw1")
	t.Setenv("USER2_USERNAME", "Dum")
	t.Setenv("USER2_PASSWORD", "pw2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.User1Username != "daddy" || cfg.User2Username != "Dum" {
		t.Errorf("accounts = %q/%q, want daddy/Dum", cfg.User1Username, cfg.User2Username)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.S3PublicBaseURL != "https://cdn.example" {
		t.Errorf("S3PublicBaseURL = %q, want trailing slash trimmed", cfg.S3PublicBaseURL)
	}
}

func TestLoadConfig_ProductionRequirements(t *testing.T) {
	clearEnv(t)
	setRequiredS3(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without account credentials")
	}

	t.Setenv("USER1_USERNAME", "daddy")
	t.Setenv("USER1_PASSWORD", "pw1")
	t.Setenv("USER2_USERNAME", "Dum")
	t.Setenv("USER2_PASSWORD", "pw2")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without VAPID credentials")
	}

	t.Setenv("VAPID_EMAIL", "mailto:ops@example.com")
	t.Setenv("VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://chat:chat@db:5432/chat")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DatabaseDSN != "postgres://chat:chat@db:5432/chat" {
		t.Errorf("DatabaseDSN = %q", cfg.DatabaseDSN)
	}
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	clearEnv(t)
	setRequiredS3(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should reject a non-numeric port")
	}

	t.Setenv("PORT", "80")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should reject privileged ports")
	}
}

func TestLoadConfig_DuplicateUsernames(t *testing.T) {
	clearEnv(t)
	setRequiredS3(t)
	t.Setenv("USER1_USERNAME", "daddy")
	t.Setenv("USER1_PASSWORD", "pw1")
	t.Setenv("USER2_USERNAME", "daddy")
	t.Setenv("USER2_PASSWORD", "pw2")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should reject identical usernames")
	}
}
