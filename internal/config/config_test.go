package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
# Test configuration
database:
  host: localhost
  port: 5432
  user: restaurant
  password: secret
  database: tableside

redis:
  host: localhost
  port: 6379

rabbitmq:
  enabled: true
  host: localhost
  port: 5672
  user: guest
  password: guest

server:
  port: 8080
  frontend_url: https://menu.example.com
  uploads_dir: uploads

auth:
  session_ttl_hours: 12
`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.Database != "tableside" {
		t.Errorf("Database.Database = %q, want %q", cfg.Database.Database, "tableside")
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
	if !cfg.RabbitMQ.Enabled {
		t.Error("RabbitMQ.Enabled = false, want true")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.FrontendURL != "https://menu.example.com" {
		t.Errorf("Server.FrontendURL = %q", cfg.Server.FrontendURL)
	}
	if cfg.Auth.SessionTTLHours != 12 {
		t.Errorf("Auth.SessionTTLHours = %d, want 12", cfg.Auth.SessionTTLHours)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `
database:
  host: db
  port: 5432
  user: app
  password: app
  database: app
`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("default Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Auth.SessionTTLHours != 24 {
		t.Errorf("default Auth.SessionTTLHours = %d, want 24", cfg.Auth.SessionTTLHours)
	}
	if cfg.RabbitMQ.Enabled {
		t.Error("default RabbitMQ.Enabled = true, want false")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid database port",
			content: "database:\n  port: not-a-number\n",
		},
		{
			name:    "unknown section",
			content: "kafka:\n  host: localhost\n",
		},
		{
			name:    "unknown key",
			content: "redis:\n  cluster: yes\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestURLHelpers(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "orders"},
		Redis:    RedisConfig{Host: "cache", Port: 6379},
		RabbitMQ: RabbitMQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest"},
	}

	if got, want := cfg.DatabaseURL(), "postgres://u:p@db:5432/orders?sslmode=disable"; got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}
	if got, want := cfg.RedisAddr(), "cache:6379"; got != want {
		t.Errorf("RedisAddr() = %q, want %q", got, want)
	}
	if got, want := cfg.RabbitMQURL(), "amqp://guest:guest@mq:5672/"; got != want {
		t.Errorf("RabbitMQURL() = %q, want %q", got, want)
	}
}
