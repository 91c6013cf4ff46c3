package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"API_PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
	"DEFINITION_MAX_TOKENS", "DEFINITION_TIMEOUT", "POPUP_DISMISS",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
	"QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE", "HUB_URL",
}

// isolateEnv clears every variable Load reads and restores them afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	t.Cleanup(func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "data", "pagemark.db"))
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.LLMModelName == "gpt-4o" &&
					cfg.LLMBaseURL == "https://api.openai.com/v1" &&
					cfg.EmbeddingBaseURL == cfg.LLMBaseURL &&
					cfg.DefinitionMaxTokens == 100 &&
					cfg.PopupDismiss == 10*time.Second &&
					!cfg.SemanticSearchEnabled()
			},
		},
		{
			name: "semantic search enabled",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("QDRANT_URL", "http://localhost:6333")
				setEnv("QDRANT_VECTOR_SIZE", "1536")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.SemanticSearchEnabled() &&
					cfg.QdrantVectorSize == 1536 &&
					cfg.QdrantCollection == "highlights"
			},
		},
		{
			name: "qdrant without vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("QDRANT_URL", "http://localhost:6333")
			},
			wantErr: true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("QDRANT_URL", "http://localhost:6333")
				setEnv("QDRANT_VECTOR_SIZE", "abc")
			},
			wantErr: true,
		},
		{
			name: "zero vector size",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("QDRANT_URL", "http://localhost:6333")
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "debug level and json format",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug && cfg.LogFormat == "json"
			},
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "custom popup dismiss",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("POPUP_DISMISS", "3s")
				setEnv("DEFINITION_TIMEOUT", "5s")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.PopupDismiss == 3*time.Second && cfg.DefinitionTimeout == 5*time.Second
			},
		},
		{
			name: "invalid popup dismiss",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("POPUP_DISMISS", "soon")
			},
			wantErr: true,
		},
		{
			name: "non-positive max tokens",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "pagemark.db"))
				setEnv("DEFINITION_MAX_TOKENS", "0")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	setEnv("DB_PATH", filepath.Join(dataDir, "pagemark.db"))

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("data path should be a directory")
	}
}

func TestGetEnv(t *testing.T) {
	const key = "PAGEMARK_TEST_GET_ENV"
	unsetEnv(key)
	defer unsetEnv(key)

	if got := getEnv(key, "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %v, want fallback", got)
	}

	setEnv(key, "value")
	if got := getEnv(key, "fallback"); got != "value" {
		t.Errorf("getEnv() = %v, want value", got)
	}
}
