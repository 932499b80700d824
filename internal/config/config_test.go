package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != "" || len(cfg.Providers) != 0 {
		t.Errorf("Load() = %+v, want zero config", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	timeout := 30

	var in FileConfig
	in.Provider = "deepseek"
	in.TimeoutSeconds = &timeout
	in.SetProvider("deepseek", ProviderConfig{APIKey: "sk-file", Model: "deepseek-reasoner"})

	if err := Save(in, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := out.ProviderSettings("deepseek").Model; got != "deepseek-reasoner" {
		t.Errorf("model = %q, want deepseek-reasoner", got)
	}
	if out.TimeoutSeconds == nil || *out.TimeoutSeconds != 30 {
		t.Errorf("timeout = %v, want 30", out.TimeoutSeconds)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !IsConfigError(err) {
		t.Fatalf("Load() error = %v, want ConfigError", err)
	}
}

func TestStorePrecedence(t *testing.T) {
	var file FileConfig
	file.Provider = "groq"
	file.SetProvider("deepseek", ProviderConfig{APIKey: "sk-file", Model: "file-model"})

	tests := []struct {
		name      string
		env       map[string]string
		wantKey   string
		wantModel string
	}{
		{"file only", nil, "sk-file", "file-model"},
		{"env wins", map[string]string{"DEEPSEEK_API_KEY": "sk-env", "DEEPSEEK_MODEL": "env-model"}, "sk-env", "env-model"},
		{"env key trimmed", map[string]string{"DEEPSEEK_API_KEY": "  sk-env \n"}, "sk-env", "file-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(file)
			s.getenv = func(k string) string { return tt.env[k] }
			if got := s.APIKey("deepseek"); got != tt.wantKey {
				t.Errorf("APIKey() = %q, want %q", got, tt.wantKey)
			}
			if got := s.Model("deepseek"); got != tt.wantModel {
				t.Errorf("Model() = %q, want %q", got, tt.wantModel)
			}
		})
	}
}

func TestStoreUnknownProvider(t *testing.T) {
	s := NewStore(FileConfig{})
	s.getenv = func(string) string { return "" }
	if got := s.APIKey("deepseek"); got != "" {
		t.Errorf("APIKey() = %q, want empty", got)
	}
	if got := s.DefaultProvider("deepseek"); got != "deepseek" {
		t.Errorf("DefaultProvider() = %q, want deepseek", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("AICOMMIT_TEST_KEY=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AICOMMIT_TEST_KEY", "")
	os.Unsetenv("AICOMMIT_TEST_KEY")

	if err := LoadEnvFile(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("AICOMMIT_TEST_KEY"); got != "from-dotenv" {
		t.Errorf("AICOMMIT_TEST_KEY = %q, want from-dotenv", got)
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("open-router", "API_KEY"); got != "OPEN_ROUTER_API_KEY" {
		t.Errorf("EnvName() = %q, want OPEN_ROUTER_API_KEY", got)
	}
	if got := EnvName("deepseek", "MODEL"); got != "DEEPSEEK_MODEL" {
		t.Errorf("EnvName() = %q, want DEEPSEEK_MODEL", got)
	}
}

func TestResolveString(t *testing.T) {
	if got := ResolveString("", "", "file", "def"); got != "file" {
		t.Errorf("ResolveString() = %q, want file", got)
	}
	if got := ResolveString("flag", "env", "file", "def"); got != "flag" {
		t.Errorf("ResolveString() = %q, want flag", got)
	}
	if got := ResolveString("", "", "", "def"); got != "def" {
		t.Errorf("ResolveString() = %q, want def", got)
	}
}
