package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.env")

	if err := loadDotEnv(missing, false); err != nil {
		t.Errorf("missing default file should be ignored, got %v", err)
	}
	if err := loadDotEnv(missing, true); err == nil {
		t.Error("missing explicit file should fail")
	}

	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("HEBCAL_TEST_DOTENV=loaded\nHEBCAL_TEST_DOTENV_KEEP=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HEBCAL_TEST_DOTENV_KEEP", "fromenv")
	t.Cleanup(func() { _ = os.Unsetenv("HEBCAL_TEST_DOTENV") })

	if err := loadDotEnv(path, true); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("HEBCAL_TEST_DOTENV"); got != "loaded" {
		t.Errorf("HEBCAL_TEST_DOTENV = %q, want loaded", got)
	}
	if got := os.Getenv("HEBCAL_TEST_DOTENV_KEEP"); got != "fromenv" {
		t.Errorf("existing variable was overridden: %q", got)
	}
}

func TestRootCommands(t *testing.T) {
	want := []string{"shabbat", "export", "config", "serve", "generate-docs", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
