package paths

import (
	"path/filepath"
	"testing"
)

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Fatal("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestAppConfigDir(t *testing.T) {
	got := AppConfigDir()
	if filepath.Base(got) != AppName {
		t.Errorf("AppConfigDir() = %q, want base %q", got, AppName)
	}
	if filepath.Dir(got) != ConfigHome() {
		t.Errorf("AppConfigDir() = %q, want parent %q", got, ConfigHome())
	}
}

func TestConfigSearchPaths(t *testing.T) {
	got := ConfigSearchPaths()
	if len(got) != 2 {
		t.Fatalf("ConfigSearchPaths() len = %d, want 2", len(got))
	}
	if got[0] != "." {
		t.Errorf("first search path = %q, want current directory", got[0])
	}
	if got[1] != AppConfigDir() {
		t.Errorf("second search path = %q, want %q", got[1], AppConfigDir())
	}
}
