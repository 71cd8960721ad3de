package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func TestResolvedConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	c := New(io.Discard, LogInfo)
	got, err := c.resolvedConfigPath()
	if err != nil {
		t.Fatalf("resolvedConfigPath() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if got != want {
		t.Errorf("resolvedConfigPath() = %q, want %q", got, want)
	}

	c.configPath = "/etc/vsmod.toml"
	got, err = c.resolvedConfigPath()
	if err != nil {
		t.Fatalf("resolvedConfigPath() error: %v", err)
	}
	if got != "/etc/vsmod.toml" {
		t.Errorf("resolvedConfigPath() with --config = %q", got)
	}
}

func TestClearPrefix(t *testing.T) {
	tests := []struct {
		only    string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"mods", "mod", false},
		{"authors", "author", false},
		{"tags", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.only, func(t *testing.T) {
			got, err := clearPrefix(tt.only)
			if (err != nil) != tt.wantErr {
				t.Fatalf("clearPrefix(%q) error = %v, wantErr %v", tt.only, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("clearPrefix(%q) = %q, want %q", tt.only, got, tt.want)
			}
		})
	}
}
