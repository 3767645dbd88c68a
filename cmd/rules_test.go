package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/tracklog/pkg/config"
	"github.com/rubiojr/tracklog/pkg/log"
)

func TestSetRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := setRule(path, config.KindFile, "ui.go", false); err != nil {
		t.Fatalf("setRule file: %v", err)
	}
	if err := setRule(path, config.KindTag, "*", false); err != nil {
		t.Fatalf("setRule tag: %v", err)
	}
	if err := setRule(path, config.KindTag, "ui", true); err != nil {
		t.Fatalf("setRule tag: %v", err)
	}
	if err := setRule(path, "level", "x", true); err == nil {
		t.Fatal("expected error for unknown rule kind")
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if v, ok := cfg.Files["ui.go"]; !ok || v {
		t.Errorf("ui.go rule not saved: %+v", cfg.Files)
	}
	if v, ok := cfg.Tags["*"]; !ok || v {
		t.Errorf("wildcard tag rule not saved: %+v", cfg.Tags)
	}
	if !cfg.Tags["ui"] {
		t.Errorf("ui tag rule not saved: %+v", cfg.Tags)
	}
}

func TestSetEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := setEnabled(path, false); err != nil {
		t.Fatalf("setEnabled: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Enabled {
		t.Fatal("expected logging disabled")
	}

	if err := setEnabled(path, true); err != nil {
		t.Fatalf("setEnabled: %v", err)
	}
	if cfg, _ = config.LoadConfig(path); !cfg.Enabled {
		t.Fatal("expected logging enabled")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracklog", "config.toml")

	if err := initConfig(path, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "[tags]") {
		t.Fatalf("unexpected template:\n%s", data)
	}

	if err := initConfig(path, false); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if err := initConfig(path, true); err != nil {
		t.Fatalf("initConfig --force: %v", err)
	}
}

func TestRenderSnapshotEmpty(t *testing.T) {
	s, err := loadSettings(filepath.Join(t.TempDir(), "missing.toml"), os.Stdout)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	out := renderSnapshot("state", s.Snapshot())
	for _, want := range []string{"State", "File Rules (0)", "Tag Rules (0)", "none"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderSnapshotEmptyLabel(t *testing.T) {
	out := renderSnapshot("", log.NewSettings().Snapshot())
	if !strings.Contains(out, capitalize(log.DefaultDumpLabel)) {
		t.Fatalf("expected default label in report:\n%s", out)
	}
}
