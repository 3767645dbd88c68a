package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestFilterAppliesRules(t *testing.T) {
	path := writeConfig(t, `
[files]
"muted.go" = false

[tags]
noisy = false
`)

	input := strings.Join([]string{
		"[app.go][ui] clicked",
		"[app.go][noisy] spam",
		"[muted.go][ui] hidden",
		"[app.go] plain",
		"no prefix here",
		"[app.go][ui]",
	}, "\n")

	var out bytes.Buffer
	if err := filter(context.Background(), strings.NewReader(input), &out, filterOptions{configPath: path}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}

	want := "[app.go][ui] clicked\n[app.go] plain\n[stdin] no prefix here\n[app.go][ui]\n"
	if got := out.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestFilterDisabled(t *testing.T) {
	path := writeConfig(t, "enabled = false\n")

	var out bytes.Buffer
	err := filter(context.Background(), strings.NewReader("[a.go] x\ny\n"), &out, filterOptions{configPath: path})
	if err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestFilterWildcardFiles(t *testing.T) {
	path := writeConfig(t, `
[files]
"*" = false
"keep.go" = true
`)

	var out bytes.Buffer
	input := "[keep.go][db] one\n[drop.go][db] two\nthree\n"
	if err := filter(context.Background(), strings.NewReader(input), &out, filterOptions{configPath: path}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if got := out.String(); got != "[keep.go][db] one\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFilterDump(t *testing.T) {
	path := writeConfig(t, "[tags]\nnoisy = false\n")

	var out bytes.Buffer
	input := "[a.go][noisy] x\n[b.go][ui] y\n"
	if err := filter(context.Background(), strings.NewReader(input), &out, filterOptions{configPath: path, dump: true}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"[b.go][ui] y", "a.go", "b.go", "noisy", "ui", "Known Tags (2)", "Known Files (2)"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "[a.go][noisy] x") {
		t.Errorf("muted line leaked into output:\n%s", got)
	}
}

func TestFilterColor(t *testing.T) {
	path := writeConfig(t, "")

	var out bytes.Buffer
	input := "[a.go][ui] hello\n"
	if err := filter(context.Background(), strings.NewReader(input), &out, filterOptions{configPath: path, color: true}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "a.go") || !strings.Contains(got, "ui") || !strings.HasSuffix(got, " hello\n") {
		t.Fatalf("unexpected colored output %q", got)
	}
}

func TestFilterMissingConfig(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.toml")
	if err := filter(context.Background(), strings.NewReader("[a.go] x\n"), &out, filterOptions{configPath: path}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if got := out.String(); got != "[a.go] x\n" {
		t.Fatalf("missing config should allow everything, got %q", got)
	}
}

func TestFilterWatchStopsAtEOF(t *testing.T) {
	path := writeConfig(t, "")

	var out bytes.Buffer
	if err := filter(context.Background(), strings.NewReader("[a.go] x\n"), &out, filterOptions{configPath: path, watch: true}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if got := out.String(); got != "[a.go] x\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestLinePattern(t *testing.T) {
	tests := []struct {
		line  string
		match bool
		file  string
		tag   string
		msg   string
	}{
		{"[a.go] msg", true, "a.go", "", "msg"},
		{"[a.go][ui] msg here", true, "a.go", "ui", "msg here"},
		{"[a.go][ui]", true, "a.go", "ui", ""},
		{"[a.go] [ui] msg", true, "a.go", "", "[ui] msg"},
		{"[a.go][] msg", true, "a.go", "", "msg"},
		{"[a.go] ", true, "a.go", "", ""},
		{"[a.go]msg", false, "", "", ""},
		{"plain", false, "", "", ""},
	}

	for _, tc := range tests {
		m := linePattern.FindStringSubmatch(tc.line)
		if (m != nil) != tc.match {
			t.Errorf("%q: match = %v, want %v", tc.line, m != nil, tc.match)
			continue
		}
		if m == nil {
			continue
		}
		if m[1] != tc.file || m[2] != tc.tag || m[3] != tc.msg {
			t.Errorf("%q: got file=%q tag=%q msg=%q", tc.line, m[1], m[2], m[3])
		}
	}
}

func TestFilterNormalizesEmptyTagAndTrailingSpace(t *testing.T) {
	path := writeConfig(t, "")

	var out bytes.Buffer
	input := "[a.go][] msg\n[a.go] \n"
	if err := filter(context.Background(), strings.NewReader(input), &out, filterOptions{configPath: path}); err != nil {
		t.Fatalf("filter returned error: %v", err)
	}
	if got := out.String(); got != "[a.go] msg\n[a.go]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
