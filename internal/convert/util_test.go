package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListPages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"p2.TIF", "p10.tif", "p1.tif", "notes.txt", ".tif"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.tif"), 0o755); err != nil {
		t.Fatal(err)
	}

	ids, err := ListPages(dir, ".tif")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"p1", "p10", "p2"}
	if d := cmp.Diff(want, ids); d != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", d)
	}

	if _, err := ListPages(filepath.Join(dir, "missing"), ".tif"); err == nil {
		t.Error("missing directory accepted")
	}
}

func TestPagePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.tif"))
	touch(t, filepath.Join(dir, "b.TIF"))

	cases := map[string]string{
		"a": "a.tif",
		"b": "b.TIF",
		"c": "c.tif",
	}
	for id, want := range cases {
		if got := pagePath(dir, id, ".tif"); got != filepath.Join(dir, want) {
			t.Errorf("pagePath(%q) = %s, want %s", id, got, want)
		}
	}
}

func TestTrimExt(t *testing.T) {
	cases := map[string]string{
		"p1":      "p1",
		"p1.tif":  "p1",
		"p1.TIF":  "p1",
		"p1.tiff": "p1.tiff",
		".tif":    ".tif",
	}
	for id, want := range cases {
		if got := trimExt(id, ".tif"); got != want {
			t.Errorf("trimExt(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestDefaultQuality(t *testing.T) {
	if q := DefaultConfig().Quality; q != pdfpage.DefaultQuality {
		t.Errorf("default quality %d, want %d", q, pdfpage.DefaultQuality)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan2pdf.yaml")
	data := "foreground: text\njobs: 4\nkeep_scratch: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadConfig(path, &cfg); err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Foreground = "text"
	want.Jobs = 4
	want.KeepScratch = true
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("config mismatch (-want +got):\n%s", d)
	}

	empty := filepath.Join(dir, "empty.yaml")
	touch(t, empty)
	cfg = DefaultConfig()
	if err := LoadConfig(empty, &cfg); err != nil {
		t.Errorf("empty file: %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("forground: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadConfig(bad, &cfg); err == nil {
		t.Error("unknown key accepted")
	}
}
