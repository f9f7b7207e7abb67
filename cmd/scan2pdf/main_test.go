package main

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/convert"
	"github.com/thywilljoshua/scan2pdf/internal/raster/rastertest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBoxesCommand(t *testing.T) {
	img := rastertest.Gray(10, 10)
	rastertest.Fill(img, image.Rect(5, 3, 7, 5), 0)
	path := rastertest.Write(t, t.TempDir(), "page.tif", img, 300)

	out, err := execute(t, "boxes", path)
	if err != nil {
		t.Fatal(err)
	}
	var got []boxes.Box
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := []boxes.Box{{X0: 5, Y0: 3, X1: 7, Y1: 5}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("boxes mismatch (-want +got):\n%s", d)
	}
}

func TestComposeCommand(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"p1", "p2"} {
		img := rastertest.Gray(20, 20)
		rastertest.Write(t, filepath.Join(root, "fg"), id+".tif", img, 72)
		rastertest.Write(t, filepath.Join(root, "bg"), id+".tif", img, 72)
		mark := rastertest.Gray(20, 20)
		rastertest.Fill(mark, image.Rect(4, 4, 8, 8), 0)
		rastertest.Write(t, filepath.Join(root, "det"), id+".tif", mark, 72)
	}

	config := filepath.Join(root, "scan2pdf.yaml")
	data := "foreground: " + filepath.Join(root, "fg") + "\n" +
		"background: " + filepath.Join(root, "bg") + "\n" +
		"detect: " + filepath.Join(root, "det") + "\n" +
		"out: " + filepath.Join(root, "ignored.pdf") + "\n"
	if err := os.WriteFile(config, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(root, "doc.pdf")
	out, err := execute(t, "compose", "--config", config, "--out", outPath, "p2", "p1")
	if err != nil {
		t.Fatal(err)
	}

	var res convert.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Output != outPath {
		t.Errorf("output %s, want %s", res.Output, outPath)
	}
	if len(res.Pages) != 2 || res.Pages[0].ID != "p2" || res.Pages[1].ID != "p1" {
		t.Errorf("unexpected pages %+v", res.Pages)
	}
	if res.Boxes != 2 {
		t.Errorf("boxes = %d, want 2", res.Boxes)
	}
	if _, err := os.Stat(filepath.Join(root, "ignored.pdf")); err == nil {
		t.Error("configured output used despite --out")
	}
}
