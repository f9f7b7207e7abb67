package crop

import (
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
)

func photo(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestRegions(t *testing.T) {
	dir := t.TempDir()
	bb := []boxes.Box{
		{X0: 10, Y0: 20, X1: 40, Y1: 30},
		{X0: 0, Y0: 0, X1: 100, Y1: 5},
	}

	regions, err := Regions(photo(100, 50), bb, dir, 200, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != len(bb) {
		t.Fatalf("got %d regions, want %d", len(regions), len(bb))
	}

	for i, r := range regions {
		if r.Box != bb[i] {
			t.Errorf("region %d: box %v, want %v", i, r.Box, bb[i])
		}
		if want := filepath.Join(dir, []string{"0.pdf", "1.pdf"}[i]); r.Path != want {
			t.Errorf("region %d: path %q, want %q", i, r.Path, want)
		}

		src, err := pdfpage.Open(r.Path)
		if err != nil {
			t.Fatal(err)
		}
		wantW := float64(bb[i].Dx()) / 200 * 72
		wantH := float64(bb[i].Dy()) / 200 * 72
		if math.Abs(src.MediaBox.URx-wantW) > 0.01 || math.Abs(src.MediaBox.URy-wantH) > 0.01 {
			t.Errorf("region %d: MediaBox %v, want %gx%g", i, src.MediaBox, wantW, wantH)
		}
		src.Close()
	}
}

func TestRegionsErrors(t *testing.T) {
	cases := []struct {
		name string
		box  boxes.Box
		want error
	}{
		{"empty", boxes.Box{X0: 3, Y0: 3, X1: 3, Y1: 9}, ErrEmptyCrop},
		{"right of image", boxes.Box{X0: 90, Y0: 0, X1: 101, Y1: 5}, ErrOutOfBounds},
		{"below image", boxes.Box{X0: 0, Y0: 45, X1: 10, Y1: 60}, ErrOutOfBounds},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := Regions(photo(100, 50), []boxes.Box{c.box}, dir, 300, 80)
			if !errors.Is(err, c.want) {
				t.Errorf("got error %v, want %v", err, c.want)
			}
		})
	}
}

func TestOffsetSource(t *testing.T) {
	img := photo(30, 30).SubImage(image.Rect(10, 10, 30, 30))
	sub, err := cut(img, boxes.Box{X0: 0, Y0: 0, X1: 20, Y1: 20})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Bounds() != image.Rect(10, 10, 30, 30) {
		t.Errorf("bounds = %v", sub.Bounds())
	}
	if _, err := cut(img, boxes.Box{X0: 5, Y0: 5, X1: 25, Y1: 10}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got error %v, want %v", err, ErrOutOfBounds)
	}
}

func TestMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Regions(photo(10, 10), []boxes.Box{{X0: 0, Y0: 0, X1: 2, Y1: 2}}, dir, 300, 80)
	if err == nil {
		t.Fatal("writing into a missing directory succeeded")
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Errorf("directory was created: %v", statErr)
	}
}
