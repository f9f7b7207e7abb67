// Package rastertest builds TIFF fixtures for tests.
package rastertest

import (
	"bytes"
	"encoding/binary"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

// TIFF encodes img as a TIFF file recording the given resolution in samples
// per inch.  If dpi is zero, the file declares that it has no absolute
// resolution.
func TIFF(t testing.TB, img image.Image, dpi float64) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	err := tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	if dpi == 0 {
		patch(t, data, 296, func(bo binary.ByteOrder, e []byte) {
			bo.PutUint16(e[2:4], 3)
			bo.PutUint32(e[4:8], 1)
			bo.PutUint32(e[8:12], 0)
			bo.PutUint16(e[8:10], 1)
		})
		return data
	}

	patch(t, data, 282, func(bo binary.ByteOrder, e []byte) {
		off := bo.Uint32(e[8:12])
		bo.PutUint32(data[off:off+4], uint32(math.Round(dpi*100)))
		bo.PutUint32(data[off+4:off+8], 100)
	})
	return data
}

// Write stores img as a TIFF file at dir/name and returns the full path.
func Write(t testing.TB, dir, name string, img image.Image, dpi float64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path, TIFF(t, img, dpi), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// patch calls fn on the first-directory entry for tag.
func patch(t testing.TB, data []byte, tag uint16, fn func(bo binary.ByteOrder, entry []byte)) {
	t.Helper()

	var bo binary.ByteOrder = binary.LittleEndian
	if string(data[:2]) == "MM" {
		bo = binary.BigEndian
	}
	ifd := bo.Uint32(data[4:8])
	n := int(bo.Uint16(data[ifd : ifd+2]))
	for i := 0; i < n; i++ {
		e := data[int(ifd)+2+12*i:][:12]
		if bo.Uint16(e[0:2]) == tag {
			fn(bo, e)
			return
		}
	}
	t.Fatalf("TIFF tag %d not found", tag)
}

// Gray returns a w×h white grayscale image.
func Gray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// Fill sets all pixels of img inside r to v.
func Fill(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
}
