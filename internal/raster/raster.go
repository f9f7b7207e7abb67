// Package raster loads scanned page images together with their resolution.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/tiff"
)

var (
	// ErrNoResolution is returned when an image carries no usable resolution.
	ErrNoResolution = errors.New("image has no resolution information")

	// ErrUnsupported is returned for files which are not TIFF images.
	ErrUnsupported = errors.New("unsupported image format")
)

// Image is a decoded raster together with its resolution.
type Image struct {
	image.Image

	// DPI is the horizontal resolution in samples per inch, or 0 if the
	// file does not record one.
	DPI float64
}

// Width returns the width of the image in pixels.
func (im *Image) Width() int { return im.Bounds().Dx() }

// Height returns the height of the image in pixels.
func (im *Image) Height() int { return im.Bounds().Dy() }

// Resolution returns the resolution of the image in samples per inch.
// An error wrapping [ErrNoResolution] is returned if the resolution is
// missing or not positive.
func (im *Image) Resolution() (float64, error) {
	if !(im.DPI > 0) {
		return 0, ErrNoResolution
	}
	return im.DPI, nil
}

// Open reads a TIFF image from the named file.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	im, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return im, nil
}

// Decode decodes a TIFF image held in memory.
func Decode(data []byte) (*Image, error) {
	res, err := readResolution(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Image{Image: img, DPI: res}, nil
}

// Gray returns the image as an 8-bit grayscale image with origin (0,0).
// If the image already is grayscale, the pixel data is shared.
func Gray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// IsBilevel reports whether every pixel of img is either black or white.
func IsBilevel(img *image.Gray) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):][:b.Dx()]
		for _, v := range row {
			if v != 0 && v != 0xff {
				return false
			}
		}
	}
	return true
}

// IsGray reports whether img stores a single channel per pixel.
func IsGray(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return true
	}
	if p, ok := img.(*image.Paletted); ok {
		for _, c := range p.Palette {
			r, g, b, _ := c.RGBA()
			if r != g || g != b {
				return false
			}
		}
		return true
	}
	return false
}
