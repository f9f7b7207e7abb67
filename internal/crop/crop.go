// Package crop cuts regions out of a background raster and stores each one
// as a single-page PDF file.
package crop

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
)

var (
	// ErrEmptyCrop is returned for boxes without pixels.
	ErrEmptyCrop = errors.New("empty crop region")

	// ErrOutOfBounds is returned for boxes not contained in the source image.
	ErrOutOfBounds = errors.New("crop region outside the source image")
)

// Region is a cropped part of the background, stored as a PDF file.
type Region struct {
	// Path is the location of the single-page PDF file.
	Path string

	// Box is the position of the region in source pixel coordinates.
	Box boxes.Box
}

// Regions crops one region per box out of src and writes it to dir as
// "<index>.pdf", where index is the position of the box in bb.  The pages
// are sized for the given resolution.  Quality is the JPEG quality; zero
// selects [pdfpage.DefaultQuality].
func Regions(src image.Image, bb []boxes.Box, dir string, dpi float64, quality int) ([]Region, error) {
	opt := &pdfpage.ImageOptions{Encoding: pdfpage.JPEG, Quality: quality}

	res := make([]Region, 0, len(bb))
	for i, b := range bb {
		sub, err := cut(src, b)
		if err != nil {
			return nil, fmt.Errorf("region %d %s: %w", i, b, err)
		}

		path := filepath.Join(dir, strconv.Itoa(i)+".pdf")
		err = pdfpage.WriteImage(path, sub, dpi, opt)
		if err != nil {
			return nil, fmt.Errorf("region %d %s: %w", i, b, err)
		}
		res = append(res, Region{Path: path, Box: b})
	}
	return res, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cut returns the part of src covered by b.  Box coordinates are relative to
// the top-left corner of src.
func cut(src image.Image, b boxes.Box) (image.Image, error) {
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyCrop
	}
	sb := src.Bounds()
	r := b.Rect().Add(sb.Min)
	if !r.In(sb) {
		return nil, ErrOutOfBounds
	}

	if s, ok := src.(subImager); ok {
		return s.SubImage(r), nil
	}
	return nil, fmt.Errorf("cannot crop images of type %T", src)
}
