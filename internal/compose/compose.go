// Package compose builds a page out of a foreground raster and a number of
// cropped background regions.
//
// The foreground page is drawn first, as a form XObject.  Every region is
// imported as a form XObject as well and drawn on top of it, translated
// so that it covers the pixels its box was cut from.  Pixel rows grow
// downwards while PDF page coordinates grow upwards, so the vertical offset
// is measured from the bottom edge of the page.
package compose

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/pdfcopy"

	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/crop"
	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
	"github.com/thywilljoshua/scan2pdf/internal/raster"
	"github.com/thywilljoshua/scan2pdf/internal/units"
)

// Base writes the foreground raster as a single-page PDF file.  The pixels
// are stored losslessly and the page is sized to the image at its own
// resolution.
func Base(path string, fg *raster.Image) error {
	dpi, err := fg.Resolution()
	if err != nil {
		return err
	}
	return pdfpage.WriteImage(path, fg.Image, dpi, &pdfpage.ImageOptions{Encoding: pdfpage.Lossless})
}

// Placement records where a region was drawn on the composed page.
type Placement struct {
	Box boxes.Box `json:"box"`
	TX  float64   `json:"tx"`
	TY  float64   `json:"ty"`
}

// Translation returns the page space offset of a box.  heightPx is the
// height of the page in pixels.  No bounds check is done.
func Translation(b boxes.Box, heightPx int, dpi float64) (tx, ty float64) {
	tx = units.PixelToPage(float64(b.X0), dpi)
	ty = units.PixelToPage(float64(heightPx-b.Y1), dpi)
	return tx, ty
}

// Merge reads the first page of the base file, draws every region on top of
// it and writes the result to out.  Regions are drawn in the given order, so
// later regions cover earlier ones.
func Merge(out, base string, regions []crop.Region, heightPx int, dpi float64) ([]Placement, error) {
	if !(dpi > 0) {
		return nil, raster.ErrNoResolution
	}

	bs, err := pdfpage.Open(base)
	if err != nil {
		return nil, err
	}
	defer bs.Close()

	page, err := document.CreateSinglePage(out, bs.MediaBox, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	page.DrawXObject(bs.Form())
	if page.Err != nil {
		page.Out.Close()
		return nil, fmt.Errorf("%s: %w", base, page.Err)
	}

	placed := make([]Placement, 0, len(regions))
	for _, r := range regions {
		tx, ty := Translation(r.Box, heightPx, dpi)
		err := drawRegion(page, r.Path, tx, ty)
		if err != nil {
			page.Out.Close()
			return nil, err
		}
		placed = append(placed, Placement{Box: r.Box, TX: tx, TY: ty})
	}

	extra := pdf.Dict{}
	for _, key := range []pdf.Name{"CropBox", "Rotate", "UserUnit"} {
		if val, ok := bs.Dict[key]; ok {
			extra[key] = val
		}
	}
	extra, err = pdfcopy.NewCopier(page.Out, bs.R).CopyDict(extra)
	if err != nil {
		page.Out.Close()
		return nil, fmt.Errorf("%s: %w", base, err)
	}
	for key, val := range extra {
		page.PageDict[key] = val
	}

	err = page.Close()
	if err != nil {
		page.Out.Close()
		return nil, err
	}
	return placed, nil
}

// drawRegion draws the first page of the file at path, shifted by (tx, ty).
// The form is embedded while it is drawn, so the file can be closed
// afterwards.
func drawRegion(page *document.Page, path string, tx, ty float64) error {
	src, err := pdfpage.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	page.PushGraphicsState()
	page.Transform(matrix.Translate(tx, ty))
	page.DrawXObject(src.Form())
	page.PopGraphicsState()
	if page.Err != nil {
		return fmt.Errorf("%s: %w", path, page.Err)
	}
	return nil
}
