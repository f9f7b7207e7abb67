package pdfpage

import (
	"image"
	"image/jpeg"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"github.com/thywilljoshua/scan2pdf/internal/raster"
	"github.com/thywilljoshua/scan2pdf/internal/units"
)

// Encoding selects how image samples are stored in the PDF file.
type Encoding int

const (
	// Lossless stores the samples Flate-compressed.  Black and white images
	// are packed to one bit per sample.
	Lossless Encoding = iota

	// JPEG stores the samples DCT-compressed.
	JPEG
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 80

// ImageOptions control how an image page is written.
type ImageOptions struct {
	Encoding Encoding

	// Quality is the JPEG quality, 1 to 100.
	Quality int
}

// WriteImage writes img as a single-page PDF file.  The page is sized so that
// one pixel covers 1/dpi inch, and the image fills the page exactly.
func WriteImage(path string, img image.Image, dpi float64, opt *ImageOptions) error {
	if opt == nil {
		opt = &ImageOptions{}
	}
	if !(dpi > 0) {
		return raster.ErrNoResolution
	}

	var xobj pdfimage.Image
	switch opt.Encoding {
	case JPEG:
		quality := opt.Quality
		if quality <= 0 {
			quality = DefaultQuality
		}
		var err error
		xobj, err = pdfimage.JPEG(img, &jpeg.Options{Quality: quality})
		if err != nil {
			return err
		}
	default:
		xobj = lossless(img)
	}

	b := img.Bounds()
	width := units.PixelToPage(float64(b.Dx()), dpi)
	height := units.PixelToPage(float64(b.Dy()), dpi)

	page, err := document.CreateSinglePage(path, &pdf.Rectangle{URx: width, URy: height}, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	page.PushGraphicsState()
	page.Transform(matrix.Scale(width, height))
	page.DrawXObject(xobj)
	page.PopGraphicsState()

	err = page.Close()
	if err != nil {
		page.Out.Close()
		return err
	}
	return nil
}

// lossless chooses the smallest sample format which keeps every pixel.
func lossless(img image.Image) *pdfimage.Dict {
	if !raster.IsGray(img) {
		return pdfimage.FromImage(img, color.DeviceRGBSpace, 8)
	}
	g := raster.Gray(img)
	if raster.IsBilevel(g) {
		return pdfimage.FromImage(g, color.DeviceGraySpace, 1)
	}
	return pdfimage.FromImage(g, color.DeviceGraySpace, 8)
}
