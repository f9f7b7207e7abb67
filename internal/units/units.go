// Package units converts between raster pixels and PDF page units.
package units

// PointsPerInch is the number of PDF page units (points) in one inch.
const PointsPerInch = 72.0

// PixelToPage converts a pixel offset at the given resolution (samples per
// inch) into page units.
func PixelToPage(px, dpi float64) float64 {
	return px / dpi * PointsPerInch
}

// PageToPixel converts a length in page units into pixels at the given
// resolution.
func PageToPixel(pt, dpi float64) float64 {
	return pt / PointsPerInch * dpi
}
