package raster

import (
	"fmt"
	"io"

	exiftiff "github.com/rwcarlsen/goexif/tiff"
)

const (
	tagXResolution    = 282
	tagResolutionUnit = 296

	unitNone       = 1
	unitInch       = 2
	unitCentimeter = 3
)

// readResolution returns the horizontal resolution recorded in the first
// image file directory of a TIFF file, in samples per inch.  If the file
// records no resolution, or only a relative one, 0 is returned.
func readResolution(r io.Reader) (float64, error) {
	t, err := exiftiff.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if len(t.Dirs) == 0 {
		return 0, fmt.Errorf("%w: no image file directory", ErrUnsupported)
	}

	var xres float64
	unit := unitInch
	for _, tag := range t.Dirs[0].Tags {
		if tag.Count == 0 {
			continue
		}
		switch tag.Id {
		case tagXResolution:
			num, den, err := tag.Rat2(0)
			if err != nil {
				return 0, fmt.Errorf("XResolution: %w", err)
			}
			if den != 0 {
				xres = float64(num) / float64(den)
			}
		case tagResolutionUnit:
			unit, err = tag.Int(0)
			if err != nil {
				return 0, fmt.Errorf("ResolutionUnit: %w", err)
			}
		}
	}

	switch unit {
	case unitNone:
		return 0, nil
	case unitCentimeter:
		return xres * 2.54, nil
	default:
		return xres, nil
	}
}
