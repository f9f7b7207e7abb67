// Package boxes finds the bounding boxes of filled rectangles in a
// single-channel raster.
//
// Objects are axis-aligned rectangles of one uniform sample value below
// [Background], placed on a background of value [Background].  They are
// reported darkest first; among objects of equal value the one whose top-left
// corner comes first in row-major order is reported first.
package boxes

import (
	"errors"
	"fmt"
	"image"
)

// Background is the sample value of pixels which do not belong to any object.
const Background = 0xff

var (
	// ErrNoEdge is returned if a row or column sweep finds no value change.
	ErrNoEdge = errors.New("no object edge found")

	// ErrNotRectangular is returned if an object is not a uniformly filled
	// rectangle, or if it touches another object of the same value.
	ErrNotRectangular = errors.New("object is not a uniform filled rectangle")
)

// Box is a half-open pixel rectangle [X0, X1) × [Y0, Y1).
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Dx returns the width of the box.
func (b Box) Dx() int { return b.X1 - b.X0 }

// Dy returns the height of the box.
func (b Box) Dy() int { return b.Y1 - b.Y0 }

// Rect returns the box as an image rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X0, b.Y0, b.X1, b.Y1)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.X0, b.Y0, b.X1, b.Y1)
}

// Extract returns the bounding boxes of all objects in img, in discovery
// order.  The image is not modified.
func Extract(img *image.Gray) ([]Box, error) {
	buf := newPadded(img)

	var res []Box
	for {
		row, col := buf.argmin()
		if row == 0 && col == 0 {
			// only the padding corner is left
			return res, nil
		}

		v := buf.at(row, col)
		right, err := buf.rowEdge(row, col)
		if err != nil {
			return nil, fmt.Errorf("object at (%d,%d): %w", col-1, row-1, err)
		}
		bottom, err := buf.colEdge(row, col)
		if err != nil {
			return nil, fmt.Errorf("object at (%d,%d): %w", col-1, row-1, err)
		}

		if !buf.isIsolatedRect(col, row, right, bottom, v) {
			return nil, fmt.Errorf("object at (%d,%d): %w", col-1, row-1, ErrNotRectangular)
		}
		buf.fill(col, row, right, bottom, Background)

		res = append(res, Box{X0: col - 1, Y0: row - 1, X1: right - 1, Y1: bottom - 1})
	}
}

// padded is a private working copy of an image, surrounded by one pixel of
// background on every side.
type padded struct {
	pix    []uint8
	stride int
	rows   int
}

func newPadded(img *image.Gray) *padded {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &padded{
		pix:    make([]uint8, (w+2)*(h+2)),
		stride: w + 2,
		rows:   h + 2,
	}
	for i := range p.pix {
		p.pix[i] = Background
	}
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(p.pix[(y+1)*p.stride+1:(y+1)*p.stride+1+w], src[:w])
	}
	return p
}

func (p *padded) at(row, col int) uint8 {
	return p.pix[row*p.stride+col]
}

// argmin returns the position of the first minimal sample in row-major order.
func (p *padded) argmin() (row, col int) {
	best := 0
	for i, v := range p.pix {
		if v < p.pix[best] {
			best = i
			if v == 0 {
				break
			}
		}
	}
	return best / p.stride, best % p.stride
}

// rowEdge returns the first column right of col where the value differs
// from the value at (row, col).
func (p *padded) rowEdge(row, col int) (int, error) {
	v := p.at(row, col)
	for x := col + 1; x < p.stride; x++ {
		if p.at(row, x) != v {
			return x, nil
		}
	}
	return 0, ErrNoEdge
}

// colEdge returns the first row below row where the value differs from the
// value at (row, col).
func (p *padded) colEdge(row, col int) (int, error) {
	v := p.at(row, col)
	for y := row + 1; y < p.rows; y++ {
		if p.at(y, col) != v {
			return y, nil
		}
	}
	return 0, ErrNoEdge
}

// isIsolatedRect reports whether the rectangle [x0,x1)×[y0,y1) is filled
// with v and no pixel on the ring around it has value v.
func (p *padded) isIsolatedRect(x0, y0, x1, y1 int, v uint8) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p.at(y, x) != v {
				return false
			}
		}
	}

	// The ring lies inside the padded buffer except where the rectangle
	// touches the padding itself, which cannot happen for object pixels.
	for x := x0 - 1; x <= x1; x++ {
		if p.at(y0-1, x) == v || p.at(y1, x) == v {
			return false
		}
	}
	for y := y0; y < y1; y++ {
		if p.at(y, x0-1) == v || p.at(y, x1) == v {
			return false
		}
	}
	return true
}

func (p *padded) fill(x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		line := p.pix[y*p.stride+x0 : y*p.stride+x1]
		for i := range line {
			line[i] = v
		}
	}
}
