// Package pdfpage writes and reads single PDF pages.
//
// Pages are handled as PDF dictionaries, following the structure of
// ISO 32000 section 7.7.3.3.  Only the first page of an input file is ever
// used.
package pdfpage

import (
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/form"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"
)

// ErrNoPages is returned when an input file contains no pages.
var ErrNoPages = errors.New("document has no pages")

// Source is the first page of an existing PDF file.
type Source struct {
	R *pdf.Reader

	// Dict is the page dictionary, with inherited attributes filled in.
	Dict pdf.Dict

	// MediaBox is the page boundary in page units.
	MediaBox *pdf.Rectangle

	// NumPages is the total number of pages in the file.
	NumPages int
}

// Open opens a PDF file and locates its first page.
func Open(path string) (*Source, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, err
	}

	src, err := firstPage(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

func firstPage(r *pdf.Reader) (*Source, error) {
	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, ErrNoPages
	}
	_, dict, err := pagetree.GetPage(r, 0)
	if err != nil {
		return nil, err
	}
	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, errors.New("page has no MediaBox")
	}
	return &Source{R: r, Dict: dict, MediaBox: box, NumPages: n}, nil
}

// Close closes the underlying file.
func (s *Source) Close() error {
	return s.R.Close()
}

// Contents returns the decoded content stream of the page.
func (s *Source) Contents() ([]byte, error) {
	stm, err := pagetree.ContentStream(s.R, s.Dict)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stm)
}

// Form returns the page as a form XObject.  The form's bounding box is the
// page's media box, so drawing the form with the identity matrix reproduces
// the page at its original position.
//
// The page is read when the form is embedded, which happens when it is
// first drawn.  s must stay open until then.
func (s *Source) Form() *form.Form {
	return &form.Form{
		Draw: func(w *graphics.Writer) error {
			res, err := pdf.GetDict(s.R, s.Dict["Resources"])
			if err != nil {
				return err
			}
			resCopy, err := pdfcopy.NewCopier(w.RM.Out, s.R).CopyDict(res)
			if err != nil {
				return err
			}
			err = pdf.DecodeDict(nil, w.Resources, resCopy)
			if err != nil {
				return err
			}

			body, err := s.Contents()
			if err != nil {
				return err
			}
			_, err = w.Content.Write(body)
			return err
		},
		BBox: *s.MediaBox,
	}
}

// CopyPage copies the page dictionary, and everything it references, into
// out.  The result can be appended to a page tree writing to out.
func CopyPage(out *pdf.Writer, s *Source) (pdf.Dict, error) {
	dict := pdf.Dict{}
	for key, val := range s.Dict {
		if key == "Parent" {
			continue
		}
		dict[key] = val
	}
	return pdfcopy.NewCopier(out, s.R).CopyDict(dict)
}
