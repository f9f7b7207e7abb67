// Package pdfpagetest inspects PDF files written in tests.
package pdfpagetest

import (
	"cmp"
	"io"
	"slices"
	"testing"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// Open opens a PDF file.  The file is closed when the test ends.
func Open(t testing.TB, path string) *pdf.Reader {
	t.Helper()

	r, err := pdf.Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// NumPages returns the number of pages in r.
func NumPages(t testing.TB, r *pdf.Reader) int {
	t.Helper()

	n, err := pagetree.NumPages(r)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// Page returns the dictionary of page i, counting from 0, with inherited
// attributes filled in.
func Page(t testing.TB, r *pdf.Reader, i int) pdf.Dict {
	t.Helper()

	_, dict, err := pagetree.GetPage(r, i)
	if err != nil {
		t.Fatal(err)
	}
	return dict
}

// MediaBox returns the media box of page i.
func MediaBox(t testing.TB, r *pdf.Reader, i int) *pdf.Rectangle {
	t.Helper()

	box, err := pdf.GetRectangle(r, Page(t, r, i)["MediaBox"])
	if err != nil || box == nil {
		t.Fatalf("page %d: no MediaBox: %v", i, err)
	}
	return box
}

// XObject is an external object found in a resource dictionary.
type XObject struct {
	Name pdf.Name
	*pdf.Stream
}

// Subtype returns the value of the /Subtype entry.
func (x XObject) Subtype() pdf.Name {
	name, _ := x.Dict["Subtype"].(pdf.Name)
	return name
}

// XObjects lists the external objects in the resources of dict, which is a
// page dictionary or the dictionary of a form XObject.  The result is sorted
// by name.
func XObjects(t testing.TB, r *pdf.Reader, dict pdf.Dict) []XObject {
	t.Helper()

	res, err := pdf.GetDict(r, dict["Resources"])
	if err != nil {
		t.Fatal(err)
	}
	xobj, err := pdf.GetDict(r, res["XObject"])
	if err != nil {
		t.Fatal(err)
	}

	var out []XObject
	for name, ref := range xobj {
		stm, err := pdf.GetStream(r, ref)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, XObject{Name: name, Stream: stm})
	}
	slices.SortFunc(out, func(a, b XObject) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Filter returns the objects of the given subtype.
func Filter(list []XObject, subtype pdf.Name) []XObject {
	var out []XObject
	for _, x := range list {
		if x.Subtype() == subtype {
			out = append(out, x)
		}
	}
	return out
}

// Data returns the decoded contents of a stream.
func Data(t testing.TB, r *pdf.Reader, stm *pdf.Stream) []byte {
	t.Helper()

	rd, err := pdf.DecodeStream(r, stm, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	data, err := io.ReadAll(rd)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// Contents returns the decoded content stream of page i.
func Contents(t testing.TB, r *pdf.Reader, i int) string {
	t.Helper()

	stm, err := pagetree.ContentStream(r, Page(t, r, i))
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(stm)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// Int returns the integer value of key in dict.
func Int(t testing.TB, r *pdf.Reader, dict pdf.Dict, key pdf.Name) int {
	t.Helper()

	x, err := pdf.GetInteger(r, dict[key])
	if err != nil {
		t.Fatalf("/%s: %v", key, err)
	}
	return int(x)
}

// Rect returns the rectangle stored under key in dict.
func Rect(t testing.TB, r *pdf.Reader, dict pdf.Dict, key pdf.Name) *pdf.Rectangle {
	t.Helper()

	box, err := pdf.GetRectangle(r, dict[key])
	if err != nil || box == nil {
		t.Fatalf("/%s: no rectangle: %v", key, err)
	}
	return box
}
