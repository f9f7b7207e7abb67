package convert

import (
	"os"

	rpdf "rsc.io/pdf"
)

// pageCount returns the number of pages of a PDF file, read with an
// independent parser.
func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, err
	}
	return doc.NumPage(), nil
}
