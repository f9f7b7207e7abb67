package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListPages returns the identifiers of all pages in dir, in lexical order.
// A page is a regular file whose name ends in ext, compared without regard
// to case.  The identifier is the file name without the extension.
func ListPages(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if id, ok := pageID(e.Name(), ext); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func pageID(name, ext string) (string, bool) {
	if len(name) <= len(ext) {
		return "", false
	}
	cut := len(name) - len(ext)
	if !strings.EqualFold(name[cut:], ext) {
		return "", false
	}
	return name[:cut], true
}

// trimExt removes ext from the end of id, so that input file names can be
// used as page identifiers.
func trimExt(id, ext string) string {
	if trimmed, ok := pageID(id, ext); ok {
		return trimmed
	}
	return id
}

// checkID rejects identifiers which would escape the scratch directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid page id %q", id)
	}
	return nil
}

// pagePath returns the input file for page id in dir.  If there is no file
// with exactly the expected name, a file differing only in the case of the
// extension is accepted.
func pagePath(dir, id, ext string) string {
	path := filepath.Join(dir, id+ext)
	_, err := os.Stat(path)
	if !errors.Is(err, os.ErrNotExist) {
		return path
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return path
	}
	for _, e := range entries {
		if got, ok := pageID(e.Name(), ext); ok && got == id {
			return filepath.Join(dir, e.Name())
		}
	}
	return path
}
