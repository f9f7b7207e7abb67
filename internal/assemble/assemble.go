// Package assemble concatenates single-page PDF files into one document.
package assemble

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"

	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
)

// ErrNoPages is returned when there is nothing to assemble.
var ErrNoPages = errors.New("no pages to assemble")

// Assemble writes a document to out which contains the first page of every
// input file, in the order given.  Pages after the first one of an input are
// dropped with a warning.  If log is nil, the standard logger is used.
func Assemble(out string, paths []string, log logrus.FieldLogger) error {
	if len(paths) == 0 {
		return ErrNoPages
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	w, err := pdf.Create(out, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	doc, err := document.AddMultiPage(w, nil)
	if err != nil {
		w.Close()
		return err
	}

	for i, path := range paths {
		err = appendPage(doc, path, log)
		if err != nil {
			w.Close()
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	err = doc.Close()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": out, "pages": len(paths)}).Debug("document written")
	return nil
}

func appendPage(doc *document.MultiPage, path string, log logrus.FieldLogger) error {
	src, err := pdfpage.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	if src.NumPages > 1 {
		log.WithFields(logrus.Fields{
			"path":  path,
			"pages": src.NumPages,
		}).Warn("ignoring all but the first page")
	}

	dict, err := pdfpage.CopyPage(doc.Out, src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return doc.Tree.AppendPage(dict)
}
