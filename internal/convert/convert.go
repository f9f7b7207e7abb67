// Package convert runs the page composition pipeline over a batch of
// scanned pages and assembles the result into one document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/thywilljoshua/scan2pdf/internal/assemble"
	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/compose"
	"github.com/thywilljoshua/scan2pdf/internal/crop"
	"github.com/thywilljoshua/scan2pdf/internal/raster"
)

// ErrNoPages is returned when a batch contains no pages.
var ErrNoPages = errors.New("no pages to convert")

// Run composes every page in ids and writes the assembled document to
// cfg.Out.  The pages appear in the output in the order of ids.  An id may
// be given as a file name ending in cfg.Ext.  The first failing page aborts
// the batch.
func Run(ctx context.Context, ids []string, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	if len(ids) == 0 {
		return Result{}, ErrNoPages
	}
	ids = slices.Clone(ids)
	for i, id := range ids {
		id = trimExt(id, cfg.Ext)
		if err := checkID(id); err != nil {
			return Result{}, err
		}
		ids[i] = id
	}

	scratch, err := os.MkdirTemp(cfg.ScratchDir, "scan2pdf-")
	if err != nil {
		return Result{}, err
	}
	defer cleanup(scratch, cfg.KeepScratch, log)
	log.WithField("path", scratch).Debug("scratch directory created")

	pages := make([]PageResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			pr, err := processPage(gctx, id, scratch, cfg)
			if err != nil {
				return fmt.Errorf("page %s: %w", id, err)
			}
			pages[i] = pr
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Pages: pages, Output: cfg.Out}
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.Path
		res.Boxes += p.Boxes
	}

	if dir := filepath.Dir(cfg.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, err
		}
	}
	err = assemble.Assemble(cfg.Out, paths, log)
	if err != nil {
		return Result{}, fmt.Errorf("assemble: %w", err)
	}

	n, err := pageCount(cfg.Out)
	if err != nil {
		return Result{}, fmt.Errorf("verify %s: %w", cfg.Out, err)
	}
	if n != len(ids) {
		return Result{}, fmt.Errorf("verify %s: %d pages, expected %d", cfg.Out, n, len(ids))
	}

	log.WithFields(logrus.Fields{
		"path":  cfg.Out,
		"pages": n,
		"boxes": res.Boxes,
	}).Info("document written")
	return res, nil
}

func processPage(ctx context.Context, id, scratch string, cfg Config) (PageResult, error) {
	log := cfg.Logger.WithField("page", id)

	dir := filepath.Join(scratch, id)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return PageResult{}, err
	}

	fg, err := raster.Open(pagePath(cfg.Foreground, id, cfg.Ext))
	if err != nil {
		return PageResult{}, fmt.Errorf("foreground: %w", err)
	}
	dpi, err := fg.Resolution()
	if err != nil {
		return PageResult{}, fmt.Errorf("foreground: %w", err)
	}
	base := filepath.Join(dir, "base.pdf")
	err = compose.Base(base, fg)
	if err != nil {
		return PageResult{}, fmt.Errorf("foreground: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return PageResult{}, err
	}

	det, err := raster.Open(pagePath(cfg.Detect, id, cfg.Ext))
	if err != nil {
		return PageResult{}, fmt.Errorf("detect: %w", err)
	}
	bb, err := boxes.Extract(raster.Gray(det.Image))
	if err != nil {
		return PageResult{}, fmt.Errorf("detect: %w", err)
	}
	log.WithField("boxes", len(bb)).Debug("regions located")
	if err := ctx.Err(); err != nil {
		return PageResult{}, err
	}

	bg, err := raster.Open(pagePath(cfg.Background, id, cfg.Ext))
	if err != nil {
		return PageResult{}, fmt.Errorf("background: %w", err)
	}
	regions, err := crop.Regions(bg.Image, bb, dir, dpi, cfg.Quality)
	if err != nil {
		return PageResult{}, fmt.Errorf("crop: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return PageResult{}, err
	}

	out := filepath.Join(scratch, id+".pdf")
	placed, err := compose.Merge(out, base, regions, fg.Height(), dpi)
	if err != nil {
		return PageResult{}, fmt.Errorf("compose: %w", err)
	}
	for _, p := range placed {
		log.WithFields(logrus.Fields{
			"box": p.Box.String(),
			"tx":  p.TX,
			"ty":  p.TY,
		}).Debug("region placed")
	}

	log.WithFields(logrus.Fields{
		"boxes": len(bb),
		"path":  out,
	}).Info("page composed")
	return PageResult{
		ID:         id,
		DPI:        dpi,
		Boxes:      len(bb),
		Placements: placed,
		Path:       out,
	}, nil
}

// cleanup removes the scratch directory unless it is to be kept.  Failures
// are logged but do not affect the result of the run.
func cleanup(dir string, keep bool, log logrus.FieldLogger) {
	if keep {
		log.WithField("path", dir).Info("keeping scratch directory")
		return
	}
	err := os.RemoveAll(dir)
	if err != nil {
		log.WithFields(logrus.Fields{
			"path":  dir,
			"error": err,
		}).Warn("cannot remove scratch directory")
	}
}
