package convert

import (
	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/scan2pdf/internal/compose"
	"github.com/thywilljoshua/scan2pdf/internal/pdfpage"
)

// PageResult describes one composed page.
type PageResult struct {
	ID         string              `json:"id"`
	DPI        float64             `json:"dpi"`
	Boxes      int                 `json:"boxes"`
	Placements []compose.Placement `json:"placements,omitempty"`

	// Path is the composed single-page file.  It only exists after Run
	// returns if the scratch directory is kept.
	Path string `json:"path"`
}

type Result struct {
	Pages  []PageResult `json:"pages"`
	Boxes  int          `json:"boxes"`
	Output string       `json:"output"`
}

// Config holds the settings of a batch run.  The YAML keys are used for
// configuration files.
type Config struct {
	// Foreground is the directory of the text layer rasters.  The page
	// identifiers are the file names in this directory.
	Foreground string `yaml:"foreground"`

	// Background is the directory the regions are cropped from.
	Background string `yaml:"background"`

	// Detect is the directory of the rasters used to locate the regions.
	Detect string `yaml:"detect"`

	// Ext is the file name extension of all input rasters.
	Ext string `yaml:"ext"`

	// Out is the path of the assembled document.
	Out string `yaml:"out"`

	// ScratchDir is the parent of the scratch directory.  If empty, the
	// system temporary directory is used.
	ScratchDir  string `yaml:"scratch_dir"`
	KeepScratch bool   `yaml:"keep_scratch"`

	// Quality is the JPEG quality of the cropped regions.
	Quality int `yaml:"quality"`

	// Jobs is the number of pages processed concurrently.
	Jobs int `yaml:"jobs"`

	Logger logrus.FieldLogger `yaml:"-"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Foreground: "foreground",
		Background: "background",
		Detect:     "original_background",
		Ext:        ".tif",
		Out:        "output.pdf",
		Quality:    pdfpage.DefaultQuality,
		Jobs:       1,
	}
}

// withDefaults fills in unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Foreground == "" {
		c.Foreground = def.Foreground
	}
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.Detect == "" {
		c.Detect = def.Detect
	}
	if c.Ext == "" {
		c.Ext = def.Ext
	}
	if c.Out == "" {
		c.Out = def.Out
	}
	if c.Quality <= 0 {
		c.Quality = def.Quality
	}
	if c.Jobs < 1 {
		c.Jobs = def.Jobs
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}
