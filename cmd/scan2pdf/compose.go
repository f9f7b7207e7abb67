package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thywilljoshua/scan2pdf/internal/convert"
)

func composeCmd() *cobra.Command {
	var configPath string
	conf := convert.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "compose [id...]",
		Short: "Compose every page and assemble them into one PDF",
		Long: `Compose combines three layers per scanned page: the foreground text
layer, a background layer the embedded pictures are cut from, and a
detection layer marking the position of each picture.  All three are TIFF
files with the same name in their respective directories.

Without arguments, every page in the foreground directory is processed in
lexical order.  Otherwise the pages are processed in the order given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf
			if configPath != "" {
				cfg = convert.DefaultConfig()
				if err := convert.LoadConfig(configPath, &cfg); err != nil {
					return err
				}
				overrideFlags(cmd.Flags(), &cfg, conf)
			}
			cfg.Logger = logrus.StandardLogger()

			ids := args
			if len(ids) == 0 {
				var err error
				ids, err = convert.ListPages(cfg.Foreground, cfg.Ext)
				if err != nil {
					return err
				}
			}

			res, err := convert.Run(cmd.Context(), ids, cfg)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with default settings")
	f.StringVar(&conf.Foreground, "foreground", conf.Foreground, "directory of the foreground (text) rasters")
	f.StringVar(&conf.Background, "background", conf.Background, "directory of the rasters regions are cropped from")
	f.StringVar(&conf.Detect, "detect", conf.Detect, "directory of the rasters used to locate regions")
	f.StringVar(&conf.Ext, "ext", conf.Ext, "file name extension of the input rasters")
	f.StringVarP(&conf.Out, "out", "o", conf.Out, "output PDF file")
	f.StringVar(&conf.ScratchDir, "scratch", "", "parent directory for intermediate files (default: system temp dir)")
	f.BoolVar(&conf.KeepScratch, "keep-scratch", false, "keep intermediate files")
	f.IntVar(&conf.Quality, "quality", conf.Quality, "JPEG quality of the cropped regions (1-100)")
	f.IntVar(&conf.Jobs, "jobs", conf.Jobs, "number of pages processed concurrently")
	return cmd
}

// overrideFlags copies the settings given explicitly on the command line
// from flags into cfg.
func overrideFlags(fs *pflag.FlagSet, cfg *convert.Config, flags convert.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "foreground":
			cfg.Foreground = flags.Foreground
		case "background":
			cfg.Background = flags.Background
		case "detect":
			cfg.Detect = flags.Detect
		case "ext":
			cfg.Ext = flags.Ext
		case "out":
			cfg.Out = flags.Out
		case "scratch":
			cfg.ScratchDir = flags.ScratchDir
		case "keep-scratch":
			cfg.KeepScratch = flags.KeepScratch
		case "quality":
			cfg.Quality = flags.Quality
		case "jobs":
			cfg.Jobs = flags.Jobs
		}
	})
}
