package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/scan2pdf/internal/boxes"
	"github.com/thywilljoshua/scan2pdf/internal/raster"
)

func boxesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boxes <image>",
		Short: "Print the bounding boxes found in a detection raster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := raster.Open(args[0])
			if err != nil {
				return err
			}
			bb, err := boxes.Extract(raster.Gray(img.Image))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if bb == nil {
				bb = []boxes.Box{}
			}
			b, _ := json.MarshalIndent(bb, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
