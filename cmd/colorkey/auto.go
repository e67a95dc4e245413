package main

import (
	"github.com/josuedeavila/colorkey"
	"github.com/spf13/cobra"
)

func newAutoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Key the color of the top-left pixel and crop to the content",
		Args:  cobra.NoArgs,
		RunE:  runAuto,
	}

	registerIOFlags(cmd)
	cmd.Flags().Bool("no-crop", false, "Keep the full image size")
	cmd.Flags().Int("margin", 0, "Margin in pixels kept around the content")
	cmd.Flags().Bool("square", false, "Grow the crop to a square")
	return cmd
}

func runAuto(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	tolerance, _ := cmd.Flags().GetInt("tolerance")
	noCrop, _ := cmd.Flags().GetBool("no-crop")
	margin, _ := cmd.Flags().GetInt("margin")
	square, _ := cmd.Flags().GetBool("square")

	cfg := colorkey.DefaultConfig(colorkey.ModeDetect, inputPath, outputPath)
	cfg.Tolerance = tolerance
	cfg.NoCrop = noCrop
	cfg.Crop = &colorkey.CropConfig{
		Margin:     margin,
		SquareCrop: square,
	}
	return run(cmd, cfg)
}
