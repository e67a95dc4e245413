package main

import (
	"fmt"

	"github.com/josuedeavila/colorkey"
	"github.com/spf13/cobra"
)

func newWhiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "white",
		Short: "Make near-white pixels transparent, keeping the image size",
		Args:  cobra.NoArgs,
		RunE:  runWhite,
	}

	registerIOFlags(cmd)
	return cmd
}

func runWhite(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	tolerance, _ := cmd.Flags().GetInt("tolerance")

	cfg := colorkey.DefaultConfig(colorkey.ModeWhite, inputPath, outputPath)
	cfg.Tolerance = tolerance
	return run(cmd, cfg)
}

func registerIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Input image file")
	cmd.Flags().StringP("output", "o", "", "Output PNG file")
	cmd.Flags().IntP("tolerance", "t", envInt("COLORKEY_TOLERANCE", colorkey.DefaultTolerance), "Per-channel tolerance (0-255)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
}

func run(cmd *cobra.Command, cfg colorkey.Config) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	result, err := colorkey.Process(cfg)
	if err != nil {
		return fmt.Errorf("processing %s: %w", cfg.Input, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %s to %s\n", result.Input, result.Output)
	fmt.Fprintf(out, "Size: %dx%d", result.Width, result.Height)
	if result.Cropped {
		fmt.Fprintf(out, " (cropped from %dx%d)", result.SourceWidth, result.SourceHeight)
	}
	fmt.Fprintln(out)

	return nil
}
