package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/josuedeavila/colorkey"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	white := colorkey.DefaultConfig(colorkey.ModeWhite, "logo.png", "logo_restored.png")
	white.Logger = logger

	detect := colorkey.DefaultConfig(colorkey.ModeDetect, "logo.png", "public/logo_final.png")
	detect.Logger = logger

	for _, cfg := range []colorkey.Config{white, detect} {
		start := time.Now()
		result, err := colorkey.Process(cfg)
		if err != nil {
			logger.Error("processing failed", "mode", cfg.Mode, "err", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %dx%d in %v\n", result.Output, result.Width, result.Height, time.Since(start))
	}
}
