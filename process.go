package colorkey

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
)

// Mode selects how the background color is chosen.
type Mode int

const (
	// ModeWhite keys near-white pixels and keeps the image size.
	ModeWhite Mode = iota
	// ModeDetect keys the color of the top-left pixel and crops to the content.
	ModeDetect
)

func (m Mode) String() string {
	switch m {
	case ModeWhite:
		return "white"
	case ModeDetect:
		return "detect"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "white" and "detect" (alias "auto").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return ModeWhite, nil
	case "detect", "auto":
		return ModeDetect, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Config describes a single file conversion.
type Config struct {
	Mode   Mode
	Input  string
	Output string
	// Tolerance is used as given, 0 included. See DefaultConfig.
	Tolerance int
	// Crop configures the crop of ModeDetect; nil crops to the exact content box.
	Crop *CropConfig
	// NoCrop disables the crop of ModeDetect. ModeWhite never crops.
	NoCrop bool
	Logger *slog.Logger
}

// DefaultConfig returns a Config with DefaultTolerance.
func DefaultConfig(mode Mode, input, output string) Config {
	return Config{
		Mode:      mode,
		Input:     input,
		Output:    output,
		Tolerance: DefaultTolerance,
	}
}

// Result describes a finished conversion.
type Result struct {
	Input  string
	Output string
	// Format is the decoded source format, e.g. "png" or "jpeg".
	Format string
	Width  int
	Height int

	SourceWidth  int
	SourceHeight int

	// Background is the reference color the pixels were compared with.
	Background color.NRGBA
	// Bounds is the crop region in source coordinates, the full image when not cropped.
	Bounds  image.Rectangle
	Cropped bool
}

// Process decodes cfg.Input, keys its background and writes the result to
// cfg.Output as PNG. Parameters are validated before any file is touched.
func Process(cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("mode", cfg.Mode.String())

	if cfg.Mode != ModeWhite && cfg.Mode != ModeDetect {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, cfg.Mode)
	}
	if err := validateTolerance(cfg.Tolerance); err != nil {
		return nil, err
	}

	src, format, err := Decode(cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Debug("decoded input", "input", cfg.Input, "format", format, "width", src.Rect.Dx(), "height", src.Rect.Dy())

	res := &Result{
		Input:        cfg.Input,
		Output:       cfg.Output,
		Format:       format,
		SourceWidth:  src.Rect.Dx(),
		SourceHeight: src.Rect.Dy(),
		Bounds:       src.Bounds(),
	}

	var out *image.NRGBA
	switch cfg.Mode {
	case ModeWhite:
		out, err = KeyWhite(src, cfg.Tolerance)
		if err != nil {
			return nil, err
		}
		res.Background = White

	case ModeDetect:
		out, res.Background, err = KeyDetected(src, cfg.Tolerance)
		if err != nil {
			return nil, err
		}
		logger.Info("detected background color", "color", formatColor(res.Background))
		if corners := cornerMismatch(src, cfg.Tolerance); len(corners) > 0 {
			logger.Warn("corners differ from the detected background", "corners", corners)
		}

		if !cfg.NoCrop {
			out, res.Bounds, res.Cropped = CropToContent(out, cfg.Crop)
			if !res.Cropped {
				logger.Debug("crop skipped", "reason", cropSkipReason(out))
			}
		}
	}

	if err := Encode(cfg.Output, out); err != nil {
		return nil, err
	}

	res.Width, res.Height = out.Rect.Dx(), out.Rect.Dy()
	logger.Info("processed image",
		"input", cfg.Input,
		"output", cfg.Output,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"cropped", res.Cropped,
	)

	return res, nil
}

func cropSkipReason(img *image.NRGBA) string {
	if _, ok := ContentBounds(img); !ok {
		return "no visible pixels"
	}
	return "content fills the image"
}

func formatColor(c color.NRGBA) string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}
