package colorkey

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	// DefaultTolerance is the per-channel tolerance used by the CLI and DefaultConfig.
	DefaultTolerance = 30
	maxTolerance     = 255
)

var (
	ErrInvalidTolerance = errors.New("invalid tolerance")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrEmptyImage       = errors.New("image has no pixels")
	ErrDecode           = errors.New("decode input")
	ErrEncode           = errors.New("encode output")
)

// Transparent replaces every pixel classified as background.
var Transparent = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// White is the reference color of KeyWhite.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func validateTolerance(tolerance int) error {
	if tolerance < 0 || tolerance > maxTolerance {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidTolerance, tolerance, maxTolerance)
	}
	return nil
}

// KeyWhite makes near-white pixels transparent. A pixel is background when each
// of R, G and B is strictly greater than 255-tolerance. The result has the same
// size as img; img itself is not modified.
func KeyWhite(img image.Image, tolerance int) (*image.NRGBA, error) {
	if err := validateTolerance(tolerance); err != nil {
		return nil, err
	}

	out := imaging.Clone(img)
	if out.Rect.Empty() {
		return nil, ErrEmptyImage
	}

	ApplyMask(out, WhiteMask(tolerance)(out))
	return out, nil
}

// KeyDetected takes the pixel at the top-left corner as the background color and
// makes every pixel whose R, G and B each differ from it by strictly less than
// tolerance transparent. It returns the keyed copy and the detected color.
func KeyDetected(img image.Image, tolerance int) (*image.NRGBA, color.NRGBA, error) {
	if err := validateTolerance(tolerance); err != nil {
		return nil, color.NRGBA{}, err
	}

	out := imaging.Clone(img)
	if out.Rect.Empty() {
		return nil, color.NRGBA{}, ErrEmptyImage
	}

	bg := out.NRGBAAt(0, 0)
	ApplyMask(out, BackgroundMask(bg, tolerance)(out))
	return out, bg, nil
}

// ApplyMask replaces every pixel of img whose mask value is zero with Transparent.
// Pixels with a non-zero mask value are left untouched.
func ApplyMask(img *image.NRGBA, mask *image.Gray) {
	bounds := img.Bounds()
	forRows(bounds, func(y int) {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				img.SetNRGBA(x, y, Transparent)
			}
		}
	})
}

// forRows runs fn for every row of bounds, split in contiguous chunks across CPUs.
func forRows(bounds image.Rectangle, fn func(y int)) {
	numCPU := runtime.NumCPU()
	chunk := (bounds.Dy() + numCPU - 1) / numCPU

	var wg sync.WaitGroup
	for i := range numCPU {
		startY := bounds.Min.Y + i*chunk
		endY := min(startY+chunk, bounds.Max.Y)
		if startY >= endY {
			continue
		}

		wg.Go(func() {
			for y := startY; y < endY; y++ {
				fn(y)
			}
		})
	}

	wg.Wait()
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
