package colorkey

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Mask classifies every pixel of an image: 0 marks background, anything else
// marks content. The returned mask has the same bounds as the image.
type Mask func(img image.Image) *image.Gray

// WhiteMask marks a pixel as background when R, G and B are all strictly greater
// than 255-tolerance.
func WhiteMask(tolerance int) Mask {
	floor := maxTolerance - tolerance
	return func(img image.Image) *image.Gray {
		return classify(img, func(c color.NRGBA) bool {
			return int(c.R) > floor && int(c.G) > floor && int(c.B) > floor
		})
	}
}

// MaskFromBackground builds a mask by comparing each pixel to a given background color.
// A pixel is background when every channel differs from bg by strictly less than
// tolerance; alpha is ignored.
func MaskFromBackground(img image.Image, bg color.Color, tolerance int) *image.Gray {
	return BackgroundMask(bg, tolerance)(img)
}

// BackgroundMask is MaskFromBackground as a Mask.
func BackgroundMask(bg color.Color, tolerance int) Mask {
	ref := color.NRGBAModel.Convert(bg).(color.NRGBA)
	return func(img image.Image) *image.Gray {
		return classify(img, func(c color.NRGBA) bool {
			return absDiff(c.R, ref.R) < tolerance &&
				absDiff(c.G, ref.G) < tolerance &&
				absDiff(c.B, ref.B) < tolerance
		})
	}
}

// MaskFromAlpha uses the image’s alpha channel as mask.
func MaskFromAlpha(img image.Image) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			mask.SetGray(x, y, color.Gray{Y: uint8(a >> 8)})
		}
	}
	return mask
}

func classify(img image.Image, isBackground func(c color.NRGBA) bool) *image.Gray {
	bounds := img.Bounds()
	src := asNRGBA(img)
	// src is zero-based when img had to be converted
	off := bounds.Min.Sub(src.Bounds().Min)

	mask := image.NewGray(bounds)
	forRows(bounds, func(y int) {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isBackground(src.NRGBAAt(x-off.X, y-off.Y)) {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	})
	return mask
}

func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

// cornerMismatch returns the corners of img whose color differs from the top-left
// pixel by tolerance or more in some channel. A non-empty result means the
// detected background is unlikely to be uniform.
func cornerMismatch(img *image.NRGBA, tolerance int) []image.Point {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil
	}

	ref := img.NRGBAAt(bounds.Min.X, bounds.Min.Y)
	corners := []image.Point{
		{X: bounds.Max.X - 1, Y: bounds.Min.Y},
		{X: bounds.Min.X, Y: bounds.Max.Y - 1},
		{X: bounds.Max.X - 1, Y: bounds.Max.Y - 1},
	}

	var mismatched []image.Point
	for _, p := range corners {
		c := img.NRGBAAt(p.X, p.Y)
		if absDiff(c.R, ref.R) >= tolerance || absDiff(c.G, ref.G) >= tolerance || absDiff(c.B, ref.B) >= tolerance {
			mismatched = append(mismatched, p)
		}
	}
	return mismatched
}
