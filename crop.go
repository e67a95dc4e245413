package colorkey

import (
	"image"

	"github.com/disintegration/imaging"
)

// CropConfig configures the crop applied after keying. The zero value crops to
// the exact bounding box of the non-transparent pixels.
type CropConfig struct {
	// Margin is the margin in pixels kept around the content
	Margin int
	// MarginPercent is the margin as a fraction of the content dimensions (overrides Margin if > 0)
	MarginPercent float64
	// MinAlpha is the minimum alpha for a pixel to count as content (default: 1)
	MinAlpha uint8
	// SquareCrop grows the shorter side so the crop is square, as far as the image allows
	SquareCrop bool
}

// objectBounds holds a content box. MaxX and MaxY are exclusive.
type objectBounds struct {
	MinX, MinY, MaxX, MaxY int
	Width, Height          int
}

func (b *objectBounds) rect() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func detectObjectBounds(mask *image.Gray, minThreshold uint8) (*objectBounds, bool) {
	bounds := mask.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	foundPixel := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y >= minThreshold {
				foundPixel = true
				minX = min(minX, x)
				maxX = max(maxX, x)
				minY = min(minY, y)
				maxY = max(maxY, y)
			}
		}
	}

	if !foundPixel {
		return nil, false
	}

	return &objectBounds{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX + 1,
		MaxY:   maxY + 1,
		Width:  maxX + 1 - minX,
		Height: maxY + 1 - minY,
	}, true
}

// ContentBounds returns the smallest rectangle holding every pixel of img with a
// non-zero alpha. ok is false when the image is fully transparent.
func ContentBounds(img image.Image) (rect image.Rectangle, ok bool) {
	b, ok := detectObjectBounds(MaskFromAlpha(img), 1)
	if !ok {
		return image.Rectangle{}, false
	}
	return b.rect(), true
}

// CropToContent crops img to its non-transparent content. When nothing is visible,
// or the crop would cover the whole image, img is returned as is with cropped set
// to false. The returned rectangle is the crop region in img's coordinates.
func CropToContent(img *image.NRGBA, config *CropConfig) (out *image.NRGBA, region image.Rectangle, cropped bool) {
	if config == nil {
		config = &CropConfig{}
	}

	return crop(img, MaskFromAlpha(img), config)
}

func crop(img *image.NRGBA, maskImg *image.Gray, config *CropConfig) (*image.NRGBA, image.Rectangle, bool) {
	bounds := img.Bounds()

	minAlpha := config.MinAlpha
	if minAlpha == 0 {
		minAlpha = 1
	}

	objBounds, ok := detectObjectBounds(maskImg, minAlpha)
	if !ok {
		return img, bounds, false
	}

	margin := max(config.Margin, 0)
	if config.MarginPercent > 0 {
		marginX := int(float64(objBounds.Width) * config.MarginPercent)
		marginY := int(float64(objBounds.Height) * config.MarginPercent)
		margin = max(marginX, marginY)
	}

	cropMinX := max(bounds.Min.X, objBounds.MinX-margin)
	cropMinY := max(bounds.Min.Y, objBounds.MinY-margin)
	cropMaxX := min(bounds.Max.X, objBounds.MaxX+margin)
	cropMaxY := min(bounds.Max.Y, objBounds.MaxY+margin)

	if config.SquareCrop {
		cropW := cropMaxX - cropMinX
		cropH := cropMaxY - cropMinY
		if cropW > cropH {
			diff := cropW - cropH
			cropMinY, cropMaxY = grow(cropMinY, cropMaxY, diff, bounds.Min.Y, bounds.Max.Y)
		} else if cropH > cropW {
			diff := cropH - cropW
			cropMinX, cropMaxX = grow(cropMinX, cropMaxX, diff, bounds.Min.X, bounds.Max.X)
		}
	}

	rect := image.Rect(cropMinX, cropMinY, cropMaxX, cropMaxY)
	if rect == bounds {
		return img, rect, false
	}

	return imaging.Crop(img, rect), rect, true
}

// grow widens [lo,hi) by diff, split between both ends. Whatever cannot fit on one
// side of [limLo,limHi) is moved to the other.
func grow(lo, hi, diff, limLo, limHi int) (int, int) {
	before := diff / 2
	after := diff - before

	if room := lo - limLo; before > room {
		after += before - room
		before = room
	}
	if room := limHi - hi; after > room {
		before = min(before+after-room, lo-limLo)
		after = room
	}

	return lo - before, hi + after
}
