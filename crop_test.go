package colorkey

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBlock returns a w×h transparent image with an opaque red block over r.
func withBlock(w, h int, r image.Rectangle) *image.NRGBA {
	img := filled(w, h, Transparent)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	return img
}

func TestDetectObjectBounds(t *testing.T) {
	t.Run("EmptyMask", func(t *testing.T) {
		mask := image.NewGray(image.Rect(0, 0, 10, 10))
		_, found := detectObjectBounds(mask, 10)
		assert.False(t, found, "expected no object found in empty mask")
	})

	t.Run("SinglePixel", func(t *testing.T) {
		mask := image.NewGray(image.Rect(0, 0, 10, 10))
		mask.SetGray(5, 5, color.Gray{Y: 255})
		bounds, found := detectObjectBounds(mask, 10)
		require.True(t, found)
		assert.Equal(t, image.Rect(5, 5, 6, 6), bounds.rect())
		assert.Equal(t, 1, bounds.Width)
		assert.Equal(t, 1, bounds.Height)
	})

	t.Run("Rectangle", func(t *testing.T) {
		mask := image.NewGray(image.Rect(0, 0, 10, 10))
		// 2x2 square from (2,2) to (3,3)
		mask.SetGray(2, 2, color.Gray{Y: 255})
		mask.SetGray(3, 2, color.Gray{Y: 255})
		mask.SetGray(2, 3, color.Gray{Y: 255})
		mask.SetGray(3, 3, color.Gray{Y: 255})

		bounds, found := detectObjectBounds(mask, 10)
		require.True(t, found)
		assert.Equal(t, image.Rect(2, 2, 4, 4), bounds.rect())
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		mask := image.NewGray(image.Rect(0, 0, 10, 10))
		mask.SetGray(1, 1, color.Gray{Y: 9})
		mask.SetGray(7, 8, color.Gray{Y: 10})

		bounds, found := detectObjectBounds(mask, 10)
		require.True(t, found)
		assert.Equal(t, image.Rect(7, 8, 8, 9), bounds.rect())
	})
}

func TestContentBounds(t *testing.T) {
	img := withBlock(20, 10, image.Rect(3, 2, 9, 7))
	img.SetNRGBA(15, 8, color.NRGBA{0, 0, 0, 1})

	rect, ok := ContentBounds(img)
	require.True(t, ok)
	assert.Equal(t, image.Rect(3, 2, 16, 9), rect)

	_, ok = ContentBounds(filled(4, 4, Transparent))
	assert.False(t, ok)
}

func TestCropToContent(t *testing.T) {
	block := image.Rect(40, 40, 60, 60)
	img := withBlock(100, 100, block)

	t.Run("BasicCrop", func(t *testing.T) {
		res, region, ok := CropToContent(img, nil)
		require.True(t, ok)
		assert.Equal(t, block, region)
		assert.Equal(t, image.Rect(0, 0, 20, 20), res.Bounds())
		for y := range 20 {
			for x := range 20 {
				require.Equal(t, img.NRGBAAt(x+40, y+40), res.NRGBAAt(x, y))
			}
		}
	})

	t.Run("MarginCrop", func(t *testing.T) {
		res, region, ok := CropToContent(img, &CropConfig{Margin: 5})
		require.True(t, ok)
		assert.Equal(t, image.Rect(35, 35, 65, 65), region)
		assert.Equal(t, 30, res.Bounds().Dx())
		assert.Equal(t, 30, res.Bounds().Dy())
	})

	t.Run("MarginPercent", func(t *testing.T) {
		// 50% of a 20px object is a 10px margin on each side
		res, _, ok := CropToContent(img, &CropConfig{MarginPercent: 0.5})
		require.True(t, ok)
		assert.Equal(t, 40, res.Bounds().Dx())
		assert.Equal(t, 40, res.Bounds().Dy())
	})

	t.Run("MarginClampedToImage", func(t *testing.T) {
		edge := withBlock(10, 10, image.Rect(0, 0, 3, 3))
		_, region, ok := CropToContent(edge, &CropConfig{Margin: 2})
		require.True(t, ok)
		assert.Equal(t, image.Rect(0, 0, 5, 5), region)
	})

	t.Run("SquareCrop", func(t *testing.T) {
		wide := withBlock(100, 100, image.Rect(40, 45, 60, 55))
		res, region, ok := CropToContent(wide, &CropConfig{SquareCrop: true})
		require.True(t, ok)
		assert.Equal(t, image.Rect(40, 40, 60, 60), region)
		assert.Equal(t, res.Bounds().Dx(), res.Bounds().Dy())
	})

	t.Run("SquareCropAtEdge", func(t *testing.T) {
		wide := withBlock(100, 100, image.Rect(0, 0, 20, 10))
		_, region, ok := CropToContent(wide, &CropConfig{SquareCrop: true})
		require.True(t, ok)
		assert.Equal(t, image.Rect(0, 0, 20, 20), region)
	})

	t.Run("MinAlpha", func(t *testing.T) {
		faint := withBlock(10, 10, image.Rect(4, 4, 6, 6))
		faint.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 20})

		_, region, ok := CropToContent(faint, nil)
		require.True(t, ok)
		assert.Equal(t, image.Rect(0, 0, 6, 6), region)

		_, region, ok = CropToContent(faint, &CropConfig{MinAlpha: 21})
		require.True(t, ok)
		assert.Equal(t, image.Rect(4, 4, 6, 6), region)
	})

	t.Run("NothingVisible", func(t *testing.T) {
		empty := filled(7, 5, Transparent)
		res, region, ok := CropToContent(empty, nil)
		assert.False(t, ok)
		assert.Same(t, empty, res)
		assert.Equal(t, empty.Bounds(), region)
	})

	t.Run("ContentFillsImage", func(t *testing.T) {
		full := withBlock(6, 4, image.Rect(0, 0, 6, 4))
		res, _, ok := CropToContent(full, nil)
		assert.False(t, ok)
		assert.Same(t, full, res)
	})
}

func TestKeyDetectedThenCrop(t *testing.T) {
	// logo on a teal background
	bg := color.NRGBA{0, 128, 128, 255}
	img := filled(50, 30, bg)
	for y := 10; y < 18; y++ {
		for x := 12; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{250, 250, 250, 255})
		}
	}
	img.SetNRGBA(45, 25, color.NRGBA{5, 130, 126, 255})

	keyed, _, err := KeyDetected(img, 30)
	require.NoError(t, err)

	want, ok := ContentBounds(keyed)
	require.True(t, ok)

	out, region, cropped := CropToContent(keyed, nil)
	require.True(t, cropped)
	assert.Equal(t, image.Rect(12, 10, 40, 18), region)
	assert.Equal(t, want.Dx(), out.Bounds().Dx())
	assert.Equal(t, want.Dy(), out.Bounds().Dy())
}

func TestGrow(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi, diff   int
		limLo, limHi   int
		wantLo, wantHi int
	}{
		{"Centered", 10, 20, 4, 0, 100, 8, 22},
		{"Odd", 10, 20, 5, 0, 100, 8, 23},
		{"AgainstLow", 1, 5, 6, 0, 100, 0, 10},
		{"AgainstHigh", 95, 99, 6, 0, 100, 90, 100},
		{"NoRoom", 0, 10, 20, 0, 12, 0, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := grow(tt.lo, tt.hi, tt.diff, tt.limLo, tt.limHi)
			assert.Equal(t, tt.wantLo, lo)
			assert.Equal(t, tt.wantHi, hi)
		})
	}
}
