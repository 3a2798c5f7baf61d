package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImageLinearizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	buf, err := FromImage(img)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, buf.Pix[buf.Index(0, 0)], 1e-6, "black stays black in linear")
	assert.InDelta(t, 1.0, buf.Pix[buf.Index(1, 0)], 1e-5, "white stays white in linear")
	assert.InDelta(t, 1.0, buf.Pix[buf.Index(0, 0)+3], 1e-5, "alpha is carried through")
}

func TestImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 128, B: 30, A: 255})
		}
	}

	buf, err := FromImage(img)
	require.NoError(t, err)
	back := buf.ToImage()

	// Linearize/encode round trip may be off by one quantization step.
	got := back.NRGBAAt(1, 1)
	assert.InDelta(t, 200, int(got.R), 1, "red channel survives the round trip")
	assert.InDelta(t, 128, int(got.G), 1, "green channel survives the round trip")
	assert.InDelta(t, 30, int(got.B), 1, "blue channel survives the round trip")
	assert.Equal(t, uint8(255), got.A)
}

func TestFromImageNonZeroBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	img.SetNRGBA(10, 20, color.NRGBA{R: 255, A: 255})

	buf, err := FromImage(img)
	require.NoError(t, err)
	require.Equal(t, 4, buf.Width)
	require.Equal(t, 3, buf.Height)
	assert.InDelta(t, 1.0, buf.Pix[buf.Index(0, 0)], 1e-5, "bounds minimum maps to raster origin")
}

func TestQuantizeClamps(t *testing.T) {
	assert.Equal(t, uint8(0), quantize(-0.5), "negative values clamp to 0")
	assert.Equal(t, uint8(255), quantize(3.0), "out-of-gamut values clamp to 255")
	assert.Equal(t, uint8(128), quantize(0.5019608), "in-range values round")
}
