package raster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// The solver operates on scene-linear RGB. Display-referred 8-bit images
// coming from the host CLI are linearized on the way in and re-encoded on
// the way out with the sRGB transfer function.

// srgbToLinear decodes one sRGB-encoded sample to scene-linear.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB encodes one scene-linear sample for display.
func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1.0/2.4) - 0.055
}

// FromImage converts a decoded image into a scene-linear float raster.
//
// Arguments:
// - img: The source image; any color model supported by image.Image.
//
// Returns:
// - A new Buffer with linearized RGB and alpha in the fourth channel.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	Parallel(buf.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < buf.Width; x++ {
				r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				i := buf.Index(x, y)
				// RGBA() returns 16-bit values; normalize to [0, 1].
				buf.Pix[i+0] = srgbToLinear(float32(r) / 65535.0)
				buf.Pix[i+1] = srgbToLinear(float32(g) / 65535.0)
				buf.Pix[i+2] = srgbToLinear(float32(b) / 65535.0)
				buf.Pix[i+3] = float32(a) / 65535.0
			}
		}
	})

	return buf, nil
}

// ToImage converts a scene-linear raster back to an 8-bit NRGBA image,
// clamping out-of-gamut values.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))

	Parallel(b.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < b.Width; x++ {
				i := b.Index(x, y)
				img.SetNRGBA(x, y, color.NRGBA{
					R: quantize(linearToSRGB(b.Pix[i+0])),
					G: quantize(linearToSRGB(b.Pix[i+1])),
					B: quantize(linearToSRGB(b.Pix[i+2])),
					A: quantize(b.Pix[i+3]),
				})
			}
		}
	})

	return img
}

// quantize maps [0, 1] to an 8-bit sample with rounding.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
