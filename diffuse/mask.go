package diffuse

import (
	"github.com/chewxy/math32"

	"github.com/rasterlab/diffuse/raster"
)

// defaultNoiseAmplitude is the sigma of the inpainting bootstrap noise.
const defaultNoiseAmplitude = 0.2

// BuildMask builds the opacity mask for luminance-threshold masking: a
// pixel is masked in (processed) when any of its first three channels
// exceeds the threshold in scene-linear terms.
func BuildMask(in *raster.Buffer, threshold float32) raster.Mask {
	mask := raster.NewMask(in.Width, in.Height)

	raster.Parallel(in.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * in.Width
			for x := 0; x < in.Width; x++ {
				k := (row + x) * raster.Channels
				if in.Pix[k] > threshold || in.Pix[k+1] > threshold || in.Pix[k+2] > threshold {
					mask[row+x] = 1
				}
			}
		}
	})

	return mask
}

// InpaintSeed fills masked pixels with bounded non-negative noise so the
// diffusion solver has a bootstrap value to converge from, and copies the
// original value for every unmasked pixel. The seeded buffer replaces the
// nominal input for the first iteration only.
func InpaintSeed(seeded, original *raster.Buffer, mask raster.Mask, amplitude float32) {
	raster.Parallel(original.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * original.Width
			for x := 0; x < original.Width; x++ {
				k := (row + x) * raster.Channels
				if mask[row+x] != 0 {
					state := newNoiseState(uint32(x), uint32(y))
					flip := x%2 != 0 || y%2 != 0
					for c := 0; c < raster.Channels; c++ {
						seeded.Pix[k+c] = math32.Max(gaussianNoise(1, amplitude, flip, &state), 0)
					}
				} else {
					for c := 0; c < raster.Channels; c++ {
						seeded.Pix[k+c] = original.Pix[k+c]
					}
				}
			}
		}
	})
}
