package diffuse

import (
	"github.com/rasterlab/diffuse/raster"
	"github.com/rasterlab/diffuse/stencil"
)

// diffuseScale runs the anisotropic heat-transfer update for one wavelet
// scale and accumulates it into the reconstruction buffer.
//
// For every masked-in pixel it gathers a 3×3 non-local neighborhood (taps
// spaced stencilRadius pixels apart, clamped at the image edges) from both
// frequency bands, builds the four per-order kernels (first/second driven by
// the low band, third/fourth by the high band), convolves them into four
// derivative estimates, regularizes by the local high-frequency variance,
// and adds the weighted update to the current high-frequency value. On the
// last scale the low band is added back so the accumulator reconstitutes the
// full signal; masked-out pixels pass their band values straight through.
func diffuseScale(highFreq, lowFreq *raster.Buffer, mask raster.Mask, out *raster.Buffer,
	sp *solverParams, stencilRadius int, lastScale bool, abcd [4]float32, strength float32) {

	width := highFreq.Width
	height := highFreq.Height

	raster.Parallel(height, func(partStart, partEnd int) {
		for i := partStart; i < partEnd; i++ {
			for j := 0; j < width; j++ {
				idx := i*width + j
				index := idx * raster.Channels

				if mask != nil && mask[idx] == 0 {
					// Excluded pixel: pass the band values through unchanged.
					for c := 0; c < raster.Channels; c++ {
						if lastScale {
							out.Pix[index+c] += highFreq.Pix[index+c] + lowFreq.Pix[index+c]
						} else {
							out.Pix[index+c] += highFreq.Pix[index+c]
						}
					}
					continue
				}

				// Non-local neighbor coordinates, clamped to the edges.
				jNeighbours := [3]int{
					raster.ClampCoord(j-stencilRadius*spatialStep, width),
					j,
					raster.ClampCoord(j+stencilRadius*spatialStep, width),
				}
				iNeighbours := [3]int{
					raster.ClampCoord(i-stencilRadius*spatialStep, height),
					i,
					raster.ClampCoord(i+stencilRadius*spatialStep, height),
				}

				// Fetch the non-local pixels into contiguous stencils.
				var neighbourHF, neighbourLF stencil.Neighborhood
				for ii := 0; ii < 3; ii++ {
					rowBase := iNeighbours[ii] * width
					for jj := 0; jj < 3; jj++ {
						src := (rowBase + jNeighbours[jj]) * raster.Channels
						for c := 0; c < raster.Channels; c++ {
							neighbourHF[3*ii+jj][c] = highFreq.Pix[src+c]
							neighbourLF[3*ii+jj][c] = lowFreq.Pix[src+c]
						}
					}
				}

				for c := 0; c < raster.Channels; c++ {
					// Convolve the per-order anisotropic kernels and estimate
					// the local variance from the high-frequency taps.
					var derivatives [4]float32
					var variance float32
					var kernel stencil.Kernel

					for k := 0; k < 9; k++ {
						variance += neighbourHF[k][c] * neighbourHF[k][c]
					}
					if sp.compute[0] {
						stencil.ComputeKernel(&neighbourLF, c, sp.anisotropy[0], sp.mode[0], sp.useGradient[0], &kernel)
						derivatives[0] = stencil.Convolve(&kernel, &neighbourLF, c)
					}
					if sp.compute[1] {
						stencil.ComputeKernel(&neighbourLF, c, sp.anisotropy[1], sp.mode[1], sp.useGradient[1], &kernel)
						derivatives[1] = stencil.Convolve(&kernel, &neighbourLF, c)
					}
					if sp.compute[2] {
						stencil.ComputeKernel(&neighbourHF, c, sp.anisotropy[2], sp.mode[2], sp.useGradient[2], &kernel)
						derivatives[2] = stencil.Convolve(&kernel, &neighbourHF, c)
					}
					if sp.compute[3] {
						stencil.ComputeKernel(&neighbourHF, c, sp.anisotropy[3], sp.mode[3], sp.useGradient[3], &kernel)
						derivatives[3] = stencil.Convolve(&kernel, &neighbourHF, c)
					}

					variance = sp.varianceThreshold + variance/9*sp.regularization

					var acc float32
					for k := 0; k < 4; k++ {
						acc += derivatives[k] * abcd[k]
					}
					acc = (highFreq.Pix[index+c] + acc/variance) * strength

					if lastScale {
						out.Pix[index+c] += acc + lowFreq.Pix[index+c]
					} else {
						out.Pix[index+c] += acc
					}
				}
			}
		}
	})
}
