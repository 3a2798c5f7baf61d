// Package wavelet - à-trous B-spline decomposition for multi-scale filtering.
//
// The decomposition is non-downsampled: spatial resolution is preserved at
// every scale and only the effective support of the 5×5 binomial filter
// grows, by dilating the tap spacing with 2^scale. Each level splits its
// input into a blurred low-frequency band and the residual high-frequency
// band, so high + low always reconstructs the input exactly.
//
// See https://jo.dreggn.org/home/2010_atrous.pdf and
// https://eng.aurelienpierre.com/2021/03/rotation-invariant-laplacian-for-2d-grids/
package wavelet

import (
	"github.com/chewxy/math32"

	"github.com/rasterlab/diffuse/raster"
)

const (
	// BSplineSigma is the standard deviation of the Gaussian best
	// approximated by the 5-tap B-spline filter.
	BSplineSigma = 1.0553651328015339

	// MaxScales caps the pyramid depth regardless of the requested radius.
	MaxScales = 12

	// filterSize is the tap count of the separable B-spline filter.
	filterSize = 5
)

// bspline is the separable binomial filter {1, 4, 6, 4, 1}/16.
var bspline = [filterSize]float32{
	1.0 / 16.0, 4.0 / 16.0, 6.0 / 16.0, 4.0 / 16.0, 1.0 / 16.0,
}

// Decompose splits in into one low-frequency and one high-frequency band.
//
// Arguments:
// - in: Input raster for this scale (the previous scale's low band).
// - highFreq: Output residual band, in − lowFreq per channel.
// - lowFreq: Output blurred band.
// - dilation: Tap spacing, 2^scale. Out-of-bounds taps clamp to the edge.
//
// All three buffers must share dimensions; rows are processed in parallel.
func Decompose(in, highFreq, lowFreq *raster.Buffer, dilation int) {
	width := in.Width
	height := in.Height

	raster.Parallel(height, func(partStart, partEnd int) {
		for i := partStart; i < partEnd; i++ {
			for j := 0; j < width; j++ {
				index := (i*width + j) * raster.Channels
				var acc [raster.Channels]float32

				for ii := 0; ii < filterSize; ii++ {
					row := raster.ClampCoord(i+dilation*(ii-(filterSize-1)/2), height)
					for jj := 0; jj < filterSize; jj++ {
						col := raster.ClampCoord(j+dilation*(jj-(filterSize-1)/2), width)
						kIndex := (row*width + col) * raster.Channels

						weight := bspline[ii] * bspline[jj]
						for c := 0; c < raster.Channels; c++ {
							acc[c] += weight * in.Pix[kIndex+c]
						}
					}
				}

				for c := 0; c < raster.Channels; c++ {
					lowFreq.Pix[index+c] = acc[c]
					highFreq.Pix[index+c] = in.Pix[index+c] - acc[c]
				}
			}
		}
	})
}

// EquivalentSigmaAtStep returns the real-space blur standard deviation
// reached after stacking step+1 dilated blurs of the given base sigma.
// The first level is step 0 and returns sigma unchanged; each further level
// combines quadratically with its 2^step-dilated kernel spread.
func EquivalentSigmaAtStep(sigma float32, step int) float32 {
	if step <= 0 {
		return sigma
	}
	prev := EquivalentSigmaAtStep(sigma, step-1)
	dilated := math32.Exp2(float32(step)) * sigma
	return math32.Sqrt(prev*prev + dilated*dilated)
}

// ScalesNeeded computes how many pyramid levels of constant filter sigma are
// required before the cumulative blur meets or exceeds the target sigma.
// The result is at least 1; callers clamp it to MaxScales.
func ScalesNeeded(sigmaFilter, sigmaFinal float32) int {
	s := 0
	radius := sigmaFilter
	for radius < sigmaFinal {
		s++
		dilated := float32(int(1)<<uint(s)) * sigmaFilter
		radius = math32.Sqrt(radius*radius + dilated*dilated)
	}
	return s + 1
}

// NormalizeLaplacian returns the scaling coefficient that makes a wavelet
// band approximate a true Laplacian at the given blur sigma.
func NormalizeLaplacian(sigma float32) float32 {
	return 2 * math32.Pi / (math32.Sqrt(math32.Pi) * sigma * sigma)
}
