package wavelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasterlab/diffuse/raster"
)

// gradientRaster builds a deterministic test image with structure in both axes.
func gradientRaster(t *testing.T, width, height int) *raster.Buffer {
	t.Helper()
	buf, err := raster.NewBuffer(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := buf.Index(x, y)
			buf.Pix[i+0] = float32(x) * 0.01
			buf.Pix[i+1] = float32(y) * 0.02
			buf.Pix[i+2] = float32(x+y) * 0.005
			buf.Pix[i+3] = 1
		}
	}
	return buf
}

func TestDecomposeRoundTrip(t *testing.T) {
	in := gradientRaster(t, 16, 12)
	hf, err := raster.NewBuffer(16, 12)
	require.NoError(t, err)
	lf, err := raster.NewBuffer(16, 12)
	require.NoError(t, err)

	for _, dilation := range []int{1, 2, 4} {
		Decompose(in, hf, lf, dilation)
		for i := range in.Pix {
			require.InDelta(t, in.Pix[i], hf.Pix[i]+lf.Pix[i], 1e-6,
				"high + low must reconstruct the input at sample %d, dilation %d", i, dilation)
		}
	}
}

func TestDecomposeFlatFieldHasNoDetail(t *testing.T) {
	in, err := raster.NewBuffer(8, 8)
	require.NoError(t, err)
	for i := range in.Pix {
		in.Pix[i] = 0.6
	}
	hf, err := raster.NewBuffer(8, 8)
	require.NoError(t, err)
	lf, err := raster.NewBuffer(8, 8)
	require.NoError(t, err)

	Decompose(in, hf, lf, 1)
	for i := range in.Pix {
		require.InDelta(t, 0.6, lf.Pix[i], 1e-6, "blur of a constant is the constant")
		require.InDelta(t, 0, hf.Pix[i], 1e-6, "a flat field has no high-frequency residual")
	}
}

func TestDecomposeSinglePixel(t *testing.T) {
	in, err := raster.NewBuffer(1, 1)
	require.NoError(t, err)
	in.Pix[0] = 0.3
	hf, err := raster.NewBuffer(1, 1)
	require.NoError(t, err)
	lf, err := raster.NewBuffer(1, 1)
	require.NoError(t, err)

	// All taps clamp to the only pixel; must not panic.
	Decompose(in, hf, lf, 4)
	assert.InDelta(t, 0.3, lf.Pix[0], 1e-6)
	assert.InDelta(t, 0, hf.Pix[0], 1e-6)
}

func TestEquivalentSigmaAtStepBaseCase(t *testing.T) {
	assert.Equal(t, float32(1.5), EquivalentSigmaAtStep(1.5, 0), "step 0 returns the base sigma")
}

func TestEquivalentSigmaStrictlyIncreasing(t *testing.T) {
	for _, sigma := range []float32{0.5, 1, BSplineSigma, 3} {
		prev := EquivalentSigmaAtStep(sigma, 0)
		for step := 1; step <= MaxScales; step++ {
			cur := EquivalentSigmaAtStep(sigma, step)
			require.Greater(t, cur, prev, "sigma=%v step=%d", sigma, step)
			prev = cur
		}
	}
}

func TestScalesNeededLowerBound(t *testing.T) {
	assert.Equal(t, 1, ScalesNeeded(2, 1), "target below the filter sigma needs a single scale")
	assert.Equal(t, 1, ScalesNeeded(2, 2), "target equal to the filter sigma needs a single scale")
}

func TestScalesNeededTightBound(t *testing.T) {
	sigma := float32(BSplineSigma)
	for _, target := range []float32{1, 2, 5, 10, 40, 100, 300} {
		n := ScalesNeeded(sigma, target)
		require.GreaterOrEqual(t, n, 1)

		reached := EquivalentSigmaAtStep(sigma, n-1)
		assert.GreaterOrEqual(t, reached, target, "scale count %d must reach the target %v", n, target)
		if n >= 2 {
			under := EquivalentSigmaAtStep(sigma, n-2)
			assert.Less(t, under, target, "one scale fewer must fall short of the target %v", target)
		}
	}
}

func TestNormalizeLaplacian(t *testing.T) {
	// 2π / (√π σ²) at σ = 1.
	assert.InDelta(t, 3.5449077, NormalizeLaplacian(1), 1e-4)
	assert.Greater(t, NormalizeLaplacian(1), NormalizeLaplacian(2), "wider blurs scale down")
}
