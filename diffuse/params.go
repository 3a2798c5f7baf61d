// Package diffuse - multi-scale anisotropic diffusion of scene-linear RGB
// rasters, simulating directional heat transfer to blur, sharpen, denoise or
// inpaint an image.
//
// The solver decomposes the image with an à-trous B-spline wavelet, applies
// four anisotropic diffusion operators per scale and channel (two driven by
// the low-frequency band, two by the high-frequency band), and repeats the
// cycle for a configurable number of iterations while ping-ponging between
// two scratch buffers.
//
// Based on the simultaneous structure/texture inpainting model of
// https://www.researchgate.net/publication/220663968 generalized to a
// multi-scale wavelet setting with automatic direction detection and a
// variance regularization term.
package diffuse

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/rasterlab/diffuse/stencil"
)

// Discretization constants of the PDE solver.
const (
	// spatialStep is the spatial step H of the finite-difference grid.
	spatialStep = 1
	// kappa is the time-step stability constant, 0.25 for H = 1.
	kappa = 0.25
)

// Params are the user-facing diffusion controls, immutable for the duration
// of one Process call. The zero value is a valid no-op parameter set except
// for Iterations and Radius, which must be at least 1.
type Params struct {
	// Iterations is the number of diffusion passes, 1..128. More iterations
	// give the reaction more time; the effective count is rescaled by zoom.
	Iterations int
	// Radius is the diffusion scale in pixels at native resolution, 1..256.
	Radius int
	// Sharpness scales the high-frequency gain, -1..1.
	Sharpness float32
	// Regularization dampens the update in low-variance areas, 0..6
	// (log-scaled, converted internally to 10^x - 1).
	Regularization float32
	// VarianceThreshold offsets the variance estimate, -1..1 (log-scaled,
	// converted internally to 10^x).
	VarianceThreshold float32

	// AnisotropyFirst..AnisotropyFourth orient each diffusion order, -4..4.
	// Zero is isotropic, positive follows isophotes, negative follows
	// gradients; the magnitude controls the damping factor.
	AnisotropyFirst  float32
	AnisotropySecond float32
	AnisotropyThird  float32
	AnisotropyFourth float32

	// First..Fourth weight the four differential orders, -1..1: gradient,
	// Laplacian, gradient of Laplacian, Laplacian of Laplacian. Positive
	// values diffuse, negative values sharpen, zero disables the order.
	First  float32
	Second float32
	Third  float32
	Fourth float32

	// Threshold is the luminance masking threshold, 0..8. Zero disables
	// masking; any higher value restricts processing (and enables the
	// inpainting seed) to pixels with at least one channel above it.
	Threshold float32
}

// Validate checks the documented parameter ranges. Out-of-range values are
// the caller's responsibility to reject before invoking the solver; the
// numerical scheme is only guaranteed finite inside these bounds.
func (p Params) Validate() error {
	if p.Iterations < 1 || p.Iterations > 128 {
		return errors.Errorf("diffuse: iterations %d out of range [1, 128]", p.Iterations)
	}
	if p.Radius < 1 || p.Radius > 256 {
		return errors.Errorf("diffuse: radius %d out of range [1, 256]", p.Radius)
	}
	if p.Sharpness < -1 || p.Sharpness > 1 {
		return errors.Errorf("diffuse: sharpness %g out of range [-1, 1]", p.Sharpness)
	}
	if p.Regularization < 0 || p.Regularization > 6 {
		return errors.Errorf("diffuse: regularization %g out of range [0, 6]", p.Regularization)
	}
	if p.VarianceThreshold < -1 || p.VarianceThreshold > 1 {
		return errors.Errorf("diffuse: variance threshold %g out of range [-1, 1]", p.VarianceThreshold)
	}
	for _, a := range [...]float32{p.AnisotropyFirst, p.AnisotropySecond, p.AnisotropyThird, p.AnisotropyFourth} {
		if a < -4 || a > 4 {
			return errors.Errorf("diffuse: anisotropy %g out of range [-4, 4]", a)
		}
	}
	for _, w := range [...]float32{p.First, p.Second, p.Third, p.Fourth} {
		if w < -1 || w > 1 {
			return errors.Errorf("diffuse: order weight %g out of range [-1, 1]", w)
		}
	}
	if p.Threshold < 0 || p.Threshold > 8 {
		return errors.Errorf("diffuse: threshold %g out of range [0, 8]", p.Threshold)
	}
	return nil
}

// AnisotropyFactor maps a user anisotropy setting to the positive K damping
// constant of the c² evaluation, in a perceptually even way:
// exp(|1/u| - 1) / (e - 1). A zero setting maps to +Inf, which the isotropy
// classification routes to the fixed isotropic kernel before the exponential
// is ever evaluated.
func AnisotropyFactor(user float32) float32 {
	if user == 0 {
		return math32.MaxFloat32
	}
	normalize := math32.Exp(1) - 1
	return math32.Exp(math32.Abs(1/user)-1) / normalize
}

// solverParams are the internal constants derived once per invocation.
type solverParams struct {
	// anisotropy holds the positive damping factor per diffusion order.
	anisotropy [4]float32
	// mode holds the isotropy dispatch per diffusion order.
	mode [4]stencil.IsotropyMode
	// weight holds the raw per-order weights.
	weight [4]float32
	// compute flags orders with a non-zero weight; zero-weight orders skip
	// kernel construction entirely, the update is unchanged.
	compute [4]bool
	// useGradient selects the driving vector per order: gradient for the
	// odd orders, Laplacian for the even ones.
	useGradient [4]bool
	// regularization and varianceThreshold are the linearized solver
	// coefficients of the log-scaled user values.
	regularization    float32
	varianceThreshold float32
	sharpness         float32
	radius            float32
}

// deriveParams converts the user controls into solver constants.
func deriveParams(p Params) solverParams {
	users := [4]float32{p.AnisotropyFirst, p.AnisotropySecond, p.AnisotropyThird, p.AnisotropyFourth}
	weights := [4]float32{p.First, p.Second, p.Third, p.Fourth}

	sp := solverParams{
		weight:            weights,
		useGradient:       [4]bool{true, false, true, false},
		regularization:    math32.Pow(10, p.Regularization) - 1,
		varianceThreshold: math32.Pow(10, p.VarianceThreshold),
		sharpness:         p.Sharpness,
		radius:            float32(p.Radius),
	}
	for k := 0; k < 4; k++ {
		sp.anisotropy[k] = AnisotropyFactor(users[k])
		sp.mode[k] = stencil.ClassifyIsotropy(users[k])
		sp.compute[k] = weights[k] != 0
	}
	return sp
}
