// Package stencil - pure per-pixel math for the anisotropic diffusion solver.
//
// Every function here is a pure mapping from a 3×3 pixel neighborhood (nine
// 4-channel taps, stored row-major and contiguously) to local differential
// estimates and 9-tap convolution kernels. Same inputs always produce the
// same outputs; there is no state and no allocation.
//
// The construction follows the anisotropic heat-transfer model of
// https://www.researchgate.net/publication/220663968 with the
// rotation-invariant isotropic Laplacian of Oono & Puri as the degenerate
// case.
package stencil

import "github.com/chewxy/math32"

// Neighborhood holds the nine 4-channel taps of a 3×3 stencil, row-major:
// index 4 is the center pixel, 1/7 are the vertical neighbors, 3/5 the
// horizontal ones.
type Neighborhood [9][4]float32

// Kernel is a 9-tap convolution kernel over a Neighborhood.
type Kernel [9]float32

// Vec2 is a 2-vector of partial derivatives along the two image axes.
// X follows rows (vertical axis of the buffer), Y follows columns, matching
// the row-major storage orientation.
type Vec2 struct {
	X float32
	Y float32
}

// Norm returns the Euclidean magnitude of the vector.
func (v Vec2) Norm() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Arg returns the argument (angle) of the vector.
func (v Vec2) Arg() float32 {
	return math32.Atan2(v.Y, v.X)
}

// IsotropyMode selects how a diffusion order orients itself against the
// local image structure.
type IsotropyMode int

const (
	// Isotropic diffuses in all directions with the same intensity.
	Isotropic IsotropyMode = iota
	// Isophote diffuses more along isophotes (orthogonal to the gradient).
	Isophote
	// Gradient diffuses more along the gradient direction.
	Gradient
)

// ClassifyIsotropy derives the isotropy mode from the sign of a user-facing
// anisotropy setting: zero is isotropic, positive follows isophotes,
// negative follows gradients. The magnitude only affects the damping factor,
// which must be made positive before entering the exponential.
func ClassifyIsotropy(anisotropy float32) IsotropyMode {
	switch {
	case anisotropy == 0:
		return Isotropic
	case anisotropy > 0:
		return Isophote
	default:
		return Gradient
	}
}

// GradientVec computes the gradient of one channel with centered finite
// differences in the 3×3 stencil, divided by 2.
func GradientVec(pixels *Neighborhood, c int) Vec2 {
	return Vec2{
		X: (pixels[7][c] - pixels[1][c]) / 2,
		Y: (pixels[5][c] - pixels[3][c]) / 2,
	}
}

// LaplacianVec computes the per-axis second differences of one channel:
// each component is the sum of the two opposite neighbors minus twice the
// center value.
func LaplacianVec(pixels *Neighborhood, c int) Vec2 {
	center := 2 * pixels[4][c]
	return Vec2{
		X: pixels[7][c] + pixels[1][c] - center,
		Y: pixels[5][c] + pixels[3][c] - center,
	}
}

// Direction carries the local anisotropic orientation: the damping factor
// c² and the sine/cosine (plus squares) of the driving vector's argument.
type Direction struct {
	C2   float32
	Cos  float32
	Sin  float32
	Cos2 float32
	Sin2 float32
}

// AnisotropicDirection derives the rotation terms from a driving vector.
// c² = exp(−‖v‖ / anisotropy) dampens diffusion across the selected
// direction; anisotropy must be strictly positive (the isotropic case is
// dispatched before ever reaching the exponential).
func AnisotropicDirection(v Vec2, anisotropy float32) Direction {
	magnitude := v.Norm()
	theta := v.Arg()

	cos := math32.Cos(theta)
	sin := math32.Sin(theta)

	return Direction{
		C2:   math32.Exp(-magnitude / anisotropy),
		Cos:  cos,
		Sin:  sin,
		Cos2: cos * cos,
		Sin2: sin * sin,
	}
}

// Matrix is a symmetric 2×2 diffusion tensor:
//
//	[[ A11, A12 ],
//	 [ A12, A22 ]]
type Matrix struct {
	A11 float32
	A12 float32
	A22 float32
}

// RotationMatrixIsophote builds the diffusion tensor that dampens the
// gradient direction, so diffusion hugs isophotes.
func RotationMatrixIsophote(d Direction) Matrix {
	return Matrix{
		A11: d.Cos2 + d.C2*d.Sin2,
		A22: d.C2*d.Cos2 + d.Sin2,
		A12: (d.C2 - 1) * d.Cos * d.Sin,
	}
}

// RotationMatrixGradient builds the dual tensor that dampens the isophote
// direction, so diffusion follows the gradient. It swaps which diagonal term
// receives the c² factor and flips the off-diagonal sign relationship.
func RotationMatrixGradient(d Direction) Matrix {
	return Matrix{
		A11: d.C2*d.Cos2 + d.Sin2,
		A22: d.Cos2 + d.C2*d.Sin2,
		A12: (1 - d.C2) * d.Cos * d.Sin,
	}
}

// BuildKernel expands the diffusion tensor into the 9-tap rotated
// anisotropic Laplacian kernel:
//
//	[ [ -a12/2,  a22,            a12/2 ],
//	  [  a11,   -2*(a11 + a22),  a11   ],
//	  [  a12/2,  a22,           -a12/2 ] ]
func BuildKernel(a Matrix, kernel *Kernel) {
	b11 := -a.A12 / 2
	b13 := -b11
	b22 := -2 * (a.A11 + a.A22)

	kernel[0] = b11
	kernel[1] = a.A22
	kernel[2] = b13
	kernel[3] = a.A11
	kernel[4] = b22
	kernel[5] = a.A11
	kernel[6] = b13
	kernel[7] = a.A22
	kernel[8] = b11
}

// IsotropicKernel writes the fixed rotation-invariant discrete Laplacian
// (Oono & Puri) used whenever a diffusion order is isotropic.
func IsotropicKernel(kernel *Kernel) {
	kernel[0] = 0.25
	kernel[1] = 0.5
	kernel[2] = 0.25
	kernel[3] = 0.5
	kernel[4] = -3
	kernel[5] = 0.5
	kernel[6] = 0.25
	kernel[7] = 0.5
	kernel[8] = 0.25
}

// ComputeKernel builds the convolution kernel for one diffusion order at one
// pixel and channel.
//
// Arguments:
// - pixels: The 3×3 neighborhood the driving vector is measured on.
// - c: Channel index.
// - anisotropy: Positive damping factor; ignored in the isotropic mode.
// - mode: Isotropy mode selecting the dispatch branch.
// - useGradient: Drive the rotation with the gradient when true, with the
//   Laplacian otherwise.
// - kernel: Output kernel.
func ComputeKernel(pixels *Neighborhood, c int, anisotropy float32, mode IsotropyMode, useGradient bool, kernel *Kernel) {
	switch mode {
	case Isophote:
		d := AnisotropicDirection(drivingVector(pixels, c, useGradient), anisotropy)
		BuildKernel(RotationMatrixIsophote(d), kernel)
	case Gradient:
		d := AnisotropicDirection(drivingVector(pixels, c, useGradient), anisotropy)
		BuildKernel(RotationMatrixGradient(d), kernel)
	default:
		IsotropicKernel(kernel)
	}
}

// drivingVector picks the differential that orients the diffusion tensor.
func drivingVector(pixels *Neighborhood, c int, useGradient bool) Vec2 {
	if useGradient {
		return GradientVec(pixels, c)
	}
	return LaplacianVec(pixels, c)
}

// Convolve applies a 9-tap kernel to one channel of a neighborhood.
func Convolve(kernel *Kernel, pixels *Neighborhood, c int) float32 {
	var acc float32
	for k := 0; k < 9; k++ {
		acc += kernel[k] * pixels[k][c]
	}
	return acc
}
