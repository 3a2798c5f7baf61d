// Package preset - named diffusion parameter bundles.
//
// Presets are opaque data for the solver: the diffuse package never
// interprets a preset name, it only receives the resulting Params. The
// catalog covers the classic use cases of the heat-transfer model, from
// blind deconvolution (negative weights, gradient-following anisotropy) to
// surface blur and inpainting-friendly diffusion.
package preset

import (
	"github.com/pkg/errors"

	"github.com/rasterlab/diffuse/diffuse"
)

// Preset is a named, immutable diffusion parameter bundle.
type Preset struct {
	// Name identifies the preset in the catalog.
	Name string
	// Description summarizes the visual intent.
	Description string
	// Params are the solver controls this preset resolves to.
	Params diffuse.Params
}

// catalog lists the built-in presets in display order.
var catalog = []Preset{
	{
		Name:        "remove-soft-lens-blur",
		Description: "blind deconvolution for slight lens softness",
		Params: diffuse.Params{
			Iterations: 4, Radius: 4, Regularization: 4.5,
			AnisotropyFirst: -4, AnisotropySecond: -4, AnisotropyThird: 2, AnisotropyFourth: -4,
			First: -0.25, Second: -0.50, Third: 0.40, Fourth: -0.40,
		},
	},
	{
		Name:        "remove-medium-lens-blur",
		Description: "blind deconvolution for moderate lens softness",
		Params: diffuse.Params{
			Iterations: 8, Radius: 8, Regularization: 5.5,
			AnisotropyFirst: -4, AnisotropySecond: -4, AnisotropyThird: 2, AnisotropyFourth: -4,
			First: -0.25, Second: -0.50, Third: 0.40, Fourth: -0.40,
		},
	},
	{
		Name:        "remove-heavy-lens-blur",
		Description: "blind deconvolution for strong lens softness",
		Params: diffuse.Params{
			Iterations: 12, Radius: 12, Regularization: 5.7,
			AnisotropyFirst: -4, AnisotropySecond: -4, AnisotropyThird: 2, AnisotropyFourth: -4,
			First: -0.25, Second: -0.50, Third: 0.40, Fourth: -0.40,
		},
	},
	{
		Name:        "remove-hazing",
		Description: "isotropic local-contrast recovery against haze",
		Params: diffuse.Params{
			Iterations: 20, Radius: 16, Regularization: 5.7,
			First: -0.25, Second: -0.50, Third: 0.40, Fourth: -0.40,
		},
	},
	{
		Name:        "denoise",
		Description: "gentle edge-aware smoothing of fine noise",
		Params: diffuse.Params{
			Iterations: 5, Radius: 8, Regularization: 5,
			AnisotropyFirst: -1, AnisotropySecond: -1, AnisotropyThird: 1, AnisotropyFourth: 1,
			First: -0.10, Second: -0.10, Third: 0.10, Fourth: 0.10,
		},
	},
	{
		Name:        "surface-blur",
		Description: "smooth surfaces while hugging isophotes",
		Params: diffuse.Params{
			Iterations: 2, Radius: 32, Regularization: 4,
			AnisotropySecond: 4, AnisotropyThird: 4, AnisotropyFourth: 4,
			Second: 0.25, Third: 0.25, Fourth: 0.25,
		},
	},
	{
		Name:        "diffuse",
		Description: "plain isotropic diffusion of all orders",
		Params: diffuse.Params{
			Iterations: 2, Radius: 16,
			First: 0.25, Second: 0.25, Third: 0.25, Fourth: 0.25,
		},
	},
	{
		Name:        "increase-perceptual-acutance",
		Description: "single-pass acutance boost along isophotes",
		Params: diffuse.Params{
			Iterations: 1, Radius: 8, Sharpness: 0.5, Regularization: 1, VarianceThreshold: 0.25,
			AnisotropyFirst: 4, AnisotropySecond: 4, AnisotropyThird: 4, AnisotropyFourth: 4,
			First: 0.25, Second: 0.25, Third: 0.25, Fourth: 0.25,
		},
	},
	{
		Name:        "simulate-watercolour",
		Description: "wide gradient-led bleed with light sharpening",
		Params: diffuse.Params{
			Iterations: 4, Radius: 64, Sharpness: -0.05, Regularization: 4,
			AnisotropyFirst: -4, AnisotropySecond: 4, AnisotropyThird: 4, AnisotropyFourth: 4,
			First: -0.50, Third: 0.25, Fourth: 0.25,
		},
	},
}

// Catalog returns the built-in presets in display order. The returned slice
// is a copy; callers may reorder it freely.
func Catalog() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a preset by name.
func Lookup(name string) (Preset, error) {
	for _, p := range catalog {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, errors.Errorf("preset: unknown preset %q", name)
}
