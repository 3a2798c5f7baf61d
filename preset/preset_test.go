package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogParamsAreValid(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		assert.NoError(t, p.Params.Validate(), "preset %q must carry valid solver parameters", p.Name)
		assert.NotEmpty(t, p.Description, "preset %q needs a description", p.Name)
		assert.False(t, seen[p.Name], "preset name %q must be unique", p.Name)
		seen[p.Name] = true
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup("denoise")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Params.Iterations)
	assert.Equal(t, 8, p.Params.Radius)
	assert.Equal(t, float32(-1), p.Params.AnisotropyFirst)

	_, err = Lookup("no-such-preset")
	assert.Error(t, err)
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	b := Catalog()
	assert.NotEqual(t, "mutated", b[0].Name, "callers must not be able to mutate the catalog")
}

func TestDeblurPresetsSharpen(t *testing.T) {
	// The deconvolution presets sharpen: their low-order weights are
	// negative and their structure anisotropy follows gradients.
	for _, name := range []string{"remove-soft-lens-blur", "remove-medium-lens-blur", "remove-heavy-lens-blur"} {
		p, err := Lookup(name)
		require.NoError(t, err)
		assert.Negative(t, p.Params.First, "%s first order sharpens", name)
		assert.Negative(t, p.Params.Second, "%s second order sharpens", name)
		assert.Negative(t, p.Params.AnisotropyFirst, "%s follows gradients", name)
	}
}
