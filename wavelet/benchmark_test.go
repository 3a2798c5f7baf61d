package wavelet

import (
	"testing"

	"github.com/rasterlab/diffuse/raster"
)

func benchmarkDecompose(b *testing.B, width, height, dilation int) {
	in, err := raster.NewBuffer(width, height)
	if err != nil {
		b.Fatal(err)
	}
	for i := range in.Pix {
		in.Pix[i] = float32(i%251) * 0.004
	}
	hf, _ := raster.NewBuffer(width, height)
	lf, _ := raster.NewBuffer(width, height)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompose(in, hf, lf, dilation)
	}
}

func BenchmarkDecompose480p(b *testing.B)      { benchmarkDecompose(b, 854, 480, 1) }
func BenchmarkDecompose1080p(b *testing.B)     { benchmarkDecompose(b, 1920, 1080, 1) }
func BenchmarkDecompose1080pDeep(b *testing.B) { benchmarkDecompose(b, 1920, 1080, 32) }
