package diffuse

import (
	"testing"

	"github.com/rasterlab/diffuse/raster"
)

func benchmarkProcess(b *testing.B, width, height int, p Params) {
	in, err := raster.NewBuffer(width, height)
	if err != nil {
		b.Fatal(err)
	}
	for i := range in.Pix {
		in.Pix[i] = float32(i%251) * 0.004
	}
	out, _ := raster.NewBuffer(width, height)
	roi := raster.ROI{Width: width, Height: height, Scale: 1, FullScale: 1}

	var pool raster.Pool
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Process(in, out, roi, p, Options{Pool: &pool}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessDenoise480p(b *testing.B) {
	benchmarkProcess(b, 854, 480, Params{
		Iterations: 5, Radius: 8, Regularization: 5,
		AnisotropyFirst: -1, AnisotropySecond: -1, AnisotropyThird: 1, AnisotropyFourth: 1,
		First: -0.1, Second: -0.1, Third: 0.1, Fourth: 0.1,
	})
}

func BenchmarkProcessSharpen480p(b *testing.B) {
	benchmarkProcess(b, 854, 480, Params{
		Iterations: 1, Radius: 8, Sharpness: 0.5, Regularization: 1, VarianceThreshold: 0.25,
		AnisotropyFirst: 4, AnisotropySecond: 4, AnisotropyThird: 4, AnisotropyFourth: 4,
		First: 0.25, Second: 0.25, Third: 0.25, Fourth: 0.25,
	})
}
