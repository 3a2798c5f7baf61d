package diffuse

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/rasterlab/diffuse/raster"
	"github.com/rasterlab/diffuse/wavelet"
)

// Options configures a Process call beyond the diffusion parameters.
type Options struct {
	// Pool optionally supplies reusable scratch buffers; nil allocates fresh
	// buffers per call.
	Pool *raster.Pool
	// NoiseAmplitude overrides the inpainting seed noise sigma; zero keeps
	// the default of 0.2.
	NoiseAmplitude float32
}

// Process runs the full multi-pass diffusion filter.
//
// The input buffer is read-only; the output buffer is fully overwritten and
// must be caller-allocated with the ROI's dimensions. The call is
// synchronous, deterministic per parameter set, and keeps no state between
// invocations. On error the output buffer contents are unspecified but the
// host-owned buffers are never corrupted beyond that, and no partial success
// is signaled.
//
// Arguments:
// - in: Read-only scene-linear RGB input, ROI.Width × ROI.Height × 4.
// - out: Caller-allocated output of identical dimensions.
// - roi: Region geometry and the zoom relating it to full resolution.
// - p: Diffusion parameters, effectively immutable for the call.
// - opt: Buffer pooling and seed options.
func Process(in, out *raster.Buffer, roi raster.ROI, p Params, opt Options) error {
	if err := roi.Validate(in, out); err != nil {
		return err
	}
	if in == out {
		return errors.New("diffuse: input and output buffers must be distinct")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	// Rescale the controls by zoom so the visual effect strength does not
	// depend on the processed resolution.
	zoom := roi.Zoom()
	finalRadius := float32(p.Radius) * 2 / zoom

	iterations := int(math32.Ceil(float32(p.Iterations) / zoom))
	if iterations < 1 {
		iterations = 1
	}

	scales := wavelet.ScalesNeeded(wavelet.BSplineSigma, finalRadius)
	if scales < 1 {
		scales = 1
	}
	if scales > wavelet.MaxScales {
		scales = wavelet.MaxScales
	}

	sp := deriveParams(p)

	// Scratch buffers: two ping-pong iteration buffers, two low-frequency
	// buffers double-buffered across scales, and one high-frequency buffer.
	// They are owned here for the duration of the call and returned to the
	// pool before returning.
	scratch := make([]*raster.Buffer, 0, 5)
	defer func() {
		for _, buf := range scratch {
			opt.Pool.Put(buf)
		}
	}()
	grab := func() (*raster.Buffer, error) {
		buf, err := opt.Pool.Get(roi.Width, roi.Height)
		if err != nil {
			return nil, errors.Wrap(err, "diffuse: scratch allocation failed")
		}
		scratch = append(scratch, buf)
		return buf, nil
	}

	temp1, err := grab()
	if err != nil {
		return err
	}
	temp2, err := grab()
	if err != nil {
		return err
	}
	lfOdd, err := grab()
	if err != nil {
		return err
	}
	lfEven, err := grab()
	if err != nil {
		return err
	}
	hf, err := grab()
	if err != nil {
		return err
	}

	// Luminance masking and inpainting seed: the seeded buffer replaces the
	// nominal input for iteration 0 only.
	source := in
	var mask raster.Mask
	if p.Threshold > 0 {
		mask = BuildMask(in, p.Threshold)

		amplitude := opt.NoiseAmplitude
		if amplitude == 0 {
			amplitude = defaultNoiseAmplitude
		}
		InpaintSeed(temp1, in, mask, amplitude)
		source = temp1
	}

	// Iterations are strictly sequential: each reads the full output of the
	// previous one, ping-ponging between the two scratch buffers. The last
	// iteration writes directly into the caller's output buffer.
	for it := 0; it < iterations; it++ {
		var tempIn, tempOut *raster.Buffer
		switch {
		case it == 0:
			tempIn = source
			tempOut = temp2
		case it%2 == 0:
			tempIn = temp1
			tempOut = temp2
		default:
			tempIn = temp2
			tempOut = temp1
		}
		if it == iterations-1 {
			tempOut = out
		}

		waveletsPass(tempIn, tempOut, mask, hf, lfOdd, lfEven, &sp, zoom, scales)
	}

	return nil
}

// waveletsPass runs one full pyramid decomposition plus diffusion
// accumulation across all scales, writing the reconstruction into out.
func waveletsPass(in, out *raster.Buffer, mask raster.Mask, hf, lfOdd, lfEven *raster.Buffer,
	sp *solverParams, zoom float32, scales int) {

	// The reconstruction accumulator starts from zero and collects every
	// scale's updated high-frequency band plus the final low-frequency band.
	out.Zero()

	for s := 0; s < scales; s++ {
		// detail is this scale's input, lf its low-frequency output.
		var detail, lf *raster.Buffer

		// Swap low-frequency buffers so only two are needed: the one at
		// scale s-1 and the one at scale s.
		switch {
		case s == 0:
			detail = in
			lf = lfOdd
		case s%2 != 0:
			detail = lfOdd
			lf = lfEven
		default:
			detail = lfEven
			lf = lfOdd
		}

		currentRadius := wavelet.EquivalentSigmaAtStep(wavelet.BSplineSigma, s)
		realRadius := currentRadius * zoom

		// Gaussian strength envelope in equivalent sigma vs. target radius.
		norm := math32.Exp(-(realRadius * realRadius) / (sp.radius * sp.radius))
		abcd := [4]float32{
			sp.weight[0] * kappa * norm,
			sp.weight[1] * kappa * norm,
			sp.weight[2] * kappa * norm,
			sp.weight[3] * kappa * norm,
		}
		strength := sp.sharpness*norm + 1
		lastScale := s == scales-1

		wavelet.Decompose(detail, hf, lf, 1<<uint(s))
		diffuseScale(hf, lf, mask, out, sp, int(currentRadius), lastScale, abcd, strength)
	}
}
