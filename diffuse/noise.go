package diffuse

import "github.com/chewxy/math32"

// Counter-based pseudo-random generator for the inpainting seed. Each pixel
// derives its own generator state from its coordinates through splitmix32,
// so the seed is deterministic per position and needs no shared state across
// the parallel rows. Bit-exact reproducibility across platforms is not a
// contract; only "bounded, non-negative, seeded by position" is.

// splitmix32 is a fast invertible hash used to spread pixel coordinates
// into generator seeds.
func splitmix32(x uint32) uint32 {
	x += 0x9e3779b9
	z := x
	z = (z ^ (z >> 16)) * 0x21f0aaad
	z = (z ^ (z >> 15)) * 0x735a2d97
	return z ^ (z >> 15)
}

// noiseState is the 128-bit state of a xoshiro128+ generator.
type noiseState [4]uint32

// newNoiseState seeds a generator from pixel coordinates and runs a few
// warmup rounds so neighboring pixels decorrelate.
func newNoiseState(x, y uint32) noiseState {
	s := noiseState{
		splitmix32(x + 1),
		splitmix32((x + 1) * (y + 3)),
		splitmix32(1337),
		splitmix32(666),
	}
	for i := 0; i < 4; i++ {
		s.next()
	}
	return s
}

func rotl32(x uint32, k uint) uint32 {
	return (x << k) | (x >> (32 - k))
}

// next advances the xoshiro128+ state and returns the next output word.
func (s *noiseState) next() uint32 {
	result := s[0] + s[3]

	t := s[1] << 9
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = rotl32(s[3], 11)

	return result
}

// uniform returns the next sample in [0, 1).
func (s *noiseState) uniform() float32 {
	return float32(s.next()>>8) * (1.0 / (1 << 24))
}

// gaussianNoise draws one normal sample of the given mean and sigma via the
// Box-Muller transform. The flip flag alternates between the two branches of
// the transform so adjacent pixels use both outputs.
func gaussianNoise(mean, sigma float32, flip bool, s *noiseState) float32 {
	u1 := s.uniform()
	u2 := s.uniform()
	if u1 < 1e-7 {
		u1 = 1e-7
	}

	r := sigma * math32.Sqrt(-2*math32.Log(u1))
	if flip {
		return mean + r*math32.Sin(2*math32.Pi*u2)
	}
	return mean + r*math32.Cos(2*math32.Pi*u2)
}
