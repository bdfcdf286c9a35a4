package astrom

import "math/rand/v2"

func linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// GridXiEta returns a cross-hatched grid over [-sidelen, sidelen]^2: ncoarse
// columns sampled nfine times each, plus the transposed set when the two
// counts differ.
func GridXiEta(sidelen float64, ncoarse, nfine int) []Point {
	xv := linspace(-sidelen, sidelen, ncoarse)
	yv := linspace(-sidelen, sidelen, nfine)
	out := make([]Point, 0, 2*len(xv)*len(yv))
	for _, y := range yv {
		for _, x := range xv {
			out = append(out, Point{X: x, Y: y})
		}
	}
	if ncoarse != nfine {
		for _, y := range yv {
			for _, x := range xv {
				out = append(out, Point{X: y, Y: x})
			}
		}
	}
	return out
}

// Noise describes the per-point uncertainty for simulated data.
type Noise struct {
	SigX, SigY, Rho float64
}

// Simulate draws n points uniformly over [-sidelen, sidelen]^2 in the tangent
// plane, each with the covariance given by noise.
func Simulate(rng *rand.Rand, n int, sidelen float64, noise Noise) ([]Point, []Cov2) {
	pts := make([]Point, n)
	covs := make([]Cov2, n)
	cov := NewCov(noise.SigX, noise.SigY, noise.Rho)
	for i := range pts {
		pts[i] = Point{
			X: (2*rng.Float64() - 1) * sidelen,
			Y: (2*rng.Float64() - 1) * sidelen,
		}
		covs[i] = cov
	}
	return pts, covs
}
