package astrom

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func numericJacobian(t Transform, x, y float64) Jacobian {
	const h = 1e-6
	xp, yp := t.Apply(x+h, y)
	xm, ym := t.Apply(x-h, y)
	xq, yq := t.Apply(x, y+h)
	xn, yn := t.Apply(x, y-h)
	return Jacobian{
		{(xp - xm) / (2 * h), (xq - xn) / (2 * h)},
		{(yp - ym) / (2 * h), (yq - yn) / (2 * h)},
	}
}

func assertJacobian(t *testing.T, expect, actual Jacobian, delta float64) {
	t.Helper()
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			assert.InDelta(t, expect[r][c], actual[r][c], delta, "[%d][%d]", r, c)
		}
	}
}

func testPoly(t *testing.T, kind Kind) *Poly {
	t.Helper()
	parsx := []float64{120, 100, 20, 15, 2, 1}
	parsy := []float64{100, -10, 90, 7, 0.5, -4}
	p, err := NewPoly(kind, Domain{XMin: 0, XMax: 2048, YMin: 0, YMax: 1024}, parsx, parsy)
	require.NoError(t, err)
	return p
}

func TestPolyLinear(t *testing.T) {
	p, err := NewPoly(Polynomial, UnitDomain, []float64{1, 2, 3}, []float64{-1, 0.5, 4})
	require.NoError(t, err)
	x, y := p.Apply(0.2, -0.4)
	assert.InDelta(t, 1+2*0.2+3*-0.4, x, 1e-12)
	assert.InDelta(t, -1+0.5*0.2+4*-0.4, y, 1e-12)
	assertJacobian(t, Jacobian{{2, 3}, {0.5, 4}}, p.Jacobian(0.9, 0.1), 1e-12)
}

func TestPolyJacobian(t *testing.T) {
	for _, kind := range Kinds() {
		p := testPoly(t, kind)
		for _, pt := range []Point{{100, 900}, {1024, 512}, {2000, 30}} {
			assertJacobian(t, numericJacobian(p, pt.X, pt.Y), p.Jacobian(pt.X, pt.Y), 1e-5)
		}
	}
}

func TestNewPolyErrors(t *testing.T) {
	_, err := NewPoly(Polynomial, UnitDomain, []float64{1, 2, 3}, []float64{1, 2})
	assert.Error(t, err)
	_, err = NewPoly(Polynomial, UnitDomain, []float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrNotTriangular)
	_, err = NewPoly(Polynomial, Domain{XMin: 1, XMax: 1, YMin: 0, YMax: 1}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrDegenerateDomain)
	_, err = NewPolyFlat(Polynomial, UnitDomain, []float64{1, 2, 3})
	assert.Error(t, err)

	p, err := NewPolyFlat(Legendre, UnitDomain, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, p.ParsX)
	assert.Equal(t, []float64{4, 5, 6}, p.ParsY)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, p.Params())
}

func TestPattern(t *testing.T) {
	p := testPoly(t, Chebyshev)
	pts := GridXiEta(1000, 3, 4)
	for i := range pts {
		pts[i].X += 1024
		pts[i].Y += 512
	}

	v := p.Vandermonde(pts)
	rows, cols := v.Dims()
	assert.Equal(t, len(pts), rows)
	assert.Equal(t, NumTerms(p.Deg), cols)

	pattern := p.Pattern(pts)
	var out mat.VecDense
	out.MulVec(pattern, mat.NewVecDense(2*cols, p.Params()))
	require.Equal(t, 2*len(pts), out.Len())
	for i, pt := range pts {
		x, y := p.Apply(pt.X, pt.Y)
		assert.InDelta(t, x, out.AtVec(2*i), 1e-9)
		assert.InDelta(t, y, out.AtVec(2*i+1), 1e-9)
	}

	assert.True(t, p.Pattern(nil).IsEmpty())
}

func TestTangentRoundTrip(t *testing.T) {
	tp := TangentPoint{Alpha0: 35, Delta0: 35}
	toEqu := TanToEqu{tp}
	toTan := EquToTan{tp}

	for _, pt := range GridXiEta(2.1, 5, 7) {
		alpha, delta := toEqu.Apply(pt.X, pt.Y)
		xi, eta := toTan.Apply(alpha, delta)
		assert.InDelta(t, pt.X, xi, 1e-9)
		assert.InDelta(t, pt.Y, eta, 1e-9)
	}

	alpha, delta := toEqu.Apply(0, 0)
	assert.InDelta(t, 35, alpha, 1e-12)
	assert.InDelta(t, 35, delta, 1e-12)
}

func TestTangentJacobians(t *testing.T) {
	tp := TangentPoint{Alpha0: 35, Delta0: -20}
	toEqu := TanToEqu{tp}
	toTan := EquToTan{tp}
	for _, pt := range []Point{{0, 0}, {1.5, -0.7}, {-2, 2}} {
		assertJacobian(t, numericJacobian(toEqu, pt.X, pt.Y), toEqu.Jacobian(pt.X, pt.Y), 1e-6)

		alpha, delta := toEqu.Apply(pt.X, pt.Y)
		assertJacobian(t, numericJacobian(toTan, alpha, delta), toTan.Jacobian(alpha, delta), 1e-6)

		// the two projections are inverse, so are their Jacobians
		product := toTan.Jacobian(alpha, delta).Mul(toEqu.Jacobian(pt.X, pt.Y))
		assertJacobian(t, Identity, product, 1e-9)
	}
}

func TestWrapDegrees(t *testing.T) {
	assert.InDelta(t, 359.5, wrapDegrees(-0.5), 1e-12)
	assert.InDelta(t, 0.5, wrapDegrees(360.5), 1e-12)
	alpha, _ := TanToEqu{TangentPoint{Alpha0: 0.1, Delta0: 10}}.Apply(-1, 0)
	assert.Greater(t, alpha, 350.0)
}

func TestChain(t *testing.T) {
	p, err := NewPoly(Polynomial, UnitDomain, []float64{0.1, 1e-3, 2e-5}, []float64{-0.2, -1e-5, 1e-3})
	require.NoError(t, err)
	chain := Chain{p, TanToEqu{TangentPoint{Alpha0: 150, Delta0: 2}}}
	for _, pt := range []Point{{0, 0}, {300, -200}, {-800, 450}} {
		assertJacobian(t, numericJacobian(chain, pt.X, pt.Y), chain.Jacobian(pt.X, pt.Y), 1e-6)
	}
}

func TestCov(t *testing.T) {
	c := NewCov(0.1, 0.07, 0.02)
	assert.InDelta(t, 0.01, c[0][0], 1e-15)
	assert.InDelta(t, 0.0049, c[1][1], 1e-15)
	assert.InDelta(t, 0.02*0.1*0.07, c[0][1], 1e-15)
	assert.True(t, c.Valid(1e-12))

	rot := Jacobian{{0, -1}, {1, 0}}
	rotated := c.Propagate(rot)
	assert.InDelta(t, c[1][1], rotated[0][0], 1e-15)
	assert.InDelta(t, c[0][0], rotated[1][1], 1e-15)
	assert.InDelta(t, -c[0][1], rotated[0][1], 1e-15)

	assert.Equal(t, c, c.Propagate(Identity))

	scaled := c.Propagate(Jacobian{{2, 0}, {0, 3}})
	assert.InDelta(t, 36*c.Det(), scaled.Det(), 1e-15)

	ellipse := NewCov(2, 1, 0).Eigen()
	assert.InDelta(t, 2, ellipse.Major, 1e-12)
	assert.InDelta(t, 1, ellipse.Minor, 1e-12)
	assert.InDelta(t, 0, ellipse.Angle, 1e-12)

	ellipse = NewCov(1, 2, 0).Eigen()
	assert.InDelta(t, 90, math.Abs(ellipse.Angle), 1e-12)

	assert.False(t, Cov2{{1, 2}, {2, 1}}.Valid(1e-12))
	assert.False(t, Cov2{{1, 0.1}, {0.2, 1}}.Valid(1e-12))
}

func TestPropagate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pts, covs := Simulate(rng, 3*chunkSize+17, 2.1, Noise{SigX: 1e-4, SigY: 7e-5, Rho: 0.2})
	toEqu := TanToEqu{TangentPoint{Alpha0: 35, Delta0: 35}}

	outPts, outCovs, err := Propagate(context.Background(), toEqu, pts, covs)
	require.NoError(t, err)
	require.Len(t, outPts, len(pts))
	require.Len(t, outCovs, len(pts))
	for _, i := range []int{0, chunkSize, len(pts) - 1} {
		a, d := toEqu.Apply(pts[i].X, pts[i].Y)
		assert.Equal(t, Point{X: a, Y: d}, outPts[i])
		assert.Equal(t, covs[i].Propagate(toEqu.Jacobian(pts[i].X, pts[i].Y)), outCovs[i])
		assert.True(t, outCovs[i].Valid(1e-15))
	}

	posOnly, noCovs, err := Propagate(context.Background(), toEqu, pts[:10], nil)
	require.NoError(t, err)
	assert.Len(t, posOnly, 10)
	assert.Nil(t, noCovs)

	_, _, err = Propagate(context.Background(), toEqu, pts[:3], covs[:2])
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Propagate(ctx, toEqu, pts, covs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNudge(t *testing.T) {
	toEqu := TanToEqu{TangentPoint{Alpha0: 35, Delta0: 35}}
	deltas := Nudge(toEqu, 0.5, -0.3, 10, 10)
	// second-order residual for a 10 arcsec step is ~1e-7 deg
	assert.InDelta(t, deltas.Direct.X, deltas.Linear.X, 1e-6)
	assert.InDelta(t, deltas.Direct.Y, deltas.Linear.Y, 1e-6)
	assert.Greater(t, math.Abs(deltas.Direct.X), 1e-3)
}

func TestGridXiEta(t *testing.T) {
	grid := GridXiEta(2, 3, 5)
	assert.Len(t, grid, 30)
	assert.Equal(t, Point{X: -2, Y: -2}, grid[0])
	assert.Equal(t, Point{X: 2, Y: 2}, grid[14])
	assert.Equal(t, Point{X: -2, Y: -2}, grid[15])
	assert.Equal(t, Point{X: -2, Y: 0}, grid[16])
	assert.Equal(t, Point{X: -1, Y: -2}, grid[18])

	square := GridXiEta(1, 4, 4)
	assert.Len(t, square, 16)
}

func TestDomainOf(t *testing.T) {
	d, err := DomainOf([]Point{{1, 5}, {3, -1}, {2, 2}})
	require.NoError(t, err)
	assert.Equal(t, Domain{XMin: 1, XMax: 3, YMin: -1, YMax: 5}, d)
	xr, yr := d.Rescale(3, -1)
	assert.InDelta(t, 1, xr, 1e-12)
	assert.InDelta(t, -1, yr, 1e-12)

	_, err = DomainOf(nil)
	assert.ErrorIs(t, err, ErrDegenerateDomain)
	_, err = DomainOf([]Point{{1, 1}})
	assert.ErrorIs(t, err, ErrDegenerateDomain)
}
