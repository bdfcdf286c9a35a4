package astrom

import "math"

const deg2rad = math.Pi / 180

// TangentPoint is the pointing (alpha0, delta0) of a gnomonic projection, in
// degrees.
type TangentPoint struct {
	Alpha0 float64
	Delta0 float64
}

// TanToEqu projects tangent-plane (xi, eta) onto equatorial (alpha, delta).
// All angles are in degrees.
type TanToEqu struct {
	TangentPoint
}

// Apply returns (alpha, delta) with alpha in [0, 360).
func (t TanToEqu) Apply(xi, eta float64) (float64, float64) {
	x, y := xi*deg2rad, eta*deg2rad
	s0, c0 := math.Sincos(t.Delta0 * deg2rad)
	gamma := c0 - y*s0
	alpha := t.Alpha0*deg2rad + math.Atan2(x, gamma)
	delta := math.Atan((y*c0 + s0) / math.Hypot(x, gamma))
	return wrapDegrees(alpha / deg2rad), delta / deg2rad
}

// Jacobian returns d(alpha,delta)/d(xi,eta).
func (t TanToEqu) Jacobian(xi, eta float64) Jacobian {
	x, y := xi*deg2rad, eta*deg2rad
	s0, c0 := math.Sincos(t.Delta0 * deg2rad)
	gamma := c0 - y*s0
	rho2 := x*x + gamma*gamma
	denom := (1 + x*x + y*y) * math.Sqrt(rho2)
	return Jacobian{
		{gamma / rho2, x * s0 / rho2},
		{-x * (y*c0 + s0) / denom, ((1+x*x)*c0 - y*s0) / denom},
	}
}

// EquToTan projects equatorial (alpha, delta) onto the tangent plane.
type EquToTan struct {
	TangentPoint
}

// Apply returns (xi, eta) in degrees.
func (t EquToTan) Apply(alpha, delta float64) (float64, float64) {
	sda, cda := math.Sincos((alpha - t.Alpha0) * deg2rad)
	sd, cd := math.Sincos(delta * deg2rad)
	s0, c0 := math.Sincos(t.Delta0 * deg2rad)
	denom := cda*cd*c0 + sd*s0
	xi := cd * sda / denom
	eta := (c0*sd - cda*cd*s0) / denom
	return xi / deg2rad, eta / deg2rad
}

// Jacobian returns d(xi,eta)/d(alpha,delta).
func (t EquToTan) Jacobian(alpha, delta float64) Jacobian {
	sda, cda := math.Sincos((alpha - t.Alpha0) * deg2rad)
	sd, cd := math.Sincos(delta * deg2rad)
	s0, c0 := math.Sincos(t.Delta0 * deg2rad)
	d := cda*cd*c0 + sd*s0
	d2 := d * d
	return Jacobian{
		{cd * (cd*c0 + cda*sd*s0) / d2, -sda * s0 / d2},
		{sda * sd * cd / d2, cda / d2},
	}
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
