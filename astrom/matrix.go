package astrom

import "math"

// Point is a position in either frame.
type Point struct {
	X, Y float64
}

// Jacobian is the 2x2 matrix of partial derivatives [d(out_i)/d(in_j)].
type Jacobian [2][2]float64

// Identity is the Jacobian of the identity transform.
var Identity = Jacobian{{1, 0}, {0, 1}}

// Mul returns j*k.
func (j Jacobian) Mul(k Jacobian) Jacobian {
	var out Jacobian
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = j[r][0]*k[0][c] + j[r][1]*k[1][c]
		}
	}
	return out
}

// Apply returns j*(dx, dy).
func (j Jacobian) Apply(dx, dy float64) (float64, float64) {
	return j[0][0]*dx + j[0][1]*dy, j[1][0]*dx + j[1][1]*dy
}

// Det returns the determinant.
func (j Jacobian) Det() float64 {
	return j[0][0]*j[1][1] - j[0][1]*j[1][0]
}

// Cov2 is a 2x2 position covariance.
type Cov2 [2][2]float64

// NewCov builds a covariance from standard deviations and correlation rho.
func NewCov(sx, sy, rho float64) Cov2 {
	off := rho * sx * sy
	return Cov2{{sx * sx, off}, {off, sy * sy}}
}

// Propagate returns J C J^T.
func (c Cov2) Propagate(j Jacobian) Cov2 {
	var jc [2][2]float64
	for r := 0; r < 2; r++ {
		for k := 0; k < 2; k++ {
			jc[r][k] = j[r][0]*c[0][k] + j[r][1]*c[1][k]
		}
	}
	var out Cov2
	for r := 0; r < 2; r++ {
		for k := 0; k < 2; k++ {
			out[r][k] = jc[r][0]*j[k][0] + jc[r][1]*j[k][1]
		}
	}
	// keep exact symmetry
	sym := 0.5 * (out[0][1] + out[1][0])
	out[0][1], out[1][0] = sym, sym
	return out
}

// Det returns the determinant.
func (c Cov2) Det() float64 {
	return c[0][0]*c[1][1] - c[0][1]*c[1][0]
}

// Ellipse describes the principal axes of a covariance.  Major and Minor are
// standard deviations; Angle is the position angle of the major axis in
// degrees, measured from the x axis.
type Ellipse struct {
	Major, Minor float64
	Angle        float64
}

// Eigen returns the principal axes of c.
func (c Cov2) Eigen() Ellipse {
	a, b, d := c[0][0], c[0][1], c[1][1]
	mean := 0.5 * (a + d)
	radius := math.Hypot(0.5*(a-d), b)
	l1, l2 := mean+radius, mean-radius
	return Ellipse{
		Major: math.Sqrt(math.Max(l1, 0)),
		Minor: math.Sqrt(math.Max(l2, 0)),
		Angle: 0.5 * math.Atan2(2*b, a-d) * 180 / math.Pi,
	}
}

// Valid reports whether c is symmetric positive semi-definite within tol.
func (c Cov2) Valid(tol float64) bool {
	if math.Abs(c[0][1]-c[1][0]) > tol {
		return false
	}
	return c[0][0] >= -tol && c[1][1] >= -tol && c.Det() >= -tol
}
