package astrom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Poly maps (x, y) onto (X, Y) with a pair of 2D polynomials evaluated over
// the rescaled domain.  ParsX and ParsY follow the ordering of Powers.
type Poly struct {
	Kind   Kind
	Domain Domain
	Deg    int
	ParsX  []float64
	ParsY  []float64

	powers []Power
}

// NewPoly validates the coefficients and domain.
func NewPoly(kind Kind, domain Domain, parsx, parsy []float64) (*Poly, error) {
	if len(parsx) != len(parsy) {
		return nil, fmt.Errorf("x and y coefficient counts differ: %d vs %d", len(parsx), len(parsy))
	}
	deg, err := DegreeFromCount(len(parsx))
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	return &Poly{
		Kind:   kind,
		Domain: domain,
		Deg:    deg,
		ParsX:  append([]float64(nil), parsx...),
		ParsY:  append([]float64(nil), parsy...),
		powers: Powers(deg),
	}, nil
}

// NewPolyFlat splits abutted [parsx, parsy] parameters in half.
func NewPolyFlat(kind Kind, domain Domain, pars []float64) (*Poly, error) {
	if len(pars)%2 != 0 {
		return nil, fmt.Errorf("odd parameter count %d cannot be split into x and y", len(pars))
	}
	half := len(pars) / 2
	return NewPoly(kind, domain, pars[:half], pars[half:])
}

// Params returns the abutted [parsx, parsy] vector.
func (p *Poly) Params() []float64 {
	out := make([]float64, 0, 2*len(p.ParsX))
	out = append(out, p.ParsX...)
	return append(out, p.ParsY...)
}

// Apply maps (x, y) into the target frame.
func (p *Poly) Apply(x, y float64) (float64, float64) {
	xr, yr := p.Domain.Rescale(x, y)
	bx, _ := p.Kind.table(p.Deg, xr)
	by, _ := p.Kind.table(p.Deg, yr)
	var outX, outY float64
	for k, pw := range p.powers {
		term := bx[pw.I] * by[pw.J]
		outX += p.ParsX[k] * term
		outY += p.ParsY[k] * term
	}
	return outX, outY
}

// Jacobian returns d(X,Y)/d(x,y) at (x, y), including the domain rescaling.
func (p *Poly) Jacobian(x, y float64) Jacobian {
	xr, yr := p.Domain.Rescale(x, y)
	bx, dx := p.Kind.table(p.Deg, xr)
	by, dy := p.Kind.table(p.Deg, yr)
	var j Jacobian
	for k, pw := range p.powers {
		ddx := dx[pw.I] * by[pw.J]
		ddy := bx[pw.I] * dy[pw.J]
		j[0][0] += p.ParsX[k] * ddx
		j[0][1] += p.ParsX[k] * ddy
		j[1][0] += p.ParsY[k] * ddx
		j[1][1] += p.ParsY[k] * ddy
	}
	return j.Mul(p.Domain.Jacobian())
}

// Vandermonde returns the N x nterms matrix of basis products at each point.
func (p *Poly) Vandermonde(pts []Point) *mat.Dense {
	return Vandermonde(p.Kind, p.Deg, p.Domain, pts)
}

// Pattern returns the design matrix for the abutted parameter vector.
func (p *Poly) Pattern(pts []Point) *mat.Dense {
	return Pattern(p.Kind, p.Deg, p.Domain, pts)
}

// Vandermonde returns the N x NumTerms(deg) matrix whose row i holds every
// basis product evaluated at the rescaled pts[i].
func Vandermonde(kind Kind, deg int, domain Domain, pts []Point) *mat.Dense {
	powers := Powers(deg)
	if len(pts) == 0 {
		return &mat.Dense{}
	}
	v := mat.NewDense(len(pts), len(powers), nil)
	for i, pt := range pts {
		xr, yr := domain.Rescale(pt.X, pt.Y)
		bx, _ := kind.table(deg, xr)
		by, _ := kind.table(deg, yr)
		for k, pw := range powers {
			v.Set(i, k, bx[pw.I]*by[pw.J])
		}
	}
	return v
}

// Pattern returns the 2N x 2*NumTerms(deg) design matrix.  Rows alternate X
// and Y for each point, so Pattern * [parsx, parsy] yields X0, Y0, X1, Y1, ...
func Pattern(kind Kind, deg int, domain Domain, pts []Point) *mat.Dense {
	v := Vandermonde(kind, deg, domain, pts)
	if v.IsEmpty() {
		return v
	}
	rows, nterms := v.Dims()
	pattern := mat.NewDense(2*rows, 2*nterms, nil)
	for i := 0; i < rows; i++ {
		for k := 0; k < nterms; k++ {
			b := v.At(i, k)
			pattern.Set(2*i, k, b)
			pattern.Set(2*i+1, nterms+k, b)
		}
	}
	return pattern
}
