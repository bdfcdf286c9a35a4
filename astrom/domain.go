package astrom

import (
	"errors"
	"math"
)

var ErrDegenerateDomain = errors.New("degenerate domain")

// Domain is the rectangle mapped onto [-1,1]x[-1,1] before polynomial
// evaluation.  It is usually the detector extent, not the data extent.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// UnitDomain leaves coordinates unscaled.
var UnitDomain = Domain{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

// DomainOf returns the bounding box of the points.
func DomainOf(pts []Point) (Domain, error) {
	if len(pts) == 0 {
		return Domain{}, ErrDegenerateDomain
	}
	d := Domain{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, p := range pts {
		d.XMin = math.Min(d.XMin, p.X)
		d.XMax = math.Max(d.XMax, p.X)
		d.YMin = math.Min(d.YMin, p.Y)
		d.YMax = math.Max(d.YMax, p.Y)
	}
	return d, d.Validate()
}

// Validate rejects zero-width or inverted domains.
func (d Domain) Validate() error {
	if !(d.XMax > d.XMin) || !(d.YMax > d.YMin) {
		return ErrDegenerateDomain
	}
	return nil
}

// Rescale maps x, y into [-1,1].
func (d Domain) Rescale(x, y float64) (float64, float64) {
	xr := (2*x - (d.XMax + d.XMin)) / (d.XMax - d.XMin)
	yr := (2*y - (d.YMax + d.YMin)) / (d.YMax - d.YMin)
	return xr, yr
}

// Jacobian of Rescale.
func (d Domain) Jacobian() Jacobian {
	return Jacobian{
		{2 / (d.XMax - d.XMin), 0},
		{0, 2 / (d.YMax - d.YMin)},
	}
}
