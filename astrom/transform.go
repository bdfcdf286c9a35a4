package astrom

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Transform maps positions from one frame to another.
type Transform interface {
	Apply(x, y float64) (float64, float64)
	Jacobian(x, y float64) Jacobian
}

var (
	_ Transform = (*Poly)(nil)
	_ Transform = TanToEqu{}
	_ Transform = EquToTan{}
	_ Transform = Chain{}
)

// Chain applies its transforms in order.
type Chain []Transform

func (c Chain) Apply(x, y float64) (float64, float64) {
	for _, t := range c {
		x, y = t.Apply(x, y)
	}
	return x, y
}

// Jacobian composes the stage Jacobians, each evaluated at its own input.
func (c Chain) Jacobian(x, y float64) Jacobian {
	j := Identity
	for _, t := range c {
		j = t.Jacobian(x, y).Mul(j)
		x, y = t.Apply(x, y)
	}
	return j
}

// chunkSize bounds the work handed to one goroutine by Propagate.
const chunkSize = 4096

// Propagate maps pts through t and, when covs is non-nil, transforms each
// covariance as J C J^T at its point.  Inputs larger than one chunk are split
// across goroutines.
func Propagate(ctx context.Context, t Transform, pts []Point, covs []Cov2) ([]Point, []Cov2, error) {
	if covs != nil && len(covs) != len(pts) {
		return nil, nil, fmt.Errorf("have %d positions but %d covariances", len(pts), len(covs))
	}
	outPts := make([]Point, len(pts))
	var outCovs []Cov2
	if covs != nil {
		outCovs = make([]Cov2, len(covs))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(pts); start += chunkSize {
		start := start
		end := min(start+chunkSize, len(pts))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				p := pts[i]
				outPts[i].X, outPts[i].Y = t.Apply(p.X, p.Y)
				if outCovs != nil {
					outCovs[i] = covs[i].Propagate(t.Jacobian(p.X, p.Y))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return outPts, outCovs, nil
}

// Deltas compares a small finite step through t with its linear estimate.
type Deltas struct {
	Direct Point
	Linear Point
}

// Nudge offsets (x, y) by (dxArcsec, dyArcsec), given in arcseconds of the
// input units (degrees), and returns the resulting output shift computed
// directly and via the Jacobian.
func Nudge(t Transform, x, y, dxArcsec, dyArcsec float64) Deltas {
	dx, dy := dxArcsec/3600, dyArcsec/3600
	x0, y0 := t.Apply(x, y)
	x1, y1 := t.Apply(x+dx, y+dy)
	lx, ly := t.Jacobian(x, y).Apply(dx, dy)
	return Deltas{
		Direct: Point{X: x1 - x0, Y: y1 - y0},
		Linear: Point{X: lx, Y: ly},
	}
}
