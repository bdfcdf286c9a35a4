package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/viant/mcmcrun/astrom"
	"go.uber.org/zap"
)

// SimulateCmd draws npoints_sim tangent-plane points with a fixed per-point
// uncertainty and projects them, covariances included, onto the sky.
type SimulateCmd struct {
	Alpha0  float64 `long:"alpha0" description:"tangent point right ascension, degrees" default:"0"`
	Delta0  float64 `long:"delta0" description:"tangent point declination, degrees" default:"0"`
	Sidelen float64 `long:"sidelen" description:"half-width of the tangent-plane square, degrees" default:"0.1"`
	SigX    float64 `long:"sigx" description:"xi uncertainty, arcsec" default:"0.05"`
	SigY    float64 `long:"sigy" description:"eta uncertainty, arcsec" default:"0.05"`
	Rho     float64 `long:"rho" description:"xi-eta correlation" default:"0"`
	Seed    uint64  `long:"seed" description:"random seed" default:"1"`
	Output  string  `short:"o" long:"output" description:"destination URL for the CSV; stdout when empty"`
}

func (c *SimulateCmd) Execute(_ []string) error {
	ctx := context.Background()
	svc, loaded, err := loadParfile(ctx)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	if !cfg.Simulating {
		return fmt.Errorf("%s: simulating is False", loaded.URL)
	}
	if cfg.NPointsSim == 0 {
		return fmt.Errorf("%s: npoints_sim is 0", loaded.URL)
	}
	if c.Sidelen <= 0 {
		return fmt.Errorf("--sidelen must be positive")
	}
	if c.Rho <= -1 || c.Rho >= 1 {
		return fmt.Errorf("--rho must lie in (-1, 1)")
	}

	rng := rand.New(rand.NewPCG(c.Seed, c.Seed))
	noise := astrom.Noise{SigX: c.SigX / 3600, SigY: c.SigY / 3600, Rho: c.Rho}
	pts, covs := astrom.Simulate(rng, cfg.NPointsSim, c.Sidelen, noise)
	toEqu := astrom.TanToEqu{TangentPoint: astrom.TangentPoint{Alpha0: c.Alpha0, Delta0: c.Delta0}}
	sky, skyCovs, err := astrom.Propagate(ctx, toEqu, pts, covs)
	if err != nil {
		return err
	}

	data, err := encodeCSV(pts, sky, skyCovs)
	if err != nil {
		return err
	}
	if c.Output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := svc.FS().Upload(ctx, c.Output, 0o644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %q: %w", c.Output, err)
	}
	svc.Logger().Info("simulated points written", zap.Int("points", len(pts)), zap.String("url", c.Output))
	fmt.Fprintf(stdout, "wrote %d points to %s\n", len(pts), c.Output)
	return nil
}

var csvHeader = []string{"xi", "eta", "alpha", "delta", "var_alpha", "var_delta", "cov_alpha_delta"}

func encodeCSV(pts, sky []astrom.Point, covs []astrom.Cov2) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range pts {
		record := []string{
			f(pts[i].X), f(pts[i].Y),
			f(sky[i].X), f(sky[i].Y),
			f(covs[i][0][0]), f(covs[i][1][1]), f(covs[i][0][1]),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
