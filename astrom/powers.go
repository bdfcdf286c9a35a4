package astrom

import (
	"errors"
	"fmt"
	"math"
)

var ErrNotTriangular = errors.New("coefficient count does not match any degree")

// Power is the pair of exponents (I on x, J on y) for one 2D term.
type Power struct {
	I, J int
}

// NumTerms returns the number of terms of total degree <= deg.
func NumTerms(deg int) int {
	return (deg + 1) * (deg + 2) / 2
}

// Powers lists the terms up to total degree deg, ordered by degree and, within
// a degree, from x-heavy to y-heavy: (0,0) (1,0) (0,1) (2,0) (1,1) (0,2) ...
func Powers(deg int) []Power {
	out := make([]Power, 0, NumTerms(deg))
	for d := 0; d <= deg; d++ {
		for j := 0; j <= d; j++ {
			out = append(out, Power{I: d - j, J: j})
		}
	}
	return out
}

// DegreeFromCount returns the degree whose term count is m.
func DegreeFromCount(m int) (int, error) {
	if m < 1 {
		return 0, fmt.Errorf("%w: %d", ErrNotTriangular, m)
	}
	d := (-3 + math.Sqrt(9+8*float64(m-1))) / 2
	deg := int(math.Round(d))
	if NumTerms(deg) != m {
		return 0, fmt.Errorf("%w: %d", ErrNotTriangular, m)
	}
	return deg, nil
}
