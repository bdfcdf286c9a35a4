package astrom

import "strings"

// Kind selects the one-dimensional basis used to build 2D polynomials.
type Kind int

const (
	Polynomial Kind = iota
	Chebyshev
	Legendre
	Hermite
	HermiteE
)

var kindNames = map[Kind]string{
	Polynomial: "Polynomial",
	Chebyshev:  "Chebyshev",
	Legendre:   "Legendre",
	Hermite:    "Hermite",
	HermiteE:   "HermiteE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Kinds returns every supported basis.
func Kinds() []Kind {
	return []Kind{Polynomial, Chebyshev, Legendre, Hermite, HermiteE}
}

// ParseKind maps a basis name onto a Kind, ignoring case.  Unsupported names
// fall back to Polynomial with ok set to false.
func ParseKind(name string) (kind Kind, ok bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return k, true
		}
	}
	return Polynomial, false
}

// recurrence returns a, c in p[n+1] = a*x*p[n] - c*p[n-1].
func (k Kind) recurrence(n int) (a, c float64) {
	fn := float64(n)
	switch k {
	case Chebyshev:
		if n == 0 {
			return 1, 0
		}
		return 2, 1
	case Legendre:
		return (2*fn + 1) / (fn + 1), fn / (fn + 1)
	case Hermite:
		return 2, 2 * fn
	case HermiteE:
		return 1, fn
	}
	return 1, 0
}

// Eval returns the degree-n basis function at x.
func (k Kind) Eval(n int, x float64) float64 {
	v, _ := k.evalDeriv(n, x)
	return v
}

// Deriv returns the derivative of the degree-n basis function at x.
func (k Kind) Deriv(n int, x float64) float64 {
	_, d := k.evalDeriv(n, x)
	return d
}

func (k Kind) evalDeriv(n int, x float64) (float64, float64) {
	if n <= 0 {
		return 1, 0
	}
	prev, prevD := 0.0, 0.0
	cur, curD := 1.0, 0.0
	for i := 0; i < n; i++ {
		a, c := k.recurrence(i)
		next := a*x*cur - c*prev
		nextD := a*cur + a*x*curD - c*prevD
		prev, prevD = cur, curD
		cur, curD = next, nextD
	}
	return cur, curD
}

// table fills values and derivatives for degrees 0..deg at x.
func (k Kind) table(deg int, x float64) (vals, ders []float64) {
	vals = make([]float64, deg+1)
	ders = make([]float64, deg+1)
	vals[0] = 1
	if deg == 0 {
		return vals, ders
	}
	prev, prevD := 0.0, 0.0
	for i := 0; i < deg; i++ {
		a, c := k.recurrence(i)
		vals[i+1] = a*x*vals[i] - c*prev
		ders[i+1] = a*vals[i] + a*x*ders[i] - c*prevD
		prev, prevD = vals[i], ders[i]
	}
	return vals, ders
}
