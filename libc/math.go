package libc

import "math"

// The interpreter's float support links against these. They have the C99 semantics, including
// NaN and infinity handling.

func (r *Runtime) Floor(x float64) float64 { return math.Floor(x) }

func (r *Runtime) Floorf(x float32) float32 { return float32(math.Floor(float64(x))) }

func (r *Runtime) Ceil(x float64) float64 { return math.Ceil(x) }

func (r *Runtime) Fmod(x, y float64) float64 { return math.Mod(x, y) }

func (r *Runtime) Sqrt(x float64) float64 { return math.Sqrt(x) }

func (r *Runtime) Pow(x, y float64) float64 { return math.Pow(x, y) }

func (r *Runtime) Log(x float64) float64 { return math.Log(x) }

func (r *Runtime) Exp(x float64) float64 { return math.Exp(x) }

// Frexp splits x into a fraction in [0.5, 1) and a power of two, storing the exponent in exp
func (r *Runtime) Frexp(x float64, exp *int) float64 {
	frac, e := math.Frexp(x)
	if exp != nil {
		*exp = e
	}
	return frac
}

func (r *Runtime) Ldexp(x float64, exp int) float64 { return math.Ldexp(x, exp) }

// Modf splits x into integral and fractional parts with the sign of x, storing the integral
// part in iptr
func (r *Runtime) Modf(x float64, iptr *float64) float64 {
	integral, frac := math.Modf(x)
	if iptr != nil {
		*iptr = integral
	}
	return frac
}
