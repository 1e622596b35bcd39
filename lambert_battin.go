package twobody

import (
	"fmt"
	"math"
)

const (
	battinTol         = 1e-6
	battinMaxIter     = 30
	battinHighMaxIter = 20
	battinCFTol       = 1e-8
)

// seebattCoeffs are the continued fraction coefficients of Battin's ξ(x) function.
var seebattCoeffs = func() (c [21]float64) {
	c[0] = 0.2
	for n := 1; n < len(c); n++ {
		m := float64(n)
		c[n] = (m + 2) * (m + 2) / ((2*m + 3) * (2*m + 5))
	}
	return
}()

// kbattCoeffs are the continued fraction coefficients of Battin's K(u) function.
var kbattCoeffs = [21]float64{
	1 / 3., 4 / 27., 8 / 27., 2 / 9., 22 / 81., 208 / 891., 340 / 1287., 418 / 1755., 598 / 2295., 700 / 2907.,
	928 / 3591., 1054 / 4347., 1330 / 5175., 1480 / 6075., 1804 / 7047., 1978 / 8091., 2350 / 9207.,
	2548 / 10395., 2968 / 11655., 3190 / 12987., 3658 / 14391.,
}

// continuedFraction evaluates c0 / (1 + c1 v / (1 + c2 v / ...)) with the forward recurrence, until the term is
// below the tolerance or the coefficients are exhausted.
func continuedFraction(c []float64, v float64) float64 {
	delold, termold := 1.0, c[0]
	sum := termold
	for i := 1; i < len(c) && math.Abs(termold) > battinCFTol; i++ {
		del := 1 / (1 + c[i]*v*delold)
		term := termold * (del - 1)
		sum += term
		delold, termold = del, term
	}
	return sum
}

// seebatt is Battin's ξ(v) function.
func seebatt(v float64) float64 {
	sqrtopv := math.Sqrt(1 + v)
	η := v / ((1 + sqrtopv) * (1 + sqrtopv))
	sum := continuedFraction(seebattCoeffs[:], η)
	return 8 * (1 + sqrtopv) / (3 + sum/(1+η*sum))
}

// kbatt is Battin's K(u) function.
func kbatt(v float64) float64 {
	return continuedFraction(kbattCoeffs[:], v)
}

// battinInvariants are Battin's transformed geometry: λ, L and m.
type battinInvariants struct {
	λ, L, m float64
	nrev    float64
}

func newBattinInvariants(geom TransferGeometry, Δt, μ float64) battinInvariants {
	λ := math.Sqrt(geom.r1*geom.r2) * math.Cos(geom.Δν/2) / geom.s
	L := math.Pow((1-λ)/(1+λ), 2)
	m := 8 * μ * Δt * Δt / (geom.s * geom.s * geom.s * math.Pow(1+λ, 6))
	return battinInvariants{λ: λ, L: L, m: m, nrev: float64(geom.Nrev)}
}

// lowStep returns the next x of the standard iteration.
func (b battinInvariants) lowStep(x float64) float64 {
	L, m := b.L, b.m
	var h1, h2 float64
	if b.nrev > 0 {
		T := 1 / ((1 + 2*x + L) * 4 * x * x)
		τ := (b.nrev*math.Pi/2 + math.Atan(math.Sqrt(x))) / math.Sqrt(x)
		h1 = T * (L + x) * (L + x) * (3*(1+x)*(1+x)*τ - (3 + 5*x))
		h2 = T * m * ((x*x-x*(1+L)-3*L)*τ + (3*L + x))
	} else {
		ξ := seebatt(x)
		den := (1 + 2*x + L) * (4*x + ξ*(3+x))
		h1 = (L + x) * (L + x) * (1 + 3*x + ξ) / den
		h2 = m * (x - L + ξ) / den
	}
	B := 27 * h2 / (4 * math.Pow(1+h1, 3))
	U := B / (2 * (math.Sqrt(1+B) + 1))
	K := kbatt(U)
	y := (1 + h1) / 3 * (2 + math.Sqrt(1+B)/(1+2*U*K*K))
	return math.Sqrt(math.Pow((1-L)/2, 2)+m/(y*y)) - (1+L)/2
}

// highStep returns the next x (and y) of the high energy multi-revolution iteration, which solves the cubic in
// closed form. The returned values may be NaN when the iterate leaves the domain.
func (b battinInvariants) highStep(x float64) (xn, y float64) {
	L, m := b.L, b.m
	temp := 1 / (2 * (L - x*x))
	t1 := math.Sqrt(x)
	t2 := (b.nrev*math.Pi/2 + math.Atan(t1)) / t1
	h1 := temp * (L + x) * (1 + 2*x + L)
	h2 := temp * m * t1 * ((L-x*x)*t2 - (L + x))
	bb := 27 * h2 / (4 * math.Pow(t1*(1+h1), 3))
	var f float64
	if bb < -1 {
		f = 2 * math.Cos(math.Acos(math.Sqrt(bb+1))/3)
	} else {
		A := math.Cbrt(math.Sqrt(bb) + math.Sqrt(bb+1))
		f = A + 1/A
	}
	y = 2. / 3. * t1 * (1 + h1) * (math.Sqrt(bb+1)/f + 1)
	k := m/(y*y) - (1 + L)
	return 0.5 * (k - math.Sqrt(k*k-4*L)), y
}

// resetNaN restarts the high energy iteration from y=75, x=1 if the step diverged.
func resetNaN(xn, y float64) (float64, float64, bool) {
	if math.IsNaN(xn) || math.IsNaN(y) {
		return 1, 75, true
	}
	return xn, y, false
}

// solveHigh runs the high energy iteration and returns the converged x and the number of iterations.
func (b battinInvariants) solveHigh() (x float64, loops int, err error) {
	xn, x := 1e-20, 10.
	resets := 0
	for loops = 0; math.Abs(xn-x) >= battinTol && loops < battinHighMaxIter; loops++ {
		x = xn
		var y float64
		var reset bool
		xn, y = b.highStep(x)
		if xn, _, reset = resetNaN(xn, y); reset {
			resets++
		}
	}
	if math.IsNaN(xn) {
		return xn, loops, convergenceErr("lambertbattin", loops, math.NaN(), ErrNumericDegenerate)
	}
	if math.Abs(xn-x) >= battinTol {
		err = ErrNonConvergence
		if resets > 0 {
			err = ErrNumericDegenerate
		}
		return xn, loops, convergenceErr("lambertbattin", loops, xn-x, err)
	}
	return xn, loops, nil
}

// solveLow runs the standard iteration and returns the converged x and the number of iterations.
func (b battinInvariants) solveLow() (x float64, loops int, err error) {
	xn := b.L
	if b.nrev > 0 {
		xn = 1 + 4*b.L
	}
	x = 10
	for loops = 0; math.Abs(xn-x) >= battinTol && loops < battinMaxIter; loops++ {
		x = xn
		xn = b.lowStep(x)
	}
	if math.IsNaN(xn) {
		return xn, loops, convergenceErr("lambertbattin", loops, math.NaN(), ErrNumericDegenerate)
	}
	if math.Abs(xn-x) >= battinTol {
		return xn, loops, convergenceErr("lambertbattin", loops, xn-x, ErrNonConvergence)
	}
	return xn, loops, nil
}

// battinMinSinHalf is the smallest |sin(Δν/2)| for which the semi-latus rectum is recovered accurately.
const battinMinSinHalf = 1e-5

// LambertBattin solves the boundary value problem with Battin's method. The converged x provides the semi-latus
// rectum and eccentricity of the transfer, and the velocities are then built by Hodograph. v1 only fixes the
// transfer plane when r1 and r2 are colinear.
func LambertBattin(geom TransferGeometry, v1 Vector3, Δt, altPad float64, body CelestialObject) LambertSolution {
	μ := body.GM()
	if !(Δt > 0) {
		return failedSolution(MethodBattin, 0, fmt.Errorf("%w: non-positive time of flight %f", ErrInvalidInput, Δt))
	}
	if sinHalf := math.Abs(math.Sin(geom.Δν / 2)); sinHalf < battinMinSinHalf {
		// p scales with sin²(Δν/2): the hodograph would not reach r2.
		return failedSolution(MethodBattin, 0, fmt.Errorf("%w: transfer angle %g rad too close to 0 or 2π", ErrNumericDegenerate, geom.Δν))
	}
	b := newBattinInvariants(geom, Δt, μ)
	var x float64
	var loops int
	var err error
	if geom.De == High && geom.Nrev > 0 {
		x, loops, err = b.solveHigh()
	} else {
		x, loops, err = b.solveLow()
	}
	if err != nil {
		return failedSolution(MethodBattin, loops, err)
	}
	p, ecc := b.conic(geom, x)
	if math.IsNaN(p) || math.IsNaN(ecc) || !(p > 0) {
		return failedSolution(MethodBattin, loops, fmt.Errorf("%w: p=%f ecc=%f", ErrNumericDegenerate, p, ecc))
	}
	sol := LambertSolution{Converged: true, Iterations: loops, Method: MethodBattin}
	sol.V1, sol.V2 = Hodograph(geom.R1, geom.R2, v1, p, ecc, geom.Δν, Δt, body)
	sol.Impact = CheckHitEarth(altPad, geom.R1, sol.V1, geom.R2, sol.V2, geom.Nrev, body)
	sol.HitEarth = sol.Impact.Hit
	return sol
}

// conic returns the semi-latus rectum and the eccentricity of the transfer from the converged x.
func (b battinInvariants) conic(geom TransferGeometry, x float64) (p, ecc float64) {
	y := math.Sqrt(b.m / ((1 + x) * (b.L + x)))
	sinHalf := math.Sin(geom.Δν / 2)
	ror := geom.r2 / geom.r1
	ε := ror - 1
	p = 2 * geom.r1 * geom.r2 * y * y * (1 + x) * (1 + x) * sinHalf * sinHalf / (b.m * geom.s * (1 + b.λ) * (1 + b.λ))
	q := 4 * ror * sinHalf * sinHalf
	ecc = math.Sqrt((ε*ε + q*math.Pow((b.L-x)/(b.L+x), 2)) / (ε*ε + q))
	return p, ecc
}
