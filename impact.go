package twobody

import "math"

// ImpactReason explains why a transfer was flagged by CheckHitEarth.
type ImpactReason string

const (
	// ImpactNone is used when the transfer clears the padded radius.
	ImpactNone ImpactReason = ""
	// ImpactRadii flags an endpoint already inside the padded radius.
	ImpactRadii ImpactReason = "_radii"
	// ImpactMultiRev flags a multi-revolution transfer whose periapsis is inside the padded radius.
	ImpactMultiRev ImpactReason = "Sub_Earth_nrrev"
	// ImpactParabolic flags a parabolic transfer passing through a low periapsis.
	ImpactParabolic ImpactReason = "Sub_Earth_para"
	// ImpactElliptic flags an elliptic transfer passing through a low periapsis.
	ImpactElliptic ImpactReason = "Sub_Earth_Ell"
	// ImpactHyperbolic flags an hyperbolic transfer passing through a low periapsis.
	ImpactHyperbolic ImpactReason = "Sub_Earth_hyp"
)

// ImpactCheck is the outcome of CheckHitEarth. Rp is the periapsis radius and A the semi-major axis (+Inf for a
// parabola); both are zero when an endpoint is already inside the padded radius.
type ImpactCheck struct {
	Hit    bool
	Reason ImpactReason
	Rp, A  float64
}

// CheckHitEarth determines whether the transfer (r1, v1t) -> (r2, v2t) passes below the radius of the body
// padded by altPad (km). For single revolution transfers, periapsis is only checked if it lies between both
// endpoints. This check is advisory.
func CheckHitEarth(altPad float64, r1, v1t, r2, v2t Vector3, nrev int, body CelestialObject) ImpactCheck {
	μ := body.GM()
	rpad := body.Radius + altPad
	r1n, r2n := r1.Norm(), r2.Norm()
	if r1n < rpad || r2n < rpad {
		return ImpactCheck{Hit: true, Reason: ImpactRadii}
	}
	rdv1, rdv2 := r1.Dot(v1t), r2.Dot(v2t)
	ainv := 2/r1n - v1t.Dot(v1t)/μ
	ecosE1, ecosE2 := 1-r1n*ainv, 1-r2n*ainv
	h := r1.Cross(v1t).Norm()

	chk := ImpactCheck{A: math.Inf(1)}
	parabolic := math.Abs(ainv) <= 1e-10
	if parabolic {
		chk.Rp = h * h / (2 * μ)
	} else {
		chk.A = 1 / ainv
		ecc := math.Sqrt(math.Max(0, 1-h*h*ainv/μ))
		chk.Rp = chk.A * (1 - ecc)
	}

	if nrev > 0 {
		if chk.Rp < rpad {
			chk.Hit, chk.Reason = true, ImpactMultiRev
		}
		return chk
	}
	throughPeriapsis := (rdv1 < 0 && rdv2 > 0) ||
		(ainv > 0 && ((rdv1 < 0 && rdv2 < 0 && ecosE2 < ecosE1) || (rdv1 > 0 && rdv2 > 0 && ecosE2 > ecosE1)))
	if throughPeriapsis && chk.Rp < rpad {
		chk.Hit = true
		switch {
		case parabolic:
			chk.Reason = ImpactParabolic
		case ainv > 0:
			chk.Reason = ImpactElliptic
		default:
			chk.Reason = ImpactHyperbolic
		}
	}
	return chk
}
