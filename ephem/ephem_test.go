package ephem

import (
	"errors"
	"math"
	"os"
	"testing"
	"time"

	twobody "github.com/Posnet/Vallado-sub005"
	"github.com/gonum/floats"
	"github.com/soniakeys/meeus/v3/julian"
)

func vsop87(t *testing.T) *VSOP87 {
	if os.Getenv(DataEnv) == "" {
		t.Skipf("%s not set", DataEnv)
	}
	e, err := NewVSOP87FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestLBR2XYZ(t *testing.T) {
	R := lbr2xyz(math.Pi/2, 0, 1)
	if !floats.EqualWithinAbs(R[0], 0, 1e-6) || !floats.EqualWithinAbs(R[1], twobody.AU, 1e-6) || R[2] != 0 {
		t.Fatalf("R=%+v", R)
	}
	R = lbr2xyz(0, -math.Pi/2, 2)
	if !floats.EqualWithinAbs(R[2], -2*twobody.AU, 1e-6) {
		t.Fatalf("R=%+v", R)
	}
}

func TestNewVSOP87Errors(t *testing.T) {
	if _, err := NewVSOP87("/this/does/not/exist"); err == nil {
		t.Fatal("missing directory should fail")
	}
	t.Setenv(DataEnv, "")
	if _, err := NewVSOP87FromEnv(); err == nil {
		t.Fatal("empty environment should fail")
	}
	e, err := NewVSOP87(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := e.HelioState(twobody.Earth, time.Now()); err == nil {
		t.Fatal("empty directory should fail to load Earth")
	}
	moon, _ := twobody.NewCelestialObject("Moon", 1737.4, 4902.8)
	if _, _, err := e.HelioState(moon, time.Now()); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("err=%v", err)
	}
	if R, V, err := e.HelioState(twobody.Sun, time.Now()); err != nil || !R.IsZero() || !V.IsZero() {
		t.Fatal("the Sun is at the origin")
	}
}

func TestVSOP87States(t *testing.T) {
	e := vsop87(t)
	dt := time.Date(2016, 3, 24, 20, 41, 48, 0, time.UTC)
	for _, tc := range []struct {
		body       twobody.CelestialObject
		rMin, rMax float64 // AU
	}{
		{twobody.Earth, 0.983, 1.017},
		{twobody.Venus, 0.718, 0.729},
		{twobody.Mars, 1.381, 1.666},
		{twobody.Jupiter, 4.95, 5.46},
		{twobody.Pluto, 29.6, 49.4},
	} {
		R, V, err := e.HelioState(tc.body, dt)
		if err != nil {
			t.Fatalf("%s: %s", tc.body, err)
		}
		r := R.Norm() / twobody.AU
		if r < tc.rMin || r > tc.rMax {
			t.Fatalf("%s at %f AU", tc.body, r)
		}
		o, err := twobody.NewOrbitFromRV(R, V, twobody.Sun)
		if err != nil {
			t.Fatalf("%s: %s", tc.body, err)
		}
		if a := o.SemiMajorAxis() / twobody.AU; a < tc.rMin || a > tc.rMax {
			t.Fatalf("%s: a=%f AU from the finite difference velocity", tc.body, a)
		}
		if inc := math.Acos(R.Cross(V).Unit()[2]); inc > 0.35 {
			t.Fatalf("%s inclined by %f rad on the ecliptic", tc.body, inc)
		}
	}
}

func TestLambertDavisEarth2Venus(t *testing.T) {
	// These tests are from Dr. Davis' ASEN 6008 IMD course at CU.
	e := vsop87(t)
	dt := julian.JDToTime(2455450)
	dtArr := julian.JDToTime(2455610)
	rEarth, vEarth, err := e.HelioState(twobody.Earth, dt)
	if err != nil {
		t.Fatal(err)
	}
	rVenus, vVenus, err := e.HelioState(twobody.Venus, dtArr)
	if err != nil {
		t.Fatal(err)
	}
	sol := twobody.TType2.Solve(twobody.NewLambertSolver(twobody.Sun, 0, twobody.MethodUniversal), rEarth, rVenus, dtArr.Sub(dt), twobody.Low)
	if sol.Err != nil {
		t.Fatalf("err = %s", sol.Err)
	}
	ViExp := twobody.Vector3{4.650884, 26.082007, -1.393243}
	VfExp := twobody.Vector3{16.790445, -33.353309, 1.523397}
	if sol.V1.Sub(ViExp).Norm() > 1e-3 || sol.V2.Sub(VfExp).Norm() > 1e-3 {
		t.Logf("\nGot %+v %+v\nExp %+v %+v\n", sol.V1, sol.V2, ViExp, VfExp)
		t.Fatal("incorrect velocities")
	}
	if vInf := sol.V1.Sub(vEarth).Norm(); vInf > 5 {
		t.Fatalf("departure v∞=%f", vInf)
	}
	if vInf := sol.V2.Sub(vVenus).Norm(); vInf > 7 {
		t.Fatalf("arrival v∞=%f", vInf)
	}
}
