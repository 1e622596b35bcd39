package twobody

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/soniakeys/meeus/v3/julian"
)

func TestHohmann(t *testing.T) {
	rI := Earth.Radius + 191.34411
	rF := Earth.Radius + 35781.34857
	vDep, vArr, tof := Hohmann(rI, rF, Earth)
	if ΔvInit := vDep - math.Sqrt(Earth.GM()/rI); !floats.EqualWithinAbs(ΔvInit, 2.457038, 1e-6) {
		t.Fatalf("ΔvInit=%f", ΔvInit)
	}
	if ΔvFinal := vArr - math.Sqrt(Earth.GM()/rF); !floats.EqualWithinAbs(ΔvFinal, -1.478187, 1e-6) {
		t.Fatalf("ΔvFinal=%f", ΔvFinal)
	}
	tofExp := time.Duration(5)*time.Hour + time.Duration(15)*time.Minute + time.Duration(24)*time.Second
	if tof.Truncate(time.Second) != tofExp {
		t.Fatalf("tof=%s", tof)
	}
}

func TestTransferType(t *testing.T) {
	r1 := Vector3{7000, 0, 0}
	r2 := Vector3{0, 7000, 0}
	if TTypeAuto.Direction(r1, r2) != Short || TTypeAuto.Direction(r2, r1) != Long {
		t.Fatal("automatic direction of motion should be prograde")
	}
	for _, tc := range []struct {
		name string
		tt   TransferType
		dm   DirectionOfMotion
		revs int
	}{
		{"type-1", TType1, Short, 0},
		{"2", TType2, Long, 0},
		{"TYPE-3", TType3, Short, 1},
		{"type-4", TType4, Long, 1},
	} {
		tt, err := ParseTransferType(tc.name)
		if err != nil || tt != tc.tt {
			t.Fatalf("%s: %s %v", tc.name, tt, err)
		}
		if tt.Direction(r2, r1) != tc.dm || tt.Revs() != tc.revs {
			t.Fatalf("%s: invalid direction or revolutions", tt)
		}
	}
	if _, err := ParseTransferType("type-5"); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("type-5 does not exist")
	}
	assertPanic(t, func() { _ = TransferType(0).String() })
	assertPanic(t, func() { _ = TransferType(8).Revs() })
	assertPanic(t, func() { TransferType(8).Direction(r1, r2) })
}

func TestLambertDavisMars2Jupiter(t *testing.T) {
	// These tests are from Dr. Davis' ASEN 6008 IMD course at CU.
	dtDep := julian.JDToTime(2456300)
	dtArr := julian.JDToTime(2457500)
	Ri := Vector3{170145121.3, -117637192.8, -6642044.272}
	Rf := Vector3{-803451694.7, 121525767.1, 17465211.78}
	sol := TTypeAuto.Solve(NewLambertSolver(Sun, 0, MethodUniversal), Ri, Rf, dtArr.Sub(dtDep), Low)
	if sol.Err != nil {
		t.Fatalf("err = %s", sol.Err)
	}
	ViExp := Vector3{13.74077736, 28.83099312, 0.691285008}
	VfExp := Vector3{-0.883933069, -7.983627014, -0.2407705978}
	if !vectorsEqual(sol.V1, ViExp, 1e-6) || !vectorsEqual(sol.V2, VfExp, 1e-6) {
		t.Logf("\nGot %+v %+v\nExp %+v %+v\n", sol.V1, sol.V2, ViExp, VfExp)
		t.Fatal("incorrect velocities")
	}
}

func TestLambertDavisEarth2VenusT3(t *testing.T) {
	// These tests are from Dr. Davis' ASEN 6008 IMD course at CU.
	dtDep := julian.JDToTime(2460545)
	dtArr := julian.JDToTime(2460919)
	Ri := Vector3{130423562.1, -76679031.85, 3624.816561}
	Rf := Vector3{19195371.67, 106029328.4, 348953.802}
	for _, method := range []LambertMethod{MethodUniversal, MethodBattin} {
		sol := TType3.Solve(NewLambertSolver(Sun, 0, method), Ri, Rf, dtArr.Sub(dtDep), High)
		if sol.Err != nil {
			t.Fatalf("[%s] err = %s", method, sol.Err)
		}
		ViExp := Vector3{12.76771134, 22.79158874, 0.09033882633}
		VfExp := Vector3{-37.30072389, -0.1768534469, -0.06669308258}
		if !vectorsEqual(sol.V1, ViExp, 1e-6) || !vectorsEqual(sol.V2, VfExp, 1e-6) {
			t.Logf("\nGot %+v %+v\nExp %+v %+v\n", sol.V1, sol.V2, ViExp, VfExp)
			t.Fatalf("[%s] incorrect velocities", method)
		}
	}
}
