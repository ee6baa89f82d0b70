package guidance

import (
	"errors"
	"math"
	"testing"
)

func TestSetWPDestinationNEDScalesMetresToCentimetres(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})

	if !c.SetWPDestinationNED(Vec3{X: 1, Y: 2, Z: 3}) {
		t.Fatal("SetWPDestinationNED returned false")
	}

	want := Vec3{X: 100, Y: 200, Z: -300}
	if got := c.GetWPDestination(); got != want {
		t.Errorf("destination = %v, want %v", got, want)
	}
}

func TestSetWPDestinationLocFailsWithoutOrigin(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})

	err := c.SetWPDestinationLoc(fakeOrigin{ok: false}, Location{})
	if !errors.Is(err, ErrNoEKFOrigin) {
		t.Errorf("err = %v, want ErrNoEKFOrigin", err)
	}
}

func TestSetWPDestinationLocPropagatesNoTerrainData(t *testing.T) {
	posCtrl := newFakePosController()
	c := New(&fakeInertial{}, &fakeAttitude{maxLeanRad: 0.6}, &fakeTerrain{ok: false}, posCtrl, DefaultParams())
	c.WPAndSplineInit()

	origin := fakeOrigin{loc: Location{LatE7: 370000000, LngE7: -1220000000}, ok: true}
	loc := Location{LatE7: 370000100, LngE7: -1219999900, AltCM: 100, Frame: AltFrameAboveTerrain}

	err := c.SetWPDestinationLoc(origin, loc)
	if !errors.Is(err, ErrNoTerrainData) {
		t.Errorf("err = %v, want ErrNoTerrainData", err)
	}
	if c.GetWPDestination() != (Vec3{}) {
		t.Errorf("destination changed despite failed terrain-relative setup: %v", c.GetWPDestination())
	}
}

func TestSetGetWPDestinationLocRoundTrips(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})

	origin := fakeOrigin{loc: Location{LatE7: 370000000, LngE7: -1220000000, AltCM: 5000}, ok: true}
	want := Location{LatE7: 370001000, LngE7: -1219999000, AltCM: 6000, Frame: AltFrameAbsolute}

	if err := c.SetWPDestinationLoc(origin, want); err != nil {
		t.Fatalf("SetWPDestinationLoc: %v", err)
	}

	got, ok := c.GetWPDestinationLoc(origin)
	if !ok {
		t.Fatal("GetWPDestinationLoc reported no EKF origin")
	}

	gotVec := locationToVecNEU(origin.loc, got)
	wantVec := locationToVecNEU(origin.loc, want)
	if d := gotVec.Sub(wantVec).Length(); d > 1.0 {
		t.Errorf("round-trip drifted by %v cm: got %+v, want %+v", d, got, want)
	}
}

func TestGetWPDestinationLocFailsWithoutOrigin(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})

	_, ok := c.GetWPDestinationLoc(fakeOrigin{ok: false})
	if ok {
		t.Error("expected ok=false when no EKF origin is set")
	}
}

func TestLocationToVecNEUAboveOriginUsesAltDirectly(t *testing.T) {
	origin := Location{LatE7: 370000000, LngE7: -1220000000, AltCM: 5000}
	loc := Location{LatE7: 370000000, LngE7: -1220000000, AltCM: 1234, Frame: AltFrameAboveOrigin}

	got := locationToVecNEU(origin, loc)
	if math.Abs(got.Z-1234) > 1e-9 {
		t.Errorf("Z = %v, want 1234 (AboveOrigin altitude passes through unchanged)", got.Z)
	}
}
