package guidance

import (
	"math"
	"testing"
)

func TestSetSpeedXYFloors(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})
	c.SetSpeedXY(1)
	if c.wpDesiredSpeedXYCMS != WPNAVWPSpeedMin {
		t.Errorf("SetSpeedXY(1) desired speed = %v, want floor %v", c.wpDesiredSpeedXYCMS, WPNAVWPSpeedMin)
	}
	if posCtrl.maxSpeedXY != WPNAVWPSpeedMin {
		t.Errorf("SetSpeedXY(1) did not propagate floor to position controller: %v", posCtrl.maxSpeedXY)
	}
}

func TestWPSpeedUpdateNudgesSpeedCapUp(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})
	posCtrl.maxSpeedXY = 0
	c.params.WPAccelCMSS = 100
	c.wpDesiredSpeedXYCMS = 500

	c.wpSpeedUpdate(0.01)

	want := 1.0 // 100 * 0.01
	if math.Abs(posCtrl.maxSpeedXY-want) > 1e-9 {
		t.Errorf("maxSpeedXY after one accelerating tick = %v, want %v", posCtrl.maxSpeedXY, want)
	}
	if !c.flags.recalcWPLeash {
		t.Error("expected recalcWPLeash to be set after a speed-cap change")
	}
}

func TestWPSpeedUpdateNudgesSpeedCapDown(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})
	posCtrl.maxSpeedXY = 500
	c.params.WPAccelCMSS = 100
	c.wpDesiredSpeedXYCMS = 200

	c.wpSpeedUpdate(0.01)

	want := 499.0 // 500 - 100*0.01
	if math.Abs(posCtrl.maxSpeedXY-want) > 1e-9 {
		t.Errorf("maxSpeedXY after one decelerating tick = %v, want %v", posCtrl.maxSpeedXY, want)
	}
}

func TestWPSpeedUpdateClampsAtDesired(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})
	posCtrl.maxSpeedXY = 499
	c.params.WPAccelCMSS = 10000
	c.wpDesiredSpeedXYCMS = 500

	c.wpSpeedUpdate(1.0)

	if posCtrl.maxSpeedXY != 500 {
		t.Errorf("maxSpeedXY = %v, want clamped to desired 500", posCtrl.maxSpeedXY)
	}
}

func TestWPSpeedUpdateNoOpWhenAlreadyAtDesired(t *testing.T) {
	posCtrl := newFakePosController()
	c := newTestCore(posCtrl, &fakeInertial{})
	posCtrl.maxSpeedXY = 500
	c.wpDesiredSpeedXYCMS = 500
	c.flags.recalcWPLeash = false

	c.wpSpeedUpdate(0.01)

	if c.flags.recalcWPLeash {
		t.Error("expected no recalc flag when speed cap already matches the desired speed")
	}
}
