package guidance

import "gonum.org/v1/gonum/stat"

// trackHealthWindow bounds how many recent track_error_xy samples feed
// TrackErrorStats. It is not part of the control loop: advance_wp_target
// and advance_spline_target never read it, only observers do.
const trackHealthWindow = 200

// diagnostics keeps a rolling window of track_error_xy samples and
// reports mean/stddev on demand via gonum/stat, the way the teacher's
// RKStatistics windows residuals for its diagnostics. It never affects
// control decisions; it exists so a ground-station or log consumer can
// ask "how well is this segment tracking".
type diagnostics struct {
	window []float64
	cap    int
	head   int
	filled bool
}

func newDiagnostics(capacity int) diagnostics {
	return diagnostics{window: make([]float64, capacity), cap: capacity}
}

func (d *diagnostics) observe(sample float64) {
	if d.cap == 0 {
		return
	}
	d.window[d.head] = sample
	d.head = (d.head + 1) % d.cap
	if d.head == 0 {
		d.filled = true
	}
}

func (d *diagnostics) samples() []float64 {
	if d.filled {
		return d.window
	}
	return d.window[:d.head]
}

func (d *diagnostics) meanStddev() (mean, stddev float64) {
	s := d.samples()
	if len(s) == 0 {
		return 0, 0
	}
	mean, stddevPop := stat.MeanStdDev(s, nil)
	return mean, stddevPop
}

// TrackErrorStats reports the mean and standard deviation of the most
// recent horizontal track-error samples observed on the active segment.
// Intended for telemetry/ground-station consumption, never for feedback
// into the advancer itself.
func (c *Core) TrackErrorStats() (mean, stddev float64) {
	return c.diag.meanStddev()
}

// SegmentProgress reports the fraction of the active segment's track
// length consumed so far, in [0, 1]. Used by mission sequencers deciding
// whether to pre-stage the next leg.
func (c *Core) SegmentProgress() float64 {
	if IsZero(c.trackLength) {
		return 1
	}
	return Constrain(c.trackDesired/c.trackLength, 0, 1)
}
