// Package relay fans guidance status lines out to ground-station
// listeners over UDP and TCP, grounded on rbc's sender/formatter split.
package relay

import (
	"fmt"
	"time"
)

// StatusLine is one tick's worth of guidance telemetry in the ASCII CSV
// form ground stations on this fleet already parse for RBC messages.
type StatusLine struct {
	VehicleID   int64
	TimestampMS int64
	SegmentType int
	PosX, PosY, PosZ float64
	TargetX, TargetY, TargetZ float64
	YawCD       float64
	Reached     bool
}

// FormatStatusLine renders s as "wpnav:<id>,<time>,<seg>,<px>,<py>,<pz>,
// <tx>,<ty>,<tz>,<yaw>,<reached>\r\n".
func FormatStatusLine(s StatusLine) []byte {
	t := time.UnixMilli(s.TimestampMS)
	timeStr := t.Format("20060102150405.000")

	reached := 0
	if s.Reached {
		reached = 1
	}

	body := fmt.Sprintf("wpnav:%d,%s,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.1f,%d\r\n",
		s.VehicleID, timeStr, s.SegmentType,
		s.PosX, s.PosY, s.PosZ,
		s.TargetX, s.TargetY, s.TargetZ,
		s.YawCD, reached)
	return []byte(body)
}
