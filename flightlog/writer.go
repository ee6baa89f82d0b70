// Package flightlog records per-tick guidance core state to a
// length-prefixed msgpack stream for later replay, grounded on binlog's
// sequential length-prefixed record framing.
package flightlog

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// frameMagic tags the start of the file so a reader can sanity-check it
// before trusting the record stream that follows.
const frameMagic = 0x464c4f47 // "FLOG"

// Tick is one sample of guidance state, written once per call to
// guidance.Core.UpdateWPNav by the caller that owns the core.
type Tick struct {
	TimestampMS int64   `msgpack:"ts"`
	SegmentType int     `msgpack:"seg"`
	PosX        float64 `msgpack:"px"`
	PosY        float64 `msgpack:"py"`
	PosZ        float64 `msgpack:"pz"`
	TargetX     float64 `msgpack:"tx"`
	TargetY     float64 `msgpack:"ty"`
	TargetZ     float64 `msgpack:"tz"`
	TrackDesired float64 `msgpack:"td"`
	TrackLength  float64 `msgpack:"tl"`
	TrackSpeed   float64 `msgpack:"spd"`
	TrackErrorXY float64 `msgpack:"te"`
	YawCD        float64 `msgpack:"yaw"`
	Reached      bool    `msgpack:"rch"`
}

// Writer appends Tick frames to a file, each prefixed with a uint32
// little-endian byte length the way binlog.BinlogParser's own record loop
// expects to read lengths back.
type Writer struct {
	f *os.File
}

// Create opens path for writing, truncating any existing file, and writes
// the magic header.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("flightlog: create %s: %w", path, err)
	}
	hdr := make([]byte, 4)
	binary.LittleEndian.PutUint32(hdr, frameMagic)
	if _, err := f.Write(hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("flightlog: write header: %w", err)
	}
	return &Writer{f: f}, nil
}

// Write appends one tick to the log.
func (w *Writer) Write(t Tick) error {
	body, err := msgpack.Marshal(&t)
	if err != nil {
		return fmt.Errorf("flightlog: marshal tick: %w", err)
	}

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(body)))
	if _, err := w.f.Write(lenBuf); err != nil {
		return fmt.Errorf("flightlog: write length: %w", err)
	}
	if _, err := w.f.Write(body); err != nil {
		return fmt.Errorf("flightlog: write body: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

var _ io.Closer = (*Writer)(nil)
