package flightlog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrBadMagic is returned by Open when the file does not start with the
// flightlog header.
var ErrBadMagic = errors.New("flightlog: bad magic header")

// Reader reads back Tick frames written by Writer, one at a time.
type Reader struct {
	f *os.File
}

// Open opens path for reading and validates its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flightlog: open %s: %w", path, err)
	}
	hdr := make([]byte, 4)
	if _, err := io.ReadFull(f, hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("flightlog: read header: %w", err)
	}
	if binary.LittleEndian.Uint32(hdr) != frameMagic {
		f.Close()
		return nil, ErrBadMagic
	}
	return &Reader{f: f}, nil
}

// Next reads the next Tick from the stream. It returns io.EOF once the
// stream is exhausted cleanly.
func (r *Reader) Next() (Tick, error) {
	var t Tick

	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r.f, lenBuf); err != nil {
		if errors.Is(err, io.EOF) {
			return t, io.EOF
		}
		return t, fmt.Errorf("flightlog: read length: %w", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf)

	body := make([]byte, n)
	if _, err := io.ReadFull(r.f, body); err != nil {
		return t, fmt.Errorf("flightlog: read body: %w", err)
	}

	if err := msgpack.Unmarshal(body, &t); err != nil {
		return t, fmt.Errorf("flightlog: unmarshal tick: %w", err)
	}
	return t, nil
}

// ReadAll drains the remainder of the stream into a slice.
func (r *Reader) ReadAll() ([]Tick, error) {
	var out []Tick
	for {
		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
