package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// snapshotMagic identifies wavefunction snapshot payloads
	// (ASCII: "MBWF").
	snapshotMagic = 0x4d425746

	// snapshotVersion is the current payload version.
	snapshotVersion = 1
)

var (
	// ErrInvalidSnapshot is returned when a snapshot payload does not
	// start with the expected magic number.
	ErrInvalidSnapshot = errors.New("invalid snapshot magic")

	// ErrSnapshotVersion is returned for payload versions this build does
	// not understand.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)

// snapshotHeader precedes the amplitude data inside the lz4 frame.
type snapshotHeader struct {
	Magic   uint32
	Version uint32
	Count   uint64
}

// SaveWavefunction writes psi to w as an lz4 frame carrying a small binary
// header followed by the raw amplitudes.
func SaveWavefunction(w io.Writer, psi []complex128) error {
	zw := lz4.NewWriter(w)

	hdr := snapshotHeader{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Count:   uint64(len(psi)),
	}
	if err := binary.Write(zw, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	buf := make([]float64, 2*len(psi))
	for i, c := range psi {
		buf[2*i] = real(c)
		buf[2*i+1] = imag(c)
	}
	if err := binary.Write(zw, binary.LittleEndian, buf); err != nil {
		return fmt.Errorf("write snapshot data: %w", err)
	}

	return zw.Close()
}

// LoadWavefunction reads a wavefunction written by SaveWavefunction.
func LoadWavefunction(r io.Reader) ([]complex128, error) {
	zr := lz4.NewReader(r)

	var hdr snapshotHeader
	if err := binary.Read(zr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if hdr.Magic != snapshotMagic {
		return nil, ErrInvalidSnapshot
	}
	if hdr.Version != snapshotVersion {
		return nil, ErrSnapshotVersion
	}

	buf := make([]float64, 2*hdr.Count)
	if err := binary.Read(zr, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("read snapshot data: %w", err)
	}

	psi := make([]complex128, hdr.Count)
	for i := range psi {
		psi[i] = complex(buf[2*i], buf[2*i+1])
	}

	return psi, nil
}
