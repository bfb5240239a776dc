package bundle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Snapshot format: a 4-byte magic header followed by a zstd frame
// containing the CBOR encoding of the bundle.
var snapshotMagic = []byte{'S', 'S', 'B', '1'}

// ErrBadSnapshot is returned when data does not start with the
// snapshot magic header.
var ErrBadSnapshot = errors.New("bundle: not a snapshot")

var (
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDec, _ = zstd.NewReader(nil)
)

// Snapshot serializes the bundle into the compact binary snapshot
// format used for persistence and transfer.
func (b Bundle) Snapshot() ([]byte, error) {
	payload, err := cbor.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	out := make([]byte, len(snapshotMagic), len(snapshotMagic)+len(payload)/2)
	copy(out, snapshotMagic)
	return zstdEnc.EncodeAll(payload, out), nil
}

// FromSnapshot decodes a snapshot produced by Snapshot.
func FromSnapshot(data []byte) (Bundle, error) {
	if len(data) < len(snapshotMagic) || !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic) {
		return Bundle{}, ErrBadSnapshot
	}
	payload, err := zstdDec.DecodeAll(data[len(snapshotMagic):], nil)
	if err != nil {
		return Bundle{}, fmt.Errorf("decompress snapshot: %w", err)
	}
	var b Bundle
	if err := cbor.Unmarshal(payload, &b); err != nil {
		return Bundle{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return b, nil
}
