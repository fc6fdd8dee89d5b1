package codec

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/cockroachdb/errors"
)

// ErrChecksum is wrapped by the error for a frame whose CRC does not match its payload.
var ErrChecksum = errors.New("checksum mismatch")

const crcSize = 4

// Seal frames payload for storage: [payload][crc32:4].
func Seal(payload []byte) []byte {
	return AppendChecksum(append(make([]byte, 0, len(payload)+crcSize), payload...))
}

// AppendChecksum frames b in place by appending the checksum of its contents.
func AppendChecksum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b))
}

// Open verifies a frame produced by Seal and returns its payload.
func Open(frame []byte) ([]byte, error) {
	if len(frame) < crcSize {
		return nil, errors.Wrapf(ErrMalformed, "frame of %d bytes is too short", len(frame))
	}
	payload := frame[:len(frame)-crcSize]
	want := binary.BigEndian.Uint32(frame[len(payload):])
	if got := crc32.ChecksumIEEE(payload); got != want {
		return nil, errors.Wrapf(ErrChecksum, "crc %08x, expected %08x", got, want)
	}
	return payload, nil
}
