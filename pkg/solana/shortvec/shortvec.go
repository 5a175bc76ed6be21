// Package shortvec implements the compact-u16 length encoding used by the
// transaction wire format: little-endian base-128 with a continuation bit,
// at most three bytes.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// EncodeLen writes the compact-u16 encoding of length to w, returning the
// number of bytes written. Lengths above math.MaxUint16 are rejected.
func EncodeLen(w io.Writer, length int) (int, error) {
	if length > math.MaxUint16 {
		return 0, errors.Errorf("len exceeds %d", math.MaxUint16)
	}

	var written int
	buf := make([]byte, 1)

	for {
		buf[0] = byte(length & 0x7f)
		length >>= 7
		if length == 0 {
			n, err := w.Write(buf)
			return written + n, err
		}

		buf[0] |= 0x80
		n, err := w.Write(buf)
		written += n
		if err != nil {
			return written, err
		}
	}
}

// DecodeLen reads a compact-u16 encoded length from r.
func DecodeLen(r io.Reader) (int, error) {
	var val, width int
	buf := make([]byte, 1)

	for {
		if _, err := r.Read(buf); err != nil {
			return 0, err
		}

		val |= int(buf[0]&0x7f) << (width * 7)
		width++

		if buf[0]&0x80 == 0 {
			break
		}
	}

	if width > 3 {
		return 0, errors.Errorf("invalid size: %d (max 3)", width)
	}

	return val, nil
}
