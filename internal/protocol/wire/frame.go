package wire

import (
	"encoding/binary"
	"io"
)

// maxFrameLen bounds the length prefix accepted from the wire: a sanity
// check against a corrupt or hostile peer, not a protocol limit.
const maxFrameLen = 64 * 1024 * 1024

// WriteFrame prefixes payload with its 32-bit little-endian length and
// writes length+payload as a single call, per §6.1's frame format.
func WriteFrame(w io.Writer, payload []byte) error {
	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(payload)))
	copy(frame[4:], payload)
	if _, err := w.Write(frame); err != nil {
		return networkErr("write frame", err)
	}
	return nil
}

// ReadFrame reads exactly one length-prefixed frame: 4 bytes of little-endian
// length N, then N bytes of payload. The returned slice is freshly
// allocated and safe to retain.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, networkErr("read frame header", err)
	}
	n := binary.LittleEndian.Uint32(header[:])
	if n > maxFrameLen {
		return nil, networkErr("frame length %d exceeds sanity limit", nil, n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, networkErr("read frame body", err)
	}
	return payload, nil
}
