// Package binary implements the typed, self-describing wire codec used by
// the Ignite thin-client protocol: every value on the wire is prefixed by a
// one-byte type code, multi-byte integers are little-endian, and a single
// sentinel byte stands in for an absent (null) value.
//
// The package has no dependency on networking: it only knows how to turn
// Values into bytes and back. See internal/protocol/wire for framing and
// request/response dispatch built on top of this codec.
package binary

import "fmt"

// TypeCode is the one-byte tag that precedes every encoded Value.
type TypeCode int8

// Type codes, per the Ignite thin-client binary protocol.
const (
	CodeI8        TypeCode = 1
	CodeI16       TypeCode = 2
	CodeI32       TypeCode = 3
	CodeI64       TypeCode = 4
	CodeF32       TypeCode = 5
	CodeF64       TypeCode = 6
	CodeChar      TypeCode = 7
	CodeBool      TypeCode = 8
	CodeString    TypeCode = 9
	CodeUUID      TypeCode = 10
	CodeI8Arr     TypeCode = 12
	CodeI16Arr    TypeCode = 13
	CodeI32Arr    TypeCode = 14
	CodeI64Arr    TypeCode = 15
	CodeF32Arr    TypeCode = 16
	CodeF64Arr    TypeCode = 17
	CodeCharArr   TypeCode = 18
	CodeBoolArr   TypeCode = 19
	CodeStringArr TypeCode = 20
	CodeUUIDArr   TypeCode = 21
	CodeCollection TypeCode = 24
	CodeMap        TypeCode = 25
	CodeTimestamp    TypeCode = 33
	CodeTimestampArr TypeCode = 34
	CodeNull         TypeCode = 101
	CodeBinaryObject TypeCode = 103
)

// BinaryObjectProtoVersion is the only protocol version this codec accepts
// in a decoded BinaryObject header.
const BinaryObjectProtoVersion = 1

// CollectionKind is the one-byte sub-kind written after a collection's
// length, distinguishing ordered/linked/set semantics that are otherwise
// erased by Go's lack of a matching standard-library taxonomy. It is
// protocol-visible and must never be fabricated by the encoder: it is
// always the kind the caller built the Collection with.
type CollectionKind int8

const (
	CollectionUnspecified  CollectionKind = -1
	CollectionGenericAlt0  CollectionKind = 0
	CollectionVec          CollectionKind = 1
	CollectionLinkedList   CollectionKind = 2
	CollectionHashSet      CollectionKind = 3
	CollectionLinkedHashSet CollectionKind = 4
	CollectionGenericAlt5  CollectionKind = 5
)

// isGenericOrdered reports whether a decoded collection sub-kind should be treated
// as a plain ordered sequence (the spec: -1/0/1/5 all decode as "generic
// ordered").
func (k CollectionKind) isGenericOrdered() bool {
	switch k {
	case CollectionUnspecified, CollectionGenericAlt0, CollectionVec, CollectionGenericAlt5:
		return true
	default:
		return false
	}
}

// MapKind is the one-byte sub-kind written after a map's length.
type MapKind int8

const (
	MapHash       MapKind = 1
	MapLinkedHash MapKind = 2
)

// Error is returned for every codec failure: invalid bytes, truncated
// buffers, bad UTF-8, unsupported characters, or unknown type codes. No
// bytes are consumed past the point of failure, and an encoder that
// notices a malformed value stops before writing anything.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "ignite codec: " + e.Message }

func errf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
