package binary

import (
	"unicode/utf16"

	"github.com/google/uuid"
)

// Value is the sum type for every typed cell the codec understands. It is
// implemented by I8, I16, I32, I64, F32, F64, Char, Bool, String, UUID,
// Timestamp, the homogeneous array types, Collection, Map, and
// BinaryObject. A nil Value represents the absent case and is only
// produced/accepted by the Optional* functions in nullable.go — Decode
// itself never returns a nil Value for a well-formed, non-null encoding.
type Value interface {
	// Code returns the type code this value encodes under.
	Code() TypeCode
	encode(w *Writer) error
}

// Encode writes v's full typed encoding (type code followed by payload) to
// w. Encoding fails, and no bytes are written, before the first byte that
// would be invalid — e.g. a Char outside the basic multilingual plane.
func Encode(w *Writer, v Value) error {
	start := len(w.buf)
	if err := v.encode(w); err != nil {
		w.buf = w.buf[:start]
		return err
	}
	return nil
}

// Decode reads one full typed value (type code plus payload) from r. It
// never treats the null sentinel as a valid Value; callers that need
// nullability must use DecodeOptional instead.
func Decode(r *Reader) (Value, error) {
	code, err := r.ReadI8()
	if err != nil {
		return nil, err
	}

	switch TypeCode(code) {
	case CodeI8:
		v, err := r.ReadI8()
		return I8(v), err
	case CodeI16:
		v, err := r.ReadI16LE()
		return I16(v), err
	case CodeI32:
		v, err := r.ReadI32LE()
		return I32(v), err
	case CodeI64:
		v, err := r.ReadI64LE()
		return I64(v), err
	case CodeF32:
		v, err := r.ReadF32LE()
		return F32(v), err
	case CodeF64:
		v, err := r.ReadF64LE()
		return F64(v), err
	case CodeChar:
		return decodeChar(r)
	case CodeBool:
		v, err := r.ReadU8()
		return Bool(v != 0), err
	case CodeString:
		return decodeString(r)
	case CodeUUID:
		return decodeUUID(r)
	case CodeTimestamp:
		return decodeTimestamp(r)
	case CodeI8Arr:
		return decodeI8Array(r)
	case CodeI16Arr:
		return decodeI16Array(r)
	case CodeI32Arr:
		return decodeI32Array(r)
	case CodeI64Arr:
		return decodeI64Array(r)
	case CodeF32Arr:
		return decodeF32Array(r)
	case CodeF64Arr:
		return decodeF64Array(r)
	case CodeCharArr:
		return decodeCharArray(r)
	case CodeBoolArr:
		return decodeBoolArray(r)
	case CodeStringArr:
		return decodeStringArray(r)
	case CodeUUIDArr:
		return decodeUUIDArray(r)
	case CodeTimestampArr:
		return decodeTimestampArray(r)
	case CodeCollection:
		return decodeCollection(r)
	case CodeMap:
		return decodeMap(r)
	case CodeBinaryObject:
		return decodeBinaryObject(r)
	case CodeNull:
		return nil, errf("unexpected null sentinel where a value was required")
	default:
		return nil, errf("unknown type code: %d", code)
	}
}

// === Scalars ===

type I8 int8

func (v I8) Code() TypeCode { return CodeI8 }
func (v I8) encode(w *Writer) error {
	w.WriteI8(int8(CodeI8))
	w.WriteI8(int8(v))
	return nil
}

type I16 int16

func (v I16) Code() TypeCode { return CodeI16 }
func (v I16) encode(w *Writer) error {
	w.WriteI8(int8(CodeI16))
	w.WriteI16LE(int16(v))
	return nil
}

type I32 int32

func (v I32) Code() TypeCode { return CodeI32 }
func (v I32) encode(w *Writer) error {
	w.WriteI8(int8(CodeI32))
	w.WriteI32LE(int32(v))
	return nil
}

type I64 int64

func (v I64) Code() TypeCode { return CodeI64 }
func (v I64) encode(w *Writer) error {
	w.WriteI8(int8(CodeI64))
	w.WriteI64LE(int64(v))
	return nil
}

type F32 float32

func (v F32) Code() TypeCode { return CodeF32 }
func (v F32) encode(w *Writer) error {
	w.WriteI8(int8(CodeF32))
	w.WriteF32LE(float32(v))
	return nil
}

type F64 float64

func (v F64) Code() TypeCode { return CodeF64 }
func (v F64) encode(w *Writer) error {
	w.WriteI8(int8(CodeF64))
	w.WriteF64LE(float64(v))
	return nil
}

// Char is a single Unicode scalar value that must be representable in one
// UTF-16 code unit; encoding a supplementary-plane scalar fails.
type Char rune

func (v Char) Code() TypeCode { return CodeChar }
func (v Char) encode(w *Writer) error {
	unit, err := charCodeUnit(rune(v))
	if err != nil {
		return err
	}
	w.WriteI8(int8(CodeChar))
	w.WriteU16BE(unit)
	return nil
}

func charCodeUnit(r rune) (uint16, error) {
	if utf16.RuneLen(r) != 1 {
		return 0, errf("only UTF-16 single-code-unit characters are supported, got %q", r)
	}
	return uint16(r), nil
}

func decodeChar(r *Reader) (Value, error) {
	unit, err := r.ReadU16BE()
	if err != nil {
		return nil, err
	}
	if unit >= 0xD800 && unit <= 0xDFFF {
		return nil, errf("lone UTF-16 surrogate is not a valid character: %#x", unit)
	}
	return Char(rune(unit)), nil
}

type Bool bool

func (v Bool) Code() TypeCode { return CodeBool }
func (v Bool) encode(w *Writer) error {
	w.WriteI8(int8(CodeBool))
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	return nil
}

type String string

func (v String) Code() TypeCode { return CodeString }
func (v String) encode(w *Writer) error {
	w.WriteI8(int8(CodeString))
	w.WriteI32LE(int32(len(v)))
	w.WriteRaw([]byte(v))
	return nil
}

func decodeString(r *Reader) (Value, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errf("negative string length: %d", n)
	}
	raw, err := r.ReadN(int(n))
	if err != nil {
		return nil, err
	}
	return String(string(raw)), nil
}

// UUID is Ignite's 128-bit identifier. The wire layout field-swaps the raw
// bytes (see §4.3 of the protocol spec); UUID itself
// stores the plain RFC 4122 byte order so it interoperates with
// github.com/google/uuid.
type UUID uuid.UUID

func (v UUID) String() string { return uuid.UUID(v).String() }

func (v UUID) Code() TypeCode { return CodeUUID }
func (v UUID) encode(w *Writer) error {
	msb, lsb := uuidToWords([16]byte(v))
	w.WriteI8(int8(CodeUUID))
	w.WriteU64LE(msb)
	w.WriteU64LE(lsb)
	return nil
}

func decodeUUID(r *Reader) (Value, error) {
	msb, err := r.ReadU64LE()
	if err != nil {
		return nil, err
	}
	lsb, err := r.ReadU64LE()
	if err != nil {
		return nil, err
	}
	return UUID(wordsToUUID(msb, lsb)), nil
}

func uuidToWords(b [16]byte) (msb, lsb uint64) {
	for i := 0; i < 8; i++ {
		msb = (msb << 8) | uint64(b[i])
	}
	for i := 8; i < 16; i++ {
		lsb = (lsb << 8) | uint64(b[i])
	}
	return msb, lsb
}

func wordsToUUID(msb, lsb uint64) [16]byte {
	var arr [16]byte
	for i := 0; i < 8; i++ {
		arr[15-i] = byte(lsb & 0xFF)
		lsb >>= 8
	}
	for i := 8; i < 16; i++ {
		arr[15-i] = byte(msb & 0xFF)
		msb >>= 8
	}
	return arr
}

// Timestamp is milliseconds since epoch plus a nanosecond-of-second
// adjustment, matching the wire layout exactly (it is not a time.Time:
// the nanosecond field is additional sub-millisecond precision, not a
// replacement for the millisecond field).
type Timestamp struct {
	Millis int64
	Nanos  int32
}

func (v Timestamp) Code() TypeCode { return CodeTimestamp }
func (v Timestamp) encode(w *Writer) error {
	w.WriteI8(int8(CodeTimestamp))
	w.WriteI64LE(v.Millis)
	w.WriteI32LE(v.Nanos)
	return nil
}

func decodeTimestamp(r *Reader) (Value, error) {
	millis, err := r.ReadI64LE()
	if err != nil {
		return nil, err
	}
	nanos, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	return Timestamp{Millis: millis, Nanos: nanos}, nil
}
